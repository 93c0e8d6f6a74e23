// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/session"
	"github.com/jmorganforge/vidchat/internal/ui/components"
)

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers the initial conversation from the backend.
type HistoryLoadedMsg struct {
	Messages []model.Message
	Err      error
}

// SendResultMsg settles one in-flight send. PendingID identifies the staged
// user message being resolved.
type SendResultMsg struct {
	PendingID string
	Reply     model.Message
	Err       error
}

// DeleteResultMsg settles an optimistic delete.
type DeleteResultMsg struct {
	Op  session.DeleteOp
	Err error
}

// TranscriptMsg delivers a transcript fetch outcome. VideoID tags the fetch
// so responses for a video that is no longer current are discarded.
type TranscriptMsg struct {
	VideoID    string
	Transcript model.Transcript
	Err        error
}

// RecentVideosMsg delivers the watch-history rows for the sidebar.
type RecentVideosMsg struct {
	Items []components.SidebarItem
	Err   error
}

// WatchRecordedMsg reports a watch-history insert. Failures are logged and
// otherwise ignored.
type WatchRecordedMsg struct {
	Err error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// PlaybackTickMsg advances the simulated playback clock.
type PlaybackTickMsg struct {
	At time.Time
}

// SpinnerTickMsg advances the thinking spinner.
type SpinnerTickMsg struct{}

// StatusExpireMsg clears a transient status-bar message. Seq guards against
// clearing a newer message.
type StatusExpireMsg struct {
	Seq int
}

// ConfigReloadedMsg signals the global config changed on disk.
type ConfigReloadedMsg struct{}
