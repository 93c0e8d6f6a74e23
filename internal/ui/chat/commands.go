// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/session"
	"github.com/jmorganforge/vidchat/internal/storage"
	"github.com/jmorganforge/vidchat/internal/ui/components"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// LoadHistoryCmd fetches the shared conversation from the backend.
func LoadHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		msgs, err := client.History(context.Background())
		return HistoryLoadedMsg{Messages: msgs, Err: err}
	}
}

// SendCmd sends one user message and reports the assistant reply. pendingID
// ties the result back to the staged message.
func SendCmd(client *api.Client, pendingID, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Send(context.Background(), text)
		return SendResultMsg{PendingID: pendingID, Reply: reply, Err: err}
	}
}

// DeleteCmd issues the backend delete for an already optimistically removed
// message span.
func DeleteCmd(client *api.Client, op session.DeleteOp) tea.Cmd {
	return func() tea.Msg {
		err := client.Delete(context.Background(), op.Index)
		return DeleteResultMsg{Op: op, Err: err}
	}
}

// TranscriptCmd fetches the transcript for videoID. The result carries the
// id so stale responses can be dropped.
func TranscriptCmd(client *api.Client, videoID string) tea.Cmd {
	return func() tea.Msg {
		transcript, err := client.Transcript(context.Background(), videoID)
		return TranscriptMsg{VideoID: videoID, Transcript: transcript, Err: err}
	}
}

// =============================================================================
// WATCH HISTORY COMMANDS
// =============================================================================

// RecordWatchCmd records an opened video. store may be nil when history is
// disabled.
func RecordWatchCmd(store *storage.HistoryStore, videoID, title string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		err := store.Record(context.Background(), videoID, title)
		return WatchRecordedMsg{Err: err}
	}
}

// RecentVideosCmd loads the recently-watched section for the sidebar.
func RecentVideosCmd(store *storage.HistoryStore, limit int) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.RecentUnique(context.Background(), limit)
		if err != nil {
			return RecentVideosMsg{Err: err}
		}
		items := make([]components.SidebarItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, components.SidebarItem{
				ID:          e.VideoID,
				Title:       e.Title,
				FromHistory: true,
			})
		}
		return RecentVideosMsg{Items: items}
	}
}

// =============================================================================
// TIMER COMMANDS
// =============================================================================

// playbackTickInterval is the simulated playback clock resolution.
const playbackTickInterval = 500 * time.Millisecond

// PlaybackTickCmd schedules the next playback clock tick.
func PlaybackTickCmd() tea.Cmd {
	return tea.Tick(playbackTickInterval, func(t time.Time) tea.Msg {
		return PlaybackTickMsg{At: t}
	})
}

// SpinnerTickCmd schedules the next spinner frame at the given FPS.
func SpinnerTickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 10
	}
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// StatusExpireCmd clears the status message after d.
func StatusExpireCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusExpireMsg{Seq: seq}
	})
}
