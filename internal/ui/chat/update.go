// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/session"
)

// statusDisplayDuration is how long transient status messages stay visible.
const statusDisplayDuration = 4 * time.Second

// seekStep is the left/right arrow seek distance in seconds.
const seekStep = 5.0

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case PlaybackTickMsg:
		return m.handlePlaybackTick()

	case SpinnerTickMsg:
		if !m.sess.Thinking() && !m.loadingHistory {
			return m, nil
		}
		m.thinking.Tick()
		return m, SpinnerTickCmd(m.thinking.FPS())

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case DeleteResultMsg:
		return m.handleDeleteResult(msg)

	case TranscriptMsg:
		return m.handleTranscript(msg)

	case RecentVideosMsg:
		if msg.Err == nil {
			m.sidebar.SetRecent(msg.Items)
		}
		return m, nil

	case WatchRecordedMsg:
		// History writes are best-effort.
		return m, nil

	case StatusExpireMsg:
		if msg.Seq == m.statusSeq {
			m.statusBar.ClearStatus()
		}
		return m, nil

	case ConfigReloadedMsg:
		cfg := config.Global()
		m.theme.ApplyMode(cfg.UI.Theme)
		m.layout.SetRatio(cfg.UI.PanelRatio)
		m.messageList.ShowTimestamps = cfg.UI.ShowTimestamps
		m.resize(m.width, m.height)
		return m, nil
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always wins.
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	// Modal overlays capture everything else.
	if m.overlay == OverlaySidebar {
		return m.handleSidebarKey(msg)
	}
	if m.overlay == OverlayUpload {
		return m.handleUploadKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Sidebar):
		m.overlay = OverlaySidebar
		m.sidebar.Reset()
		return m, RecentVideosCmd(m.store, 5)

	case key.Matches(msg, m.keyMap.Upload):
		m.overlay = OverlayUpload
		m.dialog.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.FocusNext):
		m.cycleFocus()
		return m, nil

	case key.Matches(msg, m.keyMap.DeleteMode):
		return m.enterDeleteMode()
	}

	if m.deleteMode {
		return m.handleDeleteModeKey(msg)
	}

	switch m.focus {
	case FocusInput:
		return m.handleInputKey(msg)
	case FocusMessages:
		return m.handleMessagesKey(msg)
	case FocusMedia:
		return m.handleMediaKey(msg)
	}
	return m, nil
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Cancel) {
		m.overlay = OverlayNone
		return m, nil
	}

	chosen, cmd := m.sidebar.Update(msg)
	if chosen == nil {
		return m, cmd
	}

	m.overlay = OverlayNone
	m.setVideo(chosenEntry(m, chosen.ID, chosen.Title))
	cmds := []tea.Cmd{
		TranscriptCmd(m.client, m.currentVideo.ID),
	}
	if c := RecordWatchCmd(m.store, m.currentVideo.ID, m.currentVideo.Title); c != nil {
		cmds = append(cmds, c)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Cancel) {
		m.overlay = OverlayNone
		return m, nil
	}
	done, cmd := m.dialog.Update(msg)
	if done {
		m.overlay = OverlayNone
	}
	return m, cmd
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Confirm) {
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Retry):
		return m.retryFailed()
	case key.Matches(msg, m.keyMap.Dismiss):
		return m.dismissFailed()
	case key.Matches(msg, m.keyMap.PanelNarrow):
		m.layout.Nudge(-panelNudge)
		m.resize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keyMap.PanelWiden):
		m.layout.Nudge(panelNudge)
		m.resize(m.width, m.height)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleMediaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.PlayPause):
		m.playing = !m.playing
		return m, nil
	case key.Matches(msg, m.keyMap.SeekBack):
		m.seek(-seekStep)
		return m, nil
	case key.Matches(msg, m.keyMap.SeekForward):
		m.seek(seekStep)
		return m, nil
	case key.Matches(msg, m.keyMap.Follow):
		m.transcript.ToggleFollow()
		return m, nil
	case key.Matches(msg, m.keyMap.PanelNarrow):
		m.layout.Nudge(-panelNudge)
		m.resize(m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keyMap.PanelWiden):
		m.layout.Nudge(panelNudge)
		m.resize(m.width, m.height)
		return m, nil
	}

	return m, m.transcript.Update(msg)
}

// =============================================================================
// DELETE MODE
// =============================================================================

func (m *Model) enterDeleteMode() (tea.Model, tea.Cmd) {
	users := m.userMessageIndices()
	if len(users) == 0 {
		return m, m.setStatus("No messages to delete.", true)
	}
	m.deleteMode = true
	m.deleteIdx = len(users) - 1
	m.refreshMessages()
	return m, nil
}

func (m *Model) handleDeleteModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.deleteMode = false
		m.refreshMessages()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.deleteIdx > 0 {
			m.deleteIdx--
		}
		m.refreshMessages()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.deleteIdx < len(m.userMessageIndices())-1 {
			m.deleteIdx++
		}
		m.refreshMessages()
		return m, nil

	case key.Matches(msg, m.keyMap.Confirm):
		id, ok := m.deleteTargetID()
		m.deleteMode = false
		if !ok {
			m.refreshMessages()
			return m, nil
		}
		op, err := m.sess.Delete(id)
		if err != nil {
			m.refreshMessages()
			return m, m.setStatus("Could not delete message.", true)
		}
		m.refreshMessages()
		return m, DeleteCmd(m.client, op)
	}
	return m, nil
}

// =============================================================================
// MOUSE HANDLING
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay != OverlayNone {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.layout.StartDrag(msg.X)
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			return m.routeWheel(msg)
		}

	case tea.MouseActionMotion:
		if m.layout.Dragging() && m.layout.Drag(msg.X) {
			m.resize(m.width, m.height)
		}
		return m, nil

	case tea.MouseActionRelease:
		m.layout.EndDrag()
		return m, nil
	}

	return m, nil
}

// routeWheel scrolls whichever pane is under the cursor.
func (m *Model) routeWheel(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.X < m.layout.DividerX() {
		return m, m.transcript.Update(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	id, err := m.sess.Stage(text)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyText):
			return m, nil
		case errors.Is(err, session.ErrSendInFlight):
			return m, m.setStatus("Still waiting for a reply.", true)
		default:
			return m, m.setStatus(err.Error(), true)
		}
	}

	m.input.SetValue("")
	m.refreshMessages()
	m.viewport.GotoBottom()
	return m, tea.Batch(
		SendCmd(m.client, id, text),
		SpinnerTickCmd(m.thinking.FPS()),
	)
}

func (m *Model) retryFailed() (tea.Model, tea.Cmd) {
	id, ok := m.failedMessageID()
	if !ok {
		return m, nil
	}
	text, err := m.sess.Retry(id)
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.refreshMessages()
	return m, tea.Batch(
		SendCmd(m.client, id, text),
		SpinnerTickCmd(m.thinking.FPS()),
	)
}

func (m *Model) dismissFailed() (tea.Model, tea.Cmd) {
	id, ok := m.failedMessageID()
	if !ok {
		return m, nil
	}
	if err := m.sess.Dismiss(id); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.refreshMessages()
	return m, nil
}

// =============================================================================
// BACKEND RESULT HANDLING
// =============================================================================

func (m *Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingHistory = false
	m.thinking.SetLabel("thinking")
	if msg.Err != nil {
		// Degrade to an empty conversation; the header indicator shows the
		// connection state.
		m.connected = false
		m.header.Connected = false
		log.Printf("history load failed: %v", msg.Err)
		return m, nil
	}
	m.connected = true
	m.header.Connected = true
	m.sess.SetHistory(msg.Messages)
	m.refreshMessages()
	m.viewport.GotoBottom()
	return m, nil
}

func (m *Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// The staged message stays visible in a failed state for retry.
		_ = m.sess.Fail(msg.PendingID)
		m.refreshMessages()
		return m, m.setStatus("Send failed: "+msg.Err.Error(), true)
	}
	if err := m.sess.Resolve(msg.PendingID, msg.Reply); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.refreshMessages()
	m.viewport.GotoBottom()
	return m, nil
}

func (m *Model) handleDeleteResult(msg DeleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.sess.Rollback(msg.Op, msg.Err)
		m.refreshMessages()
		return m, m.setStatus("Delete failed, message restored.", true)
	}
	m.sess.Commit(msg.Op)
	return m, m.setStatus("Message deleted.", false)
}

func (m *Model) handleTranscript(msg TranscriptMsg) (tea.Model, tea.Cmd) {
	// A response for a video that is no longer open is stale.
	if msg.VideoID != m.CurrentVideoID() {
		return m, nil
	}
	if msg.Err != nil {
		m.transcript.SetError(msg.Err.Error())
		return m, nil
	}
	m.transcript.SetTranscript(msg.Transcript)
	return m, nil
}

// =============================================================================
// PLAYBACK
// =============================================================================

func (m *Model) handlePlaybackTick() (tea.Model, tea.Cmd) {
	if m.playing && m.hasVideo {
		m.currentTime += playbackTickInterval.Seconds()
		if total := m.transcript.Lines().TotalDuration(); total > 0 && m.currentTime >= total {
			m.currentTime = total
			m.playing = false
		}
		m.transcript.SetCurrentTime(m.currentTime)
	}
	return m, PlaybackTickCmd()
}

func (m *Model) seek(delta float64) {
	m.currentTime += delta
	if m.currentTime < 0 {
		m.currentTime = 0
	}
	if total := m.transcript.Lines().TotalDuration(); total > 0 && m.currentTime > total {
		m.currentTime = total
	}
	m.transcript.SetCurrentTime(m.currentTime)
}

// =============================================================================
// FOCUS AND LAYOUT
// =============================================================================

func (m *Model) cycleFocus() {
	switch m.focus {
	case FocusInput:
		m.focus = FocusMessages
		m.input.Blur()
	case FocusMessages:
		m.focus = FocusMedia
	case FocusMedia:
		m.focus = FocusInput
		m.input.Focus()
	}
}

func (m *Model) resize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 10 {
		height = 10
	}
	m.width = width
	m.height = height

	m.theme.SetSize(width, height)
	m.layout.SetWidth(width)

	m.header.Width = width
	m.statusBar.Width = width

	contentHeight := height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	mediaWidth := m.layout.MediaWidth()
	chatWidth := m.layout.ChatWidth()

	m.transcript.SetSize(mediaWidth-2, contentHeight-videoBoxHeight)
	m.viewport.Width = chatWidth
	m.viewport.Height = contentHeight
	m.input.Width = chatWidth - 4
	m.messageList.SetWidth(chatWidth - 2)

	m.sidebar.SetSize(minDim(width-10, 44), height-6)
	m.dialog.SetWidth(minDim(width-10, 56))

	m.refreshMessages()
}

func minDim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
