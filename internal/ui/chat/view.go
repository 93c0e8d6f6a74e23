// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmorganforge/vidchat/internal/ui/components"
	"github.com/jmorganforge/vidchat/internal/util"
)

const (
	// chromeHeight is the vertical space taken by header, input and status
	// bar around the content area.
	chromeHeight = 6

	// videoBoxHeight is the height of the video placeholder above the
	// transcript.
	videoBoxHeight = 7
)

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header.View()
	content := m.viewContent()
	input := m.viewInput()
	status := m.viewStatusBar()

	full := lipgloss.JoinVertical(lipgloss.Left, header, content, input, status)

	switch m.overlay {
	case OverlaySidebar:
		return m.overlayCentered(full, m.sidebar.View())
	case OverlayUpload:
		return m.overlayCentered(full, m.dialog.View())
	}
	if m.showHelp {
		return m.overlayCentered(full, m.viewHelp())
	}
	return full
}

// overlayCentered places box in the middle of the screen, replacing the
// underlying content.
func (m *Model) overlayCentered(_, box string) string {
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.viewStatusBar())
}

// =============================================================================
// CONTENT AREA
// =============================================================================

func (m *Model) viewContent() string {
	contentHeight := m.height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	media := m.viewMediaPane(contentHeight)
	divider := m.viewDivider(contentHeight)
	chat := m.viewChatPane(contentHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, media, divider, chat)
}

func (m *Model) viewMediaPane(height int) string {
	width := m.layout.MediaWidth()

	video := m.viewVideoBox(width)

	transcriptTitle := m.theme.PaneTitle.Render("Transcript")
	transcriptBody := m.transcript.View()

	pane := lipgloss.JoinVertical(lipgloss.Left, video, transcriptTitle, transcriptBody)

	border := m.theme.PaneBorder
	if m.focus == FocusMedia {
		border = m.theme.PaneBorderFocused
	}
	return border.Width(width).Height(height).MaxHeight(height + 2).Render(pane)
}

func (m *Model) viewVideoBox(width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	if !m.hasVideo {
		return m.theme.VideoMeta.Render("No video selected. Press C-o to pick one.")
	}

	title := m.theme.VideoTitle.Render(util.TruncateWidth(m.currentVideo.Title, inner))
	id := m.theme.VideoMeta.Render(m.currentVideo.ID)

	state := "paused"
	if m.playing {
		state = "playing"
	}
	total := m.transcript.Lines().TotalDuration()
	clock := formatPlayTime(m.currentTime)
	if total > 0 {
		clock += " / " + formatPlayTime(total)
	}
	meta := m.theme.VideoMeta.Render(state + "  " + clock)

	bar := renderProgressBar(m.currentTime, total, inner)

	return lipgloss.JoinVertical(lipgloss.Left, title, id, "", bar, meta)
}

func (m *Model) viewDivider(height int) string {
	col := make([]string, height)
	for i := range col {
		col[i] = "|"
	}
	return m.theme.Divider.Render(strings.Join(col, "\n"))
}

func (m *Model) viewChatPane(height int) string {
	body := m.viewport.View()

	if m.sess.Thinking() || m.loadingHistory {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.thinking.View())
	}

	border := m.theme.PaneBorder
	if m.focus == FocusMessages {
		border = m.theme.PaneBorderFocused
	}
	return border.Width(m.layout.ChatWidth()).Height(height).MaxHeight(height + 2).Render(body)
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m *Model) viewInput() string {
	container := m.theme.InputContainer
	if m.focus == FocusInput {
		container = container.BorderForeground(m.theme.PaneBorderFocused.GetBorderTopForeground())
	}
	return container.Width(m.width - 2).Render(m.input.View())
}

func (m *Model) viewStatusBar() string {
	m.statusBar.SetShortcuts(m.currentShortcuts())
	return m.statusBar.View()
}

func (m *Model) currentShortcuts() []components.Shortcut {
	if m.deleteMode {
		return []components.Shortcut{
			{Key: "up/down", Desc: "select"},
			{Key: "enter", Desc: "delete"},
			{Key: "esc", Desc: "cancel"},
		}
	}

	switch m.overlay {
	case OverlaySidebar:
		return []components.Shortcut{
			{Key: "up/down", Desc: "select"},
			{Key: "enter", Desc: "open"},
			{Key: "esc", Desc: "close"},
		}
	case OverlayUpload:
		return []components.Shortcut{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "close"},
		}
	}

	base := []components.Shortcut{
		{Key: "tab", Desc: "pane"},
		{Key: "C-o", Desc: "videos"},
		{Key: "C-x", Desc: "delete"},
		{Key: "C-g", Desc: "help"},
	}
	if m.focus == FocusMedia {
		base = append(base, components.Shortcut{Key: "space", Desc: "play"})
	}
	if _, ok := m.failedMessageID(); ok && m.focus == FocusMessages {
		base = append(base,
			components.Shortcut{Key: "r", Desc: "retry"},
			components.Shortcut{Key: "x", Desc: "dismiss"},
		)
	}
	return base
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

func (m *Model) viewHelp() string {
	rows := []struct{ key, desc string }{
		{"Tab", "switch pane"},
		{"Enter", "send message"},
		{"C-o", "open video picker"},
		{"C-p", "upload course material"},
		{"C-x", "delete a message"},
		{"Space", "play/pause (media pane)"},
		{"left/right", "seek 5s (media pane)"},
		{"f", "toggle transcript follow"},
		{"< / >", "resize media pane"},
		{"r / x", "retry or dismiss failed send"},
		{"C-c", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.DialogTitle.Render("Keyboard shortcuts"))
	sb.WriteString("\n\n")
	for _, row := range rows {
		sb.WriteString(m.theme.ShortcutKey.Render(util.PadWidth(row.key, 12)))
		sb.WriteString(m.theme.ShortcutDesc.Render(row.desc))
		sb.WriteByte('\n')
	}
	return m.theme.DialogBox.Render(sb.String())
}

// =============================================================================
// HELPERS
// =============================================================================

// formatPlayTime renders seconds as m:ss or h:mm:ss.
func formatPlayTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	min := (total % 3600) / 60
	sec := total % 60

	pad := func(n int) string {
		if n < 10 {
			return "0" + strconv.Itoa(n)
		}
		return strconv.Itoa(n)
	}

	if h > 0 {
		return strconv.Itoa(h) + ":" + pad(min) + ":" + pad(sec)
	}
	return strconv.Itoa(min) + ":" + pad(sec)
}

// renderProgressBar draws a simple playback bar of the given width.
func renderProgressBar(current, total float64, width int) string {
	if width < 4 {
		width = 4
	}
	inner := width - 2

	filled := 0
	if total > 0 {
		filled = int(current / total * float64(inner))
		if filled > inner {
			filled = inner
		}
	}

	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", inner-filled) + "]"
}
