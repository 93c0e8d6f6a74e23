// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmorganforge/vidchat/internal/ui/styles"
	"github.com/jmorganforge/vidchat/internal/util"
)

// =============================================================================
// HEADER
// =============================================================================

// Header renders the top bar: app name, current video, server state.
type Header struct {
	Width      int
	VideoTitle string
	ServerURL  string
	Connected  bool
	theme      *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// View renders the header line.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("vidchat")

	video := ""
	if h.VideoTitle != "" {
		video = h.theme.VideoTitle.Render(util.TruncateWidth(h.VideoTitle, h.Width/2))
	}

	state := styles.StatusIndicators.Success
	if !h.Connected {
		state = styles.StatusIndicators.Error
	}
	meta := h.theme.HeaderMeta.Render(state + " " + h.ServerURL)

	left := title
	if video != "" {
		left = title + "  " + video
	}

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(meta) - 2
	if gap < 1 {
		meta = ""
		gap = 1
	}

	return h.theme.Header.Width(h.Width).MaxWidth(h.Width).Render(left + strings.Repeat(" ", gap) + meta)
}
