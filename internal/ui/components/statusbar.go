// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: mode-dependent shortcuts on the left, a
// transient status message on the right.
type StatusBar struct {
	Width     int
	Shortcuts []Shortcut
	Status    string
	IsError   bool
	theme     *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetShortcuts replaces the key hints.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.Shortcuts = shortcuts
}

// SetStatus sets the right-hand message.
func (s *StatusBar) SetStatus(msg string, isError bool) {
	s.Status = msg
	s.IsError = isError
}

// ClearStatus removes the right-hand message.
func (s *StatusBar) ClearStatus() {
	s.Status = ""
	s.IsError = false
}

// View renders the bar at the configured width.
func (s *StatusBar) View() string {
	var parts []string
	for _, sc := range s.Shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	left := strings.Join(parts, "  ")

	right := ""
	if s.Status != "" {
		if s.IsError {
			right = s.theme.ErrorStyle.Render(s.Status)
		} else {
			right = s.theme.SuccessStyle.Render(s.Status)
		}
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Not enough room for both sides; the status message goes first.
		right = ""
		gap = s.Width - lipgloss.Width(left) - 2
		if gap < 1 {
			gap = 1
		}
	}

	bar := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).MaxWidth(s.Width).Render(bar)
}
