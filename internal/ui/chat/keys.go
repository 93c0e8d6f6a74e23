// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main Bubble Tea program for vidchat: the split
// video/transcript and conversation view.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the chat interface.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	FocusNext   key.Binding
	Sidebar     key.Binding
	Upload      key.Binding
	DeleteMode  key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	PanelNarrow key.Binding
	PanelWiden  key.Binding
	PlayPause   key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	Follow      key.Binding
	Retry       key.Binding
	Dismiss     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "toggle help"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "pick video"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "upload material"),
		),
		DeleteMode: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "delete message"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		PanelNarrow: key.NewBinding(
			key.WithKeys("<", "ctrl+left"),
			key.WithHelp("<", "narrow media pane"),
		),
		PanelWiden: key.NewBinding(
			key.WithKeys(">", "ctrl+right"),
			key.WithHelp(">", "widen media pane"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "play/pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "seek -5s"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "seek +5s"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow transcript"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry failed send"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss failed send"),
		),
	}
}
