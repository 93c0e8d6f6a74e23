// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds every pre-built style the TUI renders with, plus the detected
// terminal capabilities. Styles are built once at startup and reused on each
// frame.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Application container
	App       lipgloss.Style
	Container lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	PendingMark     lipgloss.Style
	FailedMark      lipgloss.Style
	RoleLabel       lipgloss.Style
	SelectedRow     lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Panes
	PaneBorder        lipgloss.Style
	PaneBorderFocused lipgloss.Style
	PaneTitle         lipgloss.Style
	Divider           lipgloss.Style

	// Media pane
	VideoTitle       lipgloss.Style
	VideoMeta        lipgloss.Style
	TranscriptTime   lipgloss.Style
	TranscriptLine   lipgloss.Style
	TranscriptActive lipgloss.Style
	TranscriptError  lipgloss.Style

	// Sidebar
	SidebarBox      lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarSection  lipgloss.Style

	// Dialog
	DialogBox   lipgloss.Style
	DialogTitle lipgloss.Style
	DialogError lipgloss.Style
	DialogHint  lipgloss.Style

	// Spinner and loading
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// Status messages
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
}

// NewTheme creates a theme with all styles configured for the current
// terminal.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// ApplyMode applies a configured color mode. "dark" and "light" force the
// palette; anything else re-detects from the terminal background. All styles
// are rebuilt in place, so components holding the theme pick the change up
// on their next render.
func (t *Theme) ApplyMode(mode string) {
	switch mode {
	case "dark":
		t.IsDark = true
	case "light":
		t.IsDark = false
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(t.IsDark)
	t.initStyles()
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.HeaderMeta = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2)
	t.SystemBubble = lipgloss.NewStyle().
		Foreground(SystemBubbleFg).
		Background(SystemBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(SystemBubbleBorder).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.PendingMark = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.FailedMark = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.RoleLabel = lipgloss.NewStyle().Foreground(TextMuted).Bold(true)
	t.SelectedRow = lipgloss.NewStyle().Background(SelectionBg)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.PaneBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)
	t.PaneBorderFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.Divider = lipgloss.NewStyle().Foreground(OverlayDim)

	t.VideoTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.VideoMeta = lipgloss.NewStyle().Foreground(TextMuted)
	t.TranscriptTime = lipgloss.NewStyle().Foreground(TextMuted)
	t.TranscriptLine = lipgloss.NewStyle().Foreground(TextPrimary)
	t.TranscriptActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(TranscriptActiveBg).
		Bold(true)
	t.TranscriptError = lipgloss.NewStyle().Foreground(Rose)

	t.SidebarBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
	t.SidebarTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.SidebarItem = lipgloss.NewStyle().Foreground(TextPrimary)
	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)
	t.SidebarSection = lipgloss.NewStyle().Foreground(TextMuted).Bold(true)

	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Cyan).
		Padding(1, 2)
	t.DialogTitle = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.DialogError = lipgloss.NewStyle().Foreground(Rose)
	t.DialogHint = lipgloss.NewStyle().Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().Foreground(Purple)
	t.ThinkingText = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.SuccessStyle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
}

// SetSize records the current terminal dimensions on the theme.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
