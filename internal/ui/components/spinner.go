// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingIndicator shows an animated spinner while a reply is pending.
type ThinkingIndicator struct {
	theme   *styles.Theme
	spinner styles.SpinnerConfig
	tick    int
	label   string
}

// NewThinkingIndicator creates a thinking indicator with the default label.
func NewThinkingIndicator(theme *styles.Theme) *ThinkingIndicator {
	return &ThinkingIndicator{
		theme:   theme,
		spinner: styles.DotsSpinner,
		label:   "thinking",
	}
}

// SetLabel changes the text next to the spinner.
func (t *ThinkingIndicator) SetLabel(label string) {
	t.label = label
}

// Tick advances the animation one frame.
func (t *ThinkingIndicator) Tick() {
	t.tick++
}

// FPS returns the animation frame rate.
func (t *ThinkingIndicator) FPS() int {
	return t.spinner.FPS
}

// View renders the current frame.
func (t *ThinkingIndicator) View() string {
	frame := t.spinner.Frame(t.tick)
	return t.theme.Spinner.Render(frame) + " " + t.theme.ThinkingText.Render(t.label+"...")
}
