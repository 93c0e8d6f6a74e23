// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// SPLIT PANEL LAYOUT
// =============================================================================

const (
	// MinPanelRatio and MaxPanelRatio bound the media pane width as a
	// percentage of the content area.
	MinPanelRatio = 30
	MaxPanelRatio = 50

	// DefaultPanelRatio is used when no configured value applies.
	DefaultPanelRatio = 40

	// panelNudge is the keyboard resize step.
	panelNudge = 2

	// dividerGrabSlop widens the clickable divider area by this many columns
	// on each side.
	dividerGrabSlop = 1
)

// ClampRatio clamps a requested ratio into the allowed range.
func ClampRatio(ratio int) int {
	if ratio < MinPanelRatio {
		return MinPanelRatio
	}
	if ratio > MaxPanelRatio {
		return MaxPanelRatio
	}
	return ratio
}

// PanelLayout tracks the media/chat split and the divider drag gesture.
// The media pane sits on the left; a one-column divider separates it from
// the chat pane.
type PanelLayout struct {
	ratio    int
	width    int
	dragging bool
}

// NewPanelLayout creates a layout at the given ratio, clamped.
func NewPanelLayout(ratio int) *PanelLayout {
	return &PanelLayout{ratio: ClampRatio(ratio), width: 80}
}

// SetWidth sets the container width in columns.
func (p *PanelLayout) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	p.width = width
}

// Ratio returns the current media pane percentage.
func (p *PanelLayout) Ratio() int {
	return p.ratio
}

// SetRatio sets the ratio, clamped.
func (p *PanelLayout) SetRatio(ratio int) {
	p.ratio = ClampRatio(ratio)
}

// Nudge adjusts the ratio by delta percentage points, clamped.
func (p *PanelLayout) Nudge(delta int) {
	p.SetRatio(p.ratio + delta)
}

// MediaWidth returns the media pane width in columns.
func (p *PanelLayout) MediaWidth() int {
	return p.width * p.ratio / 100
}

// ChatWidth returns the chat pane width in columns.
func (p *PanelLayout) ChatWidth() int {
	w := p.width - p.MediaWidth() - 1
	if w < 0 {
		w = 0
	}
	return w
}

// DividerX returns the divider column.
func (p *PanelLayout) DividerX() int {
	return p.MediaWidth()
}

// OnDivider reports whether column x falls on the grabbable divider area.
func (p *PanelLayout) OnDivider(x int) bool {
	d := p.DividerX()
	return x >= d-dividerGrabSlop && x <= d+dividerGrabSlop
}

// StartDrag begins a drag gesture. The gesture only starts on the divider;
// presses elsewhere are ignored so text selection and scrolling stay usable.
func (p *PanelLayout) StartDrag(x int) bool {
	if !p.OnDivider(x) {
		return false
	}
	p.dragging = true
	return true
}

// Dragging reports whether a divider drag is active.
func (p *PanelLayout) Dragging() bool {
	return p.dragging
}

// Drag moves the divider to column x while a gesture is active. It reports
// whether the ratio changed.
func (p *PanelLayout) Drag(x int) bool {
	if !p.dragging || p.width == 0 {
		return false
	}
	newRatio := ClampRatio(x * 100 / p.width)
	if newRatio == p.ratio {
		return false
	}
	p.ratio = newRatio
	return true
}

// EndDrag finishes the gesture.
func (p *PanelLayout) EndDrag() {
	p.dragging = false
}
