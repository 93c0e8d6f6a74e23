// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "testing"

func TestClampRatio(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 10, 30},
		{"at minimum", 30, 30},
		{"in range", 40, 40},
		{"at maximum", 50, 50},
		{"above maximum", 65, 50},
		{"negative", -5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampRatio(tt.in); got != tt.want {
				t.Errorf("ClampRatio(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPanelLayout_NudgeStaysClamped(t *testing.T) {
	layout := NewPanelLayout(DefaultPanelRatio)

	for i := 0; i < 20; i++ {
		layout.Nudge(panelNudge)
	}
	if layout.Ratio() != MaxPanelRatio {
		t.Errorf("Ratio after widening = %d, want %d", layout.Ratio(), MaxPanelRatio)
	}

	for i := 0; i < 20; i++ {
		layout.Nudge(-panelNudge)
	}
	if layout.Ratio() != MinPanelRatio {
		t.Errorf("Ratio after narrowing = %d, want %d", layout.Ratio(), MinPanelRatio)
	}
}

func TestPanelLayout_DragOnlyStartsOnDivider(t *testing.T) {
	layout := NewPanelLayout(40)
	layout.SetWidth(100)

	// Divider sits at column 40.
	if layout.StartDrag(5) {
		t.Error("StartDrag far from divider succeeded")
	}
	if layout.Dragging() {
		t.Error("layout dragging after rejected press")
	}

	if !layout.StartDrag(40) {
		t.Error("StartDrag on divider failed")
	}
	if !layout.Dragging() {
		t.Error("layout not dragging after divider press")
	}
}

func TestPanelLayout_DragTracksAndClamps(t *testing.T) {
	layout := NewPanelLayout(40)
	layout.SetWidth(100)
	layout.StartDrag(40)

	if !layout.Drag(35) {
		t.Error("Drag(35) reported no change")
	}
	if layout.Ratio() != 35 {
		t.Errorf("Ratio = %d, want 35", layout.Ratio())
	}

	// Dragging past the bounds pins the ratio.
	layout.Drag(90)
	if layout.Ratio() != MaxPanelRatio {
		t.Errorf("Ratio after far drag = %d, want %d", layout.Ratio(), MaxPanelRatio)
	}
	layout.Drag(2)
	if layout.Ratio() != MinPanelRatio {
		t.Errorf("Ratio after near drag = %d, want %d", layout.Ratio(), MinPanelRatio)
	}

	layout.EndDrag()
	if layout.Drag(45) {
		t.Error("Drag after EndDrag still moved the divider")
	}
}

func TestPanelLayout_Widths(t *testing.T) {
	layout := NewPanelLayout(40)
	layout.SetWidth(100)

	if layout.MediaWidth() != 40 {
		t.Errorf("MediaWidth = %d, want 40", layout.MediaWidth())
	}
	if layout.ChatWidth() != 59 {
		t.Errorf("ChatWidth = %d, want 59", layout.ChatWidth())
	}
}
