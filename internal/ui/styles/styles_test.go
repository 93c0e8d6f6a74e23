// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// A couple of representative styles must be initialized.
	if theme.UserBubble.GetPaddingLeft() == 0 {
		t.Error("UserBubble style not initialized")
	}
	if !theme.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", theme.Width, theme.Height)
	}
}

func TestSpinnerFrame(t *testing.T) {
	s := LineSpinner
	if s.Frame(0) != "|" {
		t.Errorf("Frame(0) = %q", s.Frame(0))
	}
	if s.Frame(len(s.Frames)) != s.Frame(0) {
		t.Error("Frame should wrap around")
	}
	if s.Frame(-1) == "" {
		t.Error("negative tick should still return a frame")
	}
	if (SpinnerConfig{}).Frame(3) != "" {
		t.Error("empty spinner should return empty frame")
	}
}

func TestStatusIndicators(t *testing.T) {
	out := RenderError("boom")
	if !strings.Contains(out, StatusIndicators.Error) {
		t.Errorf("RenderError output %q missing indicator", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("RenderError output %q missing message", out)
	}
	if !strings.Contains(RenderSuccess("done"), "[OK]") {
		t.Error("RenderSuccess missing [OK]")
	}
}
