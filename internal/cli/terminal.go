// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the vidchat CLI.
//
// Colors follow stdout TTY state, the NO_COLOR convention, and the
// --no-color flag.
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback when detection fails.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width used for wrapping.
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width, defaulting to 80.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

var (
	colorsMu       sync.RWMutex
	colorsOverride *bool
)

// ColorsEnabled reports whether colored output should be used. Honors the
// NO_COLOR environment variable and any ForceColorsEnabled override.
func ColorsEnabled() bool {
	colorsMu.RLock()
	override := colorsOverride
	colorsMu.RUnlock()
	if override != nil {
		return *override
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsStdoutTTY() {
		return false
	}
	return termenv.DefaultOutput().Profile != termenv.Ascii
}

// ForceColorsEnabled overrides color detection, for the --no-color flag.
func ForceColorsEnabled(enabled bool) {
	colorsMu.Lock()
	colorsOverride = &enabled
	colorsMu.Unlock()
}

// GetColorProfile returns the terminal's color profile, degraded to Ascii
// when colors are disabled.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.DefaultOutput().Profile
}
