// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// TRANSCRIPT VIEW
// =============================================================================

// TranscriptState tracks what the transcript pane is showing.
type TranscriptState int

const (
	TranscriptEmpty TranscriptState = iota
	TranscriptLoading
	TranscriptReady
	TranscriptFailed
)

// TranscriptView renders the synced transcript pane with the active line
// highlighted and kept in view.
type TranscriptView struct {
	viewport       viewport.Model
	lines          model.Transcript
	state          TranscriptState
	errText        string
	activeIdx      int
	follow         bool
	showTimestamps bool
	width          int
	height         int
	theme          *styles.Theme
}

// NewTranscriptView creates an empty transcript view.
func NewTranscriptView(theme *styles.Theme, showTimestamps bool) *TranscriptView {
	vp := viewport.New(40, 10)
	return &TranscriptView{
		viewport:       vp,
		state:          TranscriptEmpty,
		activeIdx:      -1,
		follow:         true,
		showTimestamps: showTimestamps,
		width:          40,
		height:         10,
		theme:          theme,
	}
}

// SetSize resizes the pane.
func (t *TranscriptView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

// SetLoading marks a fetch in progress, clearing any previous transcript.
func (t *TranscriptView) SetLoading() {
	t.lines = nil
	t.activeIdx = -1
	t.state = TranscriptLoading
	t.refresh()
}

// SetTranscript installs a fetched transcript. An empty transcript is shown
// as "no transcript available" rather than an error.
func (t *TranscriptView) SetTranscript(lines model.Transcript) {
	t.lines = lines
	t.activeIdx = -1
	t.follow = true
	if len(lines) == 0 {
		t.state = TranscriptEmpty
	} else {
		t.state = TranscriptReady
	}
	t.refresh()
	t.viewport.GotoTop()
}

// SetError marks the fetch as failed.
func (t *TranscriptView) SetError(msg string) {
	t.lines = nil
	t.activeIdx = -1
	t.state = TranscriptFailed
	t.errText = msg
	t.refresh()
}

// State reports what the pane is currently showing.
func (t *TranscriptView) State() TranscriptState {
	return t.state
}

// Lines returns the current transcript.
func (t *TranscriptView) Lines() model.Transcript {
	return t.lines
}

// SetCurrentTime highlights the line covering the given playback time and,
// when following, scrolls it into view. Returns true when the active line
// changed.
func (t *TranscriptView) SetCurrentTime(seconds float64) bool {
	idx := t.lines.ActiveIndex(seconds)
	if idx == t.activeIdx {
		return false
	}
	t.activeIdx = idx
	t.refresh()
	if t.follow && idx >= 0 {
		t.scrollTo(idx)
	}
	return true
}

// ActiveIndex returns the highlighted line index, or -1.
func (t *TranscriptView) ActiveIndex() int {
	return t.activeIdx
}

// ToggleFollow flips follow mode and reports the new value.
func (t *TranscriptView) ToggleFollow() bool {
	t.follow = !t.follow
	if t.follow && t.activeIdx >= 0 {
		t.scrollTo(t.activeIdx)
	}
	return t.follow
}

// Update forwards scroll input to the viewport. Manual scrolling disables
// follow mode until toggled back.
func (t *TranscriptView) Update(msg tea.Msg) tea.Cmd {
	before := t.viewport.YOffset
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	if t.viewport.YOffset != before {
		t.follow = false
	}
	return cmd
}

// View renders the pane content.
func (t *TranscriptView) View() string {
	switch t.state {
	case TranscriptLoading:
		return t.theme.TranscriptLine.Render("Loading transcript...")
	case TranscriptFailed:
		return t.theme.TranscriptError.Render("Transcript unavailable: " + t.errText)
	case TranscriptEmpty:
		return t.theme.TranscriptLine.Render("No transcript available.")
	}
	return t.viewport.View()
}

// scrollTo centers the given line in the viewport.
func (t *TranscriptView) scrollTo(idx int) {
	target := idx - t.viewport.Height/2
	if target < 0 {
		target = 0
	}
	t.viewport.SetYOffset(target)
}

// refresh rebuilds the viewport content.
func (t *TranscriptView) refresh() {
	if t.state != TranscriptReady {
		t.viewport.SetContent("")
		return
	}

	var sb strings.Builder
	for i, line := range t.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		text := line.Text
		if t.showTimestamps {
			text = t.theme.TranscriptTime.Render(line.StartTimestamp()) + " " + text
		}

		if i == t.activeIdx {
			sb.WriteString(t.theme.TranscriptActive.Width(t.width).Render(text))
		} else {
			sb.WriteString(t.theme.TranscriptLine.Render(text))
		}
	}
	t.viewport.SetContent(sb.String())
}
