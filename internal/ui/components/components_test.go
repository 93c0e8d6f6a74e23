// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short line untouched", "hello world", 20, "hello world"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"preserves newlines", "a\nb", 10, "a\nb"},
		{"zero width passthrough", "hello", 0, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.input, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\na"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
}

func TestValidUploadPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"notes.pdf", true},
		{"NOTES.PDF", true},
		{"/tmp/chapter.epub", true},
		{"readme.md", true},
		{"plain.txt", true},
		{"video.mp4", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ValidUploadPath(tt.path); got != tt.want {
				t.Errorf("ValidUploadPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestUploadDialog_RejectsUnsupportedType(t *testing.T) {
	theme := styles.NewTheme()
	dialog := NewUploadDialog(theme)
	dialog.input.SetValue("movie.mp4")

	done, _ := dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if done {
		t.Error("dialog closed on invalid path")
	}
	if dialog.errMsg == "" {
		t.Error("no error shown for unsupported file type")
	}
}

func TestUploadDialog_ValidPathShowsNotice(t *testing.T) {
	theme := styles.NewTheme()
	dialog := NewUploadDialog(theme)
	dialog.input.SetValue("/docs/syllabus.pdf")

	dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if dialog.errMsg != "" {
		t.Errorf("unexpected error: %q", dialog.errMsg)
	}
	if !strings.Contains(dialog.notice, "not available yet") {
		t.Errorf("notice = %q, want upload-unavailable message", dialog.notice)
	}
}

func TestSidebar_FilterNarrowsCatalog(t *testing.T) {
	theme := styles.NewTheme()
	catalog := model.Catalog{
		{ID: "1", Title: "Foo Bar"},
		{ID: "2", Title: "Baz"},
	}
	sidebar := NewSidebar(theme, catalog)

	sidebar.input.SetValue("foo")
	sidebar.refilter()

	if len(sidebar.filtered) != 1 {
		t.Fatalf("filtered = %d items, want 1", len(sidebar.filtered))
	}
	if sidebar.filtered[0].Title != "Foo Bar" {
		t.Errorf("filtered[0].Title = %q", sidebar.filtered[0].Title)
	}
}

func TestSidebar_RecentsHiddenWhileSearching(t *testing.T) {
	theme := styles.NewTheme()
	catalog := model.Catalog{{ID: "1", Title: "Foo"}}
	sidebar := NewSidebar(theme, catalog)
	sidebar.SetRecent([]SidebarItem{{ID: "9", Title: "Old Video", FromHistory: true}})

	if len(sidebar.filtered) != 2 {
		t.Fatalf("filtered with recents = %d items, want 2", len(sidebar.filtered))
	}

	sidebar.input.SetValue("foo")
	sidebar.refilter()
	for _, item := range sidebar.filtered {
		if item.FromHistory {
			t.Error("history item shown while searching")
		}
	}
}

func TestSidebar_EnterReturnsSelection(t *testing.T) {
	theme := styles.NewTheme()
	catalog := model.Catalog{
		{ID: "1", Title: "First"},
		{ID: "2", Title: "Second"},
	}
	sidebar := NewSidebar(theme, catalog)

	sidebar.Update(tea.KeyMsg{Type: tea.KeyDown})
	chosen, _ := sidebar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if chosen == nil {
		t.Fatal("Update(enter) returned nil selection")
	}
	if chosen.ID != "2" {
		t.Errorf("chosen.ID = %q, want 2", chosen.ID)
	}
}

func TestTranscriptView_ActiveLineFollowsTime(t *testing.T) {
	theme := styles.NewTheme()
	view := NewTranscriptView(theme, true)
	view.SetTranscript(model.Transcript{
		{Text: "first", Start: 0, Duration: 2.5},
		{Text: "second", Start: 2.5, Duration: 2.5},
	})

	if changed := view.SetCurrentTime(1.0); !changed {
		t.Error("SetCurrentTime(1.0) reported no change")
	}
	if view.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex = %d, want 0", view.ActiveIndex())
	}

	// The line boundary belongs to the next line.
	view.SetCurrentTime(2.5)
	if view.ActiveIndex() != 1 {
		t.Errorf("ActiveIndex at boundary = %d, want 1", view.ActiveIndex())
	}

	view.SetCurrentTime(99)
	if view.ActiveIndex() != -1 {
		t.Errorf("ActiveIndex past end = %d, want -1", view.ActiveIndex())
	}
}

func TestTranscriptView_EmptyTranscriptIsNotAnError(t *testing.T) {
	theme := styles.NewTheme()
	view := NewTranscriptView(theme, true)
	view.SetTranscript(model.Transcript{})

	if view.State() != TranscriptEmpty {
		t.Errorf("State = %v, want TranscriptEmpty", view.State())
	}
	if !strings.Contains(view.View(), "No transcript") {
		t.Errorf("View() = %q, want no-transcript notice", view.View())
	}
}

func TestStatusBar_SmallWidthDoesNotPanic(t *testing.T) {
	theme := styles.NewTheme()
	bar := NewStatusBar(theme)
	bar.Width = 10
	bar.SetShortcuts([]Shortcut{{Key: "q", Desc: "quit"}, {Key: "tab", Desc: "focus"}})
	bar.SetStatus("a very long status message that cannot fit", true)

	_ = bar.View()
}
