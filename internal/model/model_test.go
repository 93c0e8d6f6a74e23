// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	m := NewMessage(RoleUser, "hello")
	if m.ID == "" {
		t.Error("expected non-empty ID")
	}
	if m.Role != RoleUser {
		t.Errorf("Role = %q, want %q", m.Role, RoleUser)
	}
	if m.State != StateCommitted {
		t.Errorf("State = %v, want committed", m.State)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewPendingUserMessage(t *testing.T) {
	m := NewPendingUserMessage("question")
	if m.State != StatePending {
		t.Errorf("State = %v, want pending", m.State)
	}
	if m.Role != RoleUser {
		t.Errorf("Role = %q, want user", m.Role)
	}
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := NewMessage(RoleUser, "x")
		if seen[m.ID] {
			t.Fatalf("duplicate ID generated: %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestMessagePreview(t *testing.T) {
	m := NewMessage(RoleAssistant, "line one\nline two that is fairly long")
	got := m.Preview(12)
	if len([]rune(got)) > 12 {
		t.Errorf("Preview too long: %q", got)
	}
	for _, r := range got {
		if r == '\n' {
			t.Errorf("Preview contains newline: %q", got)
		}
	}
}

// =============================================================================
// CONTENT UNION TESTS
// =============================================================================

func TestMessageUnmarshal_StringContent(t *testing.T) {
	var m Message
	data := `{"role": "user", "content": "plain text"}`
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.Content != "plain text" {
		t.Errorf("Content = %q, want %q", m.Content, "plain text")
	}
	if m.Role != RoleUser {
		t.Errorf("Role = %q, want user", m.Role)
	}
	if m.ID == "" {
		t.Error("expected client-assigned ID")
	}
}

func TestMessageUnmarshal_PartsContent(t *testing.T) {
	var m Message
	data := `{"role": "assistant", "content": [{"type": "text", "text": "the answer"}]}`
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.Content != "the answer" {
		t.Errorf("Content = %q, want %q", m.Content, "the answer")
	}
	if m.State != StateCommitted {
		t.Errorf("State = %v, want committed", m.State)
	}
}

func TestMessageUnmarshal_MultipleParts(t *testing.T) {
	var m Message
	data := `{"role": "assistant", "content": [
		{"type": "text", "text": "first"},
		{"type": "image", "text": "ignored"},
		{"type": "text", "text": "second"}
	]}`
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.Content != "first\nsecond" {
		t.Errorf("Content = %q, want %q", m.Content, "first\nsecond")
	}
}

func TestMessageUnmarshal_History(t *testing.T) {
	data := `[
		{"role": "user", "content": "hi"},
		{"role": "assistant", "content": [{"type": "text", "text": "hello"}]}
	]`
	var msgs []Message
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Content != "hi" || msgs[1].Content != "hello" {
		t.Errorf("contents = %q, %q", msgs[0].Content, msgs[1].Content)
	}
	if msgs[0].ID == msgs[1].ID {
		t.Error("messages share an ID")
	}
}

func TestMessageUnmarshal_EmptyContent(t *testing.T) {
	var m Message
	if err := json.Unmarshal([]byte(`{"role": "assistant"}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.Content != "" {
		t.Errorf("Content = %q, want empty", m.Content)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscriptActiveIndex(t *testing.T) {
	tr := Transcript{
		{Text: "one", Start: 0, Duration: 2.5},
		{Text: "two", Start: 2.5, Duration: 3},
		{Text: "three", Start: 10, Duration: 1},
	}

	tests := []struct {
		name string
		time float64
		want int
	}{
		{"start of first", 0, 0},
		{"inside first", 1.2, 0},
		{"boundary is exclusive", 2.5, 1},
		{"inside second", 4, 1},
		{"gap between lines", 7, -1},
		{"inside third", 10.5, 2},
		{"end is exclusive", 11, -1},
		{"before start", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.ActiveIndex(tt.time); got != tt.want {
				t.Errorf("ActiveIndex(%v) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}
}

func TestTranscriptActiveIndex_Empty(t *testing.T) {
	var tr Transcript
	if got := tr.ActiveIndex(1); got != -1 {
		t.Errorf("ActiveIndex on empty = %d, want -1", got)
	}
}

func TestTranscriptTotalDuration(t *testing.T) {
	tr := Transcript{
		{Start: 0, Duration: 2},
		{Start: 5, Duration: 3},
	}
	if got := tr.TotalDuration(); got != 8 {
		t.Errorf("TotalDuration = %v, want 8", got)
	}
	if got := (Transcript{}).TotalDuration(); got != 0 {
		t.Errorf("TotalDuration empty = %v, want 0", got)
	}
}

func TestTranscriptLineTimestamp(t *testing.T) {
	tests := []struct {
		start float64
		want  string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{61.4, "1:01"},
		{600, "10:00"},
		{3661, "1:01:01"},
	}
	for _, tt := range tests {
		l := TranscriptLine{Start: tt.start}
		if got := l.StartTimestamp(); got != tt.want {
			t.Errorf("StartTimestamp(%v) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestCatalogFilter(t *testing.T) {
	cat := Catalog{
		{ID: "1", Title: "Foo Bar"},
		{ID: "2", Title: "Baz"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"case-insensitive match", "foo", []string{"Foo Bar"}},
		{"substring match", "az", []string{"Baz"}},
		{"empty term returns all", "", []string{"Foo Bar", "Baz"}},
		{"no match", "qux", []string{}},
		{"uppercase term", "BAR", []string{"Foo Bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.Filter(tt.term)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d entries, want %d", tt.term, len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Title != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tt.term, i, e.Title, tt.want[i])
				}
			}
		})
	}
}

func TestCatalogByID(t *testing.T) {
	cat := DefaultCatalog()
	if len(cat) == 0 {
		t.Fatal("default catalog is empty")
	}
	e, ok := cat.ByID(cat[0].ID)
	if !ok || e.Title != cat[0].Title {
		t.Errorf("ByID(%q) = %+v, %v", cat[0].ID, e, ok)
	}
	if _, ok := cat.ByID("nope"); ok {
		t.Error("ByID found a nonexistent id")
	}
}
