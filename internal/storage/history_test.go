// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") = nil error, want ErrInvalidPath")
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "abc123", "First Video"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Record(ctx, "def456", "Second Video"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent() returned %d entries, want 2", len(entries))
	}
	// Same-second timestamps fall back to insertion order, newest first.
	if entries[0].VideoID != "def456" {
		t.Errorf("entries[0].VideoID = %q, want def456", entries[0].VideoID)
	}
	if entries[1].Title != "First Video" {
		t.Errorf("entries[1].Title = %q, want First Video", entries[1].Title)
	}
}

func TestRecent_Limit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, "vid", "Video"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Recent(3) returned %d entries", len(entries))
	}
}

func TestRecentUnique(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a", "c", "a"} {
		if err := store.Record(ctx, id, "Video "+id); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := store.RecentUnique(ctx, 10)
	if err != nil {
		t.Fatalf("RecentUnique() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("RecentUnique() returned %d entries, want 3", len(entries))
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.VideoID] {
			t.Errorf("video %q appears more than once", e.VideoID)
		}
		seen[e.VideoID] = true
	}
}

func TestCountAndClear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "abc", "Video"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	n, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() after Clear = %d, want 0", n)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() after Clear returned %d entries", len(entries))
	}
}

func TestClosedStore(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := store.Record(ctx, "abc", "Video"); err != ErrClosed {
		t.Errorf("Record() after Close = %v, want ErrClosed", err)
	}
	if _, err := store.Recent(ctx, 10); err != ErrClosed {
		t.Errorf("Recent() after Close = %v, want ErrClosed", err)
	}
}
