// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/ui/components"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	return New(Options{
		Client: api.NewClient(),
		Catalog: model.Catalog{
			{ID: "vid1", Title: "First Video"},
			{ID: "vid2", Title: "Second Video"},
		},
	})
}

func TestStaleTranscriptDiscarded(t *testing.T) {
	m := testModel(t)

	// Switch away from vid1 before its transcript arrives.
	m.setVideo(model.VideoCatalogEntry{ID: "vid2", Title: "Second Video"})

	lines := model.Transcript{{Text: "stale", Start: 0, Duration: 1}}
	m.Update(TranscriptMsg{VideoID: "vid1", Transcript: lines})

	if m.transcript.State() == components.TranscriptReady {
		t.Error("stale transcript was installed")
	}

	// The response for the current video still lands.
	m.Update(TranscriptMsg{VideoID: "vid2", Transcript: lines})
	if m.transcript.State() != components.TranscriptReady {
		t.Errorf("current transcript not installed, state = %v", m.transcript.State())
	}
}

func TestTranscriptErrorOnlyForCurrentVideo(t *testing.T) {
	m := testModel(t)
	m.setVideo(model.VideoCatalogEntry{ID: "vid2", Title: "Second Video"})

	m.Update(TranscriptMsg{VideoID: "vid1", Err: errors.New("boom")})
	if m.transcript.State() == components.TranscriptFailed {
		t.Error("stale transcript error was installed")
	}

	m.Update(TranscriptMsg{VideoID: "vid2", Err: errors.New("boom")})
	if m.transcript.State() != components.TranscriptFailed {
		t.Errorf("current transcript error ignored, state = %v", m.transcript.State())
	}
}

func TestSendFailureKeepsMessageForRetry(t *testing.T) {
	m := testModel(t)

	m.input.SetValue("what is this about?")
	m.submitInput()

	msgs := m.sess.Messages()
	if len(msgs) != 1 || msgs[0].State != model.StatePending {
		t.Fatalf("after submit: %d messages, state %v", len(msgs), msgs[0].State)
	}
	pendingID := msgs[0].ID

	m.Update(SendResultMsg{PendingID: pendingID, Err: errors.New("connection refused")})

	msgs = m.sess.Messages()
	if len(msgs) != 1 {
		t.Fatalf("failed send removed the message, len = %d", len(msgs))
	}
	if msgs[0].State != model.StateFailed {
		t.Errorf("message state = %v, want StateFailed", msgs[0].State)
	}
	if msgs[0].Content != "what is this about?" {
		t.Errorf("failed message lost its text: %q", msgs[0].Content)
	}
}

func TestSendResolveAppendsReply(t *testing.T) {
	m := testModel(t)

	m.input.SetValue("hello")
	m.submitInput()
	pendingID := m.sess.Messages()[0].ID

	reply := model.NewMessage(model.RoleAssistant, "hi there")
	m.Update(SendResultMsg{PendingID: pendingID, Reply: reply})

	msgs := m.sess.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].State != model.StateCommitted {
		t.Errorf("user message state = %v, want StateCommitted", msgs[0].State)
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != "hi there" {
		t.Errorf("reply = %+v", msgs[1])
	}
	if m.sess.Thinking() {
		t.Error("session still thinking after resolve")
	}
}

func TestDeleteRollbackRestoresMessages(t *testing.T) {
	m := testModel(t)
	m.sess.SetHistory([]model.Message{
		model.NewMessage(model.RoleUser, "q1"),
		model.NewMessage(model.RoleAssistant, "a1"),
	})
	m.refreshMessages()

	id := m.sess.Messages()[0].ID
	op, err := m.sess.Delete(id)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.sess.Len() != 0 {
		t.Fatalf("optimistic delete left %d messages", m.sess.Len())
	}

	m.Update(DeleteResultMsg{Op: op, Err: errors.New("server error")})

	msgs := m.sess.Messages()
	if len(msgs) != 3 {
		t.Fatalf("after rollback len = %d, want 3 (pair + system notice)", len(msgs))
	}
	if msgs[0].Content != "q1" || msgs[1].Content != "a1" {
		t.Errorf("restored pair wrong: %q, %q", msgs[0].Content, msgs[1].Content)
	}
	if msgs[2].Role != model.RoleSystem {
		t.Errorf("missing system notice, got role %v", msgs[2].Role)
	}
}

func TestConfigReloadAppliesRatio(t *testing.T) {
	m := testModel(t)
	if m.layout.Ratio() != DefaultPanelRatio {
		t.Fatalf("initial ratio = %d", m.layout.Ratio())
	}

	// Out-of-range configured values still clamp.
	m.layout.SetRatio(65)
	if m.layout.Ratio() != MaxPanelRatio {
		t.Errorf("Ratio = %d, want %d", m.layout.Ratio(), MaxPanelRatio)
	}
}

func TestConfigReloadAppliesTheme(t *testing.T) {
	config.ResetGlobalForTesting()
	defer config.ResetGlobalForTesting()

	m := testModel(t)

	cfg := config.Default()
	cfg.UI.Theme = "light"
	config.SetGlobal(cfg)
	m.Update(ConfigReloadedMsg{})
	if m.theme.IsDark {
		t.Error("IsDark = true after reload with theme light")
	}

	cfg = config.Default()
	cfg.UI.Theme = "dark"
	config.SetGlobal(cfg)
	m.Update(ConfigReloadedMsg{})
	if !m.theme.IsDark {
		t.Error("IsDark = false after reload with theme dark")
	}
}

func TestHistoryLoadFailureDegradesSilently(t *testing.T) {
	m := testModel(t)

	m.Update(HistoryLoadedMsg{Err: errors.New("connection refused")})

	if m.connected || m.header.Connected {
		t.Error("connected flag still set after failed history load")
	}
	if m.statusBar.Status != "" {
		t.Errorf("status bar shows %q, want empty", m.statusBar.Status)
	}
	if m.sess.Len() != 0 {
		t.Errorf("session has %d messages, want 0", m.sess.Len())
	}
}

func TestHistoryFetchShowsIndicator(t *testing.T) {
	m := testModel(t)

	if !strings.Contains(m.viewChatPane(25), "loading history") {
		t.Error("chat pane missing the loading indicator before history resolves")
	}

	m.Update(HistoryLoadedMsg{})
	if strings.Contains(m.viewChatPane(25), "loading history") {
		t.Error("loading indicator still shown after history resolved")
	}
}
