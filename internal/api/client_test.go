// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorganforge/vidchat/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithConfig(&ClientConfig{
		BaseURL:            server.URL,
		Timeout:            5 * time.Second,
		TranscriptAttempts: 3,
		TranscriptDelay:    5 * time.Millisecond,
	})
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/messages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": [{"type": "text", "text": "hello"}]}
		]`))
	}))

	msgs, err := client.History(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "hello", msgs[1].Content)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestHistory_ServerError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
	}))

	_, err := client.History(context.Background())
	require.Error(t, err)
	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeServer, ce.Type)
	assert.Contains(t, ce.Message, "boom")
}

func TestHistory_Unreachable(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	_, err := client.History(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

// =============================================================================
// SEND
// =============================================================================

func TestSend(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/messages/gemini", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what is Go?", body["message"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"role": "assistant", "content": [{"type": "text", "text": "a language"}]}`))
	}))

	reply, err := client.Send(context.Background(), "what is Go?")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Equal(t, "a language", reply.Content)
}

func TestSend_EmptyMessage(t *testing.T) {
	client := NewClient()
	_, err := client.Send(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSend_BadRequestDetail(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Message cannot be empty"}`))
	}))

	_, err := client.Send(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Message cannot be empty")
}

// =============================================================================
// DELETE
// =============================================================================

func TestDelete(t *testing.T) {
	var gotPath atomic.Value
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath.Store(r.URL.Path)
		w.Write([]byte(`{"chat_history": []}`))
	}))

	require.NoError(t, client.Delete(context.Background(), 3))
	assert.Equal(t, "/api/messages/3", gotPath.Load())
}

func TestDelete_ServerError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "index out of range"}`))
	}))

	err := client.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index out of range")
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func TestTranscript(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/messages/transcript/abc123", r.URL.Path)
		w.Write([]byte(`{"transcript": [
			{"text": "hello", "start": 0, "duration": 2.5},
			{"text": "world", "start": 2.5, "duration": 3}
		]}`))
	}))

	lines, err := client.Transcript(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "hello", lines[0].Text)
	assert.Equal(t, 2.5, lines[1].Start)
}

func TestTranscript_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"transcript": [{"text": "ok", "start": 0, "duration": 1}]}`))
	}))

	lines, err := client.Transcript(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, calls.Load())
}

func TestTranscript_RetryExhaustion(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Transcript(context.Background(), "abc123")
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load(), "must attempt exactly 3 times")

	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeServer, ce.Type)
	assert.Contains(t, ce.Message, "abc123")
}

func TestTranscript_UnexpectedShapeDefaultsEmpty(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transcript": "not an array"}`))
	}))

	lines, err := client.Transcript(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTranscript_EmptyVideoID(t *testing.T) {
	client := NewClient()
	_, err := client.Transcript(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTranscript_ContextCancelledDuringDelay(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	_, err := client.Transcript(ctx, "abc123")
	require.Error(t, err)
}

// =============================================================================
// CONFIG DEFAULTS
// =============================================================================

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://127.0.0.1:8000", client.config.BaseURL)
	assert.Equal(t, 3, client.config.TranscriptAttempts)
	assert.Equal(t, 2*time.Second, client.config.TranscriptDelay)
}

func TestNewClientWithConfig_TrimsTrailingSlash(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.com/"})
	assert.Equal(t, "http://example.com", client.BaseURL())
}
