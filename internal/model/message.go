// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages, video
// transcripts, and the video catalog.
package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE STATE
// =============================================================================

// MessageState tracks a message through the optimistic-mutation lifecycle.
// Messages created locally start Pending; server confirmation moves them to
// Committed, a failed round-trip moves them to Failed. Messages loaded from
// server history are Committed from the start.
type MessageState int

const (
	StateCommitted MessageState = iota
	StatePending
	StateFailed
)

// String returns the state name for logging and tests.
func (s MessageState) String() string {
	switch s {
	case StateCommitted:
		return "committed"
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the conversation.
//
// ID is assigned client-side the moment the message enters the session; the
// server's wire format carries no identifier, so the UUID is the only stable
// handle for addressing a message across mutations.
type Message struct {
	ID        string       `json:"id"`
	Role      Role         `json:"role"`
	Content   string       `json:"content"`
	State     MessageState `json:"-"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewMessage creates a committed message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		State:     StateCommitted,
		CreatedAt: time.Now(),
	}
}

// NewPendingUserMessage creates a user message awaiting server confirmation.
func NewPendingUserMessage(content string) Message {
	m := NewMessage(RoleUser, content)
	m.State = StatePending
	return m
}

// NewSystemMessage creates a system message, used for synthetic error turns
// injected into the conversation (for example after a failed delete).
func NewSystemMessage(content string) Message {
	return NewMessage(RoleSystem, content)
}

// IsEmpty reports whether the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// Preview returns a single-line truncated preview of the content.
func (m Message) Preview(maxRunes int) string {
	line := strings.ReplaceAll(m.Content, "\n", " ")
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return line
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

// wireMessage is the shape the backend speaks. Its content field is a tagged
// union: either a plain string or a list of typed parts, of which only
// {"type":"text"} parts carry text. The union is collapsed to a plain string
// here at the boundary so nothing downstream ever type-probes content.
type wireMessage struct {
	Role    Role            `json:"role"`
	Content json.RawMessage `json:"content"`
}

type wireContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// UnmarshalJSON decodes a backend message, normalizing the content union and
// assigning a fresh client-side ID.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	content, err := decodeContent(w.Content)
	if err != nil {
		return err
	}

	*m = Message{
		ID:        generateID(),
		Role:      w.Role,
		Content:   content,
		State:     StateCommitted,
		CreatedAt: time.Now(),
	}
	return nil
}

// decodeContent collapses the content union to plain text. Parts with a type
// other than "text" contribute nothing; multiple text parts are joined with
// newlines.
func decodeContent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var parts []wireContentPart
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", err
	}

	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type == "text" || p.Type == "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n"), nil
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
