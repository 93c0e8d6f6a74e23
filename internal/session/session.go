// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat conversation state and its optimistic
// mutation rules.
package session

import (
	"errors"
	"strings"

	"github.com/jmorganforge/vidchat/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyText is returned when staging an empty or whitespace message.
	ErrEmptyText = errors.New("message text is empty")

	// ErrSendInFlight is returned when a send is staged while another is
	// still outstanding. At most one assistant round-trip runs at a time.
	ErrSendInFlight = errors.New("a send is already in flight")

	// ErrNotFound is returned when a message ID does not exist.
	ErrNotFound = errors.New("message not found")

	// ErrNotFailed is returned when retrying or dismissing a message that
	// is not in the failed state.
	ErrNotFailed = errors.New("message is not in the failed state")
)

// =============================================================================
// SESSION
// =============================================================================

// Session owns the ordered message list. All mutations are addressed by the
// message's stable ID; positional indexes are computed only for the server's
// positional delete endpoint.
//
// Mutating sends and deletes follow an explicit two-phase pattern: the
// optimistic local change happens first (Stage, Delete) and the server's
// answer resolves it (Resolve/Fail, Commit/Rollback). Session performs no
// I/O and is intended for use from a single goroutine, matching the
// event-loop execution model of the UI.
type Session struct {
	messages  []model.Message
	pendingID string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Messages returns the message list in display order. The returned slice is
// shared; callers must not mutate it.
func (s *Session) Messages() []model.Message {
	return s.messages
}

// Len returns the number of messages.
func (s *Session) Len() int {
	return len(s.messages)
}

// Thinking reports whether a send round-trip is outstanding.
func (s *Session) Thinking() bool {
	return s.pendingID != ""
}

// SetHistory replaces the message list with server history. A failed history
// load degrades to an empty list at the call site; the session just stores
// whatever it is given.
func (s *Session) SetHistory(msgs []model.Message) {
	s.messages = msgs
	s.pendingID = ""
}

// ByID returns the message with the given ID and its current index.
func (s *Session) ByID(id string) (model.Message, int, bool) {
	for i, m := range s.messages {
		if m.ID == id {
			return m, i, true
		}
	}
	return model.Message{}, -1, false
}

// =============================================================================
// SEND: Pending -> Committed | Failed
// =============================================================================

// Stage appends an optimistic pending user message and returns its ID. The
// caller issues the network send and settles it with Resolve or Fail.
func (s *Session) Stage(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if s.pendingID != "" {
		return "", ErrSendInFlight
	}

	m := model.NewPendingUserMessage(text)
	s.messages = append(s.messages, m)
	s.pendingID = m.ID
	return m.ID, nil
}

// Resolve commits the pending user message and appends the assistant reply.
func (s *Session) Resolve(id string, reply model.Message) error {
	i, err := s.settlePending(id)
	if err != nil {
		return err
	}
	s.messages[i].State = model.StateCommitted
	s.messages = append(s.messages, reply)
	return nil
}

// Fail marks the pending user message as failed. The message stays in place
// with its text so the user can retry or dismiss it; there is no silent
// disappearance and no automatic retry.
func (s *Session) Fail(id string) error {
	i, err := s.settlePending(id)
	if err != nil {
		return err
	}
	s.messages[i].State = model.StateFailed
	return nil
}

// Retry moves a failed message back to pending for another send attempt.
// The message keeps its ID and text; the caller re-issues the network call.
func (s *Session) Retry(id string) (string, error) {
	if s.pendingID != "" {
		return "", ErrSendInFlight
	}
	_, i, ok := s.ByID(id)
	if !ok {
		return "", ErrNotFound
	}
	if s.messages[i].State != model.StateFailed {
		return "", ErrNotFailed
	}
	s.messages[i].State = model.StatePending
	s.pendingID = id
	return s.messages[i].Content, nil
}

// Dismiss removes a failed message from the conversation.
func (s *Session) Dismiss(id string) error {
	_, i, ok := s.ByID(id)
	if !ok {
		return ErrNotFound
	}
	if s.messages[i].State != model.StateFailed {
		return ErrNotFailed
	}
	s.messages = append(s.messages[:i], s.messages[i+1:]...)
	return nil
}

func (s *Session) settlePending(id string) (int, error) {
	if id != s.pendingID {
		return -1, ErrNotFound
	}
	_, i, ok := s.ByID(id)
	if !ok {
		s.pendingID = ""
		return -1, ErrNotFound
	}
	s.pendingID = ""
	return i, nil
}

// =============================================================================
// DELETE: Pending -> Committed | RolledBack
// =============================================================================

// DeleteOp is the rollback token for an optimistic delete. It remembers the
// pre-mutation index (the server addresses messages positionally) and the
// removed span so Rollback can restore it exactly.
type DeleteOp struct {
	// Index is the message's position before the optimistic removal; this
	// is what the server's delete endpoint must be called with.
	Index int

	removed []model.Message
}

// Delete optimistically removes the message with the given ID. When the
// immediately following message is an assistant reply the two are removed as
// a pair; every user message has at most one direct assistant answer.
func (s *Session) Delete(id string) (DeleteOp, error) {
	_, i, ok := s.ByID(id)
	if !ok {
		return DeleteOp{}, ErrNotFound
	}

	span := 1
	if i+1 < len(s.messages) && s.messages[i+1].Role == model.RoleAssistant {
		span = 2
	}

	op := DeleteOp{
		Index:   i,
		removed: append([]model.Message(nil), s.messages[i:i+span]...),
	}
	s.messages = append(s.messages[:i], s.messages[i+span:]...)
	return op, nil
}

// Commit keeps the optimistic delete. The server does not return a corrected
// list to reconcile against, so there is nothing further to apply.
func (s *Session) Commit(op DeleteOp) {}

// Rollback restores the removed messages at their original position and
// appends a synthetic system message describing the failure.
func (s *Session) Rollback(op DeleteOp, cause error) {
	i := op.Index
	if i > len(s.messages) {
		i = len(s.messages)
	}

	restored := make([]model.Message, 0, len(s.messages)+len(op.removed)+1)
	restored = append(restored, s.messages[:i]...)
	restored = append(restored, op.removed...)
	restored = append(restored, s.messages[i:]...)

	reason := "unknown error"
	if cause != nil {
		reason = cause.Error()
	}
	restored = append(restored, model.NewSystemMessage("Failed to delete message: "+reason))
	s.messages = restored
}
