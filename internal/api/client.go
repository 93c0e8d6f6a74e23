// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the vidchat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmorganforge/vidchat/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeServer
	ErrTypeValidation
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrServerUnreachable = &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable"}
	ErrTimeout           = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrEmptyMessage      = &ClientError{Type: ErrTypeValidation, Message: "message cannot be empty"}
)

// IsUnreachable returns true if the error indicates the backend is down.
func IsUnreachable(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeConnection
	}
	return false
}

// IsValidation returns true if the error is a request-validation rejection.
func IsValidation(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeValidation
	}
	return false
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == ErrTypeTimeout
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// MaxResponseSize is the maximum allowed response body size.
const MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL of the backend, without the /api prefix (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for a single request (default: 30s)
	Timeout time.Duration

	// TranscriptAttempts is how many times a transcript fetch is tried
	// before surfacing an error (default: 3)
	TranscriptAttempts int

	// TranscriptDelay is the fixed wait between transcript attempts
	// (default: 2s, not exponential)
	TranscriptDelay time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:            "http://127.0.0.1:8000",
		Timeout:            30 * time.Second,
		TranscriptAttempts: 3,
		TranscriptDelay:    2 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the backend chat service. All persistence and inference
// happen behind the backend's REST endpoints; the client only moves JSON.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.TranscriptAttempts == 0 {
		config.TranscriptAttempts = 3
	}
	if config.TranscriptDelay == 0 {
		config.TranscriptDelay = 2 * time.Second
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HISTORY
// =============================================================================

// History fetches the full message history.
func (c *Client) History(ctx context.Context) ([]model.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/messages", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp, "failed to load history")
	}

	var messages []model.Message
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(&messages); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode history", Cause: err}
	}
	return messages, nil
}

// =============================================================================
// SEND
// =============================================================================

type sendRequest struct {
	Message string `json:"message"`
}

// Send submits a user message and returns the assistant's reply.
func (c *Client) Send(ctx context.Context, text string) (model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return model.Message{}, ErrEmptyMessage
	}

	body, err := json.Marshal(sendRequest{Message: text})
	if err != nil {
		return model.Message{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/messages/gemini", bytes.NewReader(body))
	if err != nil {
		return model.Message{}, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return model.Message{}, ErrTimeout
		}
		return model.Message{}, &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode == http.StatusBadRequest {
		return model.Message{}, &ClientError{Type: ErrTypeValidation, Message: errorDetail(resp, "message rejected")}
	}
	if resp.StatusCode != http.StatusOK {
		return model.Message{}, c.errorFromResponse(resp, "send failed")
	}

	var reply model.Message
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(&reply); err != nil {
		return model.Message{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode reply", Cause: err}
	}
	return reply, nil
}

// =============================================================================
// DELETE
// =============================================================================

// Delete removes the message at the given position in the server's history.
// The wire protocol is positional; callers compute the index from the
// pre-mutation list.
func (c *Client) Delete(ctx context.Context, index int) error {
	url := c.config.BaseURL + "/api/messages/" + strconv.Itoa(index)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend is not reachable", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp, "delete failed")
	}
	return nil
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

type transcriptResponse struct {
	Transcript json.RawMessage `json:"transcript"`
}

// Transcript fetches the transcript for a video. The fetch is attempted a
// fixed number of times with a fixed delay between attempts; the delay wait
// honors context cancellation. Only the final attempt's failure is surfaced.
func (c *Client) Transcript(ctx context.Context, videoID string) (model.Transcript, error) {
	if videoID == "" {
		return nil, &ClientError{Type: ErrTypeValidation, Message: "video id is empty"}
	}

	var lastErr error
	for attempt := 0; attempt < c.config.TranscriptAttempts; attempt++ {
		if attempt > 0 {
			// Fixed delay, not exponential backoff.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.TranscriptDelay):
			}
		}

		lines, err := c.fetchTranscriptOnce(ctx, videoID)
		if err == nil {
			return lines, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, &ClientError{
		Type:    ErrTypeServer,
		Message: "transcript unavailable for " + videoID + " after " + strconv.Itoa(c.config.TranscriptAttempts) + " attempts",
		Cause:   lastErr,
	}
}

func (c *Client) fetchTranscriptOnce(ctx context.Context, videoID string) (model.Transcript, error) {
	url := c.config.BaseURL + "/api/messages/transcript/" + videoID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "transcript fetch failed", Cause: err}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp, "transcript fetch failed")
	}

	var tr transcriptResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(&tr); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode transcript", Cause: err}
	}

	// An unexpected transcript shape degrades to an empty list, not an error.
	var lines model.Transcript
	if err := json.Unmarshal(tr.Transcript, &lines); err != nil {
		return model.Transcript{}, nil
	}
	return lines, nil
}

// =============================================================================
// HELPERS
// =============================================================================

type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// errorDetail extracts the backend's {detail} error body, falling back to the
// given message when the body is not in that shape.
func errorDetail(resp *http.Response, fallback string) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var apiErr apiErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
			return apiErr.Detail
		}
	}
	return fallback
}

func (c *Client) errorFromResponse(resp *http.Response, context string) error {
	errType := ErrTypeServer
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
		errType = ErrTypeValidation
	}
	return &ClientError{
		Type:    errType,
		Message: context + " (" + resp.Status + "): " + errorDetail(resp, "no detail"),
	}
}

// drainAndClose drains the remaining body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, 4096))
	body.Close()
}
