// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the vidchat backend service.
//
// The backend owns all persistence and AI inference; this client covers its
// four endpoints: message history, assistant send, positional delete, and
// video transcript fetch. Errors are typed (ClientError) so callers can
// distinguish connection, timeout, validation, and server failures.
//
// Transcript fetches retry a fixed number of times with a fixed delay
// between attempts. Nothing else retries.
package api
