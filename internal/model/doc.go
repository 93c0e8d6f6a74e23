// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the core domain types for vidchat.
//
// # Key Types
//
//   - Message: a single chat turn with a client-assigned stable ID, role,
//     normalized text content, and an optimistic-mutation state
//   - Transcript / TranscriptLine: timed video transcript lines; the active
//     line is derived from a playback position, never stored
//   - Catalog / VideoCatalogEntry: the static selectable video set with
//     case-insensitive title filtering
//
// The backend's message content is a tagged union (a plain string or a list
// of typed parts). It is normalized to plain text by Message.UnmarshalJSON so
// rendering code never type-probes.
package model
