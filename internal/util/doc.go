// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across vidchat.
//
// String helpers are all UTF-8 safe: truncation counts runes or terminal
// display columns (via go-runewidth), never bytes. AtomicWriteFile offers
// crash-safe file writing for configuration saves.
package util
