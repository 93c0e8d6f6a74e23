// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// TranscriptLine is a single timed line of a video transcript. Start and
// Duration are in seconds, matching the backend's wire format.
type TranscriptLine struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the exclusive end of the line's time range in seconds.
func (l TranscriptLine) End() float64 {
	return l.Start + l.Duration
}

// StartTimestamp formats the line's start as m:ss (or h:mm:ss past an hour).
func (l TranscriptLine) StartTimestamp() string {
	d := time.Duration(l.Start * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return itoa2(h) + ":" + pad2(m) + ":" + pad2(s)
	}
	return itoa2(m) + ":" + pad2(s)
}

// Transcript is an ordered sequence of lines for a single video. It is
// replaced wholesale on every successful fetch, never merged.
type Transcript []TranscriptLine

// ActiveIndex returns the index of the line whose time range contains
// currentTime, or -1 when no line is active. A line is active while
// currentTime is in [Start, Start+Duration).
func (t Transcript) ActiveIndex(currentTime float64) int {
	for i, l := range t {
		if currentTime >= l.Start && currentTime < l.End() {
			return i
		}
	}
	return -1
}

// TotalDuration returns the end time of the last line in seconds, which
// bounds the simulated playback position.
func (t Transcript) TotalDuration() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End()
}

func itoa2(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa2(n/10) + string(rune('0'+n%10))
}

func pad2(n int) string {
	if n < 10 {
		return "0" + itoa2(n)
	}
	return itoa2(n)
}
