// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders assistant message content for a given output width. It
// tries structured-table detection first and falls back to Markdown; the
// two-stage order is the contract, see DetectTable.
type Renderer struct {
	width    int
	markdown *glamour.TermRenderer
}

// New creates a renderer wrapping at the given width. Width <= 0 disables
// wrapping decisions and uses a default of 80.
func New(width int) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{width: width, markdown: md}, nil
}

// Width returns the wrap width this renderer was built for.
func (r *Renderer) Width() int {
	return r.width
}

// Message renders one assistant message: a detected table payload becomes a
// terminal table, everything else becomes Markdown of the original text.
func (r *Renderer) Message(content string) string {
	if t, ok := DetectTable(content); ok {
		return t.Render(r.width)
	}
	return r.Markdown(content)
}

// Markdown renders content as Markdown. A renderer failure degrades to the
// raw text; a malformed message is never surfaced as an error.
func (r *Renderer) Markdown(content string) string {
	out, err := r.markdown.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
