// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns assistant message text into terminal output.
package render

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// TABLE DETECTION
// =============================================================================

// fencedJSONRegex extracts the inner text of a ```json fenced block.
var fencedJSONRegex = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")

// Table is tabular data recognized inside an assistant message.
type Table struct {
	Headers []string
	Rows    [][]string
}

// DetectTable probes message content for a structured table payload.
//
// The candidate JSON text is the inner text of a ```json fenced block when
// one is present, otherwise the whole trimmed content. The candidate is
// recognized as a table iff it parses as JSON and carries a data field whose
// headers and rows members are both present and both arrays. Any other
// outcome (parse failure, wrong shape, valid non-table JSON) returns false
// and the caller renders the original raw text as Markdown; the parsed
// object is discarded, never partially rendered.
func DetectTable(content string) (Table, bool) {
	candidate := strings.TrimSpace(content)
	if m := fencedJSONRegex.FindStringSubmatch(content); m != nil {
		candidate = m[1]
	}

	var outer map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &outer); err != nil {
		return Table{}, false
	}
	rawData, ok := outer["data"]
	if !ok {
		return Table{}, false
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(rawData, &data); err != nil {
		return Table{}, false
	}
	rawHeaders, hasHeaders := data["headers"]
	rawRows, hasRows := data["rows"]
	if !hasHeaders || !hasRows {
		return Table{}, false
	}

	headers, ok := decodeCells(rawHeaders)
	if !ok {
		return Table{}, false
	}
	var rawRowList []json.RawMessage
	if err := json.Unmarshal(rawRows, &rawRowList); err != nil {
		return Table{}, false
	}

	rows := make([][]string, 0, len(rawRowList))
	for _, rawRow := range rawRowList {
		cells, ok := decodeCells(rawRow)
		if !ok {
			return Table{}, false
		}
		rows = append(rows, cells)
	}

	return Table{Headers: headers, Rows: rows}, true
}

// decodeCells turns a JSON array into display strings, one per element by
// positional index. Values keep their JSON spelling; there is no coercion.
func decodeCells(raw json.RawMessage) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var values []any
	if err := dec.Decode(&values); err != nil {
		return nil, false
	}

	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = cellString(v)
	}
	return cells, true
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		// Nested arrays or objects keep their JSON spelling.
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// =============================================================================
// TABLE RENDERING
// =============================================================================

// Render draws the table for the terminal, bounded to width columns.
func (t Table) Render(width int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Overlay)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(t.Headers...).
		Rows(t.Rows...)

	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl.String()
}
