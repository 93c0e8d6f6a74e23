// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// UPLOAD DIALOG
// =============================================================================

// AllowedUploadExtensions lists the document types the backend will accept.
var AllowedUploadExtensions = []string{".pdf", ".txt", ".md", ".epub"}

// UploadDialog collects a document path for course-material upload. Upload
// itself is not implemented server-side yet; a valid path produces an
// informational notice.
type UploadDialog struct {
	input  textinput.Model
	errMsg string
	notice string
	width  int
	theme  *styles.Theme
}

// NewUploadDialog creates the dialog with the path input focused.
func NewUploadDialog(theme *styles.Theme) *UploadDialog {
	input := textinput.New()
	input.Placeholder = "/path/to/document.pdf"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Focus()

	return &UploadDialog{
		input: input,
		width: 50,
		theme: theme,
	}
}

// SetWidth resizes the dialog.
func (d *UploadDialog) SetWidth(width int) {
	d.width = width
	d.input.Width = width - 8
}

// Reset clears input and messages.
func (d *UploadDialog) Reset() {
	d.input.SetValue("")
	d.errMsg = ""
	d.notice = ""
	d.input.Focus()
}

// ValidUploadPath reports whether path has an accepted document extension.
func ValidUploadPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Update handles one input event. done is true when the dialog should close.
func (d *UploadDialog) Update(msg tea.Msg) (done bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		path := strings.TrimSpace(d.input.Value())
		if path == "" {
			d.errMsg = "Enter a file path."
			return false, nil
		}
		if !ValidUploadPath(path) {
			d.errMsg = "Unsupported file type. Allowed: " + strings.Join(AllowedUploadExtensions, ", ")
			return false, nil
		}
		d.errMsg = ""
		d.notice = "Document upload is not available yet. " + filepath.Base(path) + " was not sent."
		return false, nil
	}

	var c tea.Cmd
	d.input, c = d.input.Update(msg)
	return false, c
}

// View renders the dialog box.
func (d *UploadDialog) View() string {
	var sb strings.Builder
	sb.WriteString(d.theme.DialogTitle.Render("Upload course material"))
	sb.WriteString("\n\n")
	sb.WriteString(d.input.View())
	sb.WriteByte('\n')

	if d.errMsg != "" {
		sb.WriteByte('\n')
		sb.WriteString(d.theme.DialogError.Render(styles.StatusIndicators.Error + " " + d.errMsg))
	}
	if d.notice != "" {
		sb.WriteByte('\n')
		sb.WriteString(d.theme.DialogHint.Render(styles.StatusIndicators.Info + " " + d.notice))
	}

	sb.WriteString("\n\n")
	sb.WriteString(d.theme.DialogHint.Render("enter confirm - esc close"))

	return d.theme.DialogBox.Width(d.width).Render(sb.String())
}
