// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/ui/styles"
	"github.com/jmorganforge/vidchat/internal/util"
)

// =============================================================================
// VIDEO SIDEBAR
// =============================================================================

// SidebarItem is one selectable row in the sidebar.
type SidebarItem struct {
	ID          string
	Title       string
	FromHistory bool
}

// Sidebar is the video picker overlay: a search box over the catalog plus a
// recently-watched section.
type Sidebar struct {
	input    textinput.Model
	catalog  model.Catalog
	recent   []SidebarItem
	filtered []SidebarItem
	selected int
	width    int
	height   int
	theme    *styles.Theme
}

// NewSidebar creates a sidebar over the given catalog.
func NewSidebar(theme *styles.Theme, catalog model.Catalog) *Sidebar {
	input := textinput.New()
	input.Placeholder = "Search videos..."
	input.Prompt = "/ "
	input.CharLimit = 80
	input.Focus()

	s := &Sidebar{
		input:   input,
		catalog: catalog,
		width:   36,
		height:  20,
		theme:   theme,
	}
	s.refilter()
	return s
}

// SetSize resizes the sidebar.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = width - 6
}

// SetRecent installs the recently-watched section, shown above the catalog
// when the search box is empty.
func (s *Sidebar) SetRecent(recent []SidebarItem) {
	s.recent = recent
	s.refilter()
}

// Reset clears the search and selection, keeping the catalog.
func (s *Sidebar) Reset() {
	s.input.SetValue("")
	s.selected = 0
	s.input.Focus()
	s.refilter()
}

// Update handles one input event. It returns the chosen item when the user
// confirms a selection, nil otherwise.
func (s *Sidebar) Update(msg tea.Msg) (*SidebarItem, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyUp:
			if s.selected > 0 {
				s.selected--
			}
			return nil, nil
		case tea.KeyDown:
			if s.selected < len(s.filtered)-1 {
				s.selected++
			}
			return nil, nil
		case tea.KeyEnter:
			if s.selected >= 0 && s.selected < len(s.filtered) {
				item := s.filtered[s.selected]
				return &item, nil
			}
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.refilter()
	return nil, cmd
}

// refilter recomputes the visible rows from the search term.
func (s *Sidebar) refilter() {
	term := s.input.Value()
	s.filtered = s.filtered[:0]

	// Recents only surface while not searching.
	if strings.TrimSpace(term) == "" {
		s.filtered = append(s.filtered, s.recent...)
	}

	for _, entry := range s.catalog.Filter(term) {
		s.filtered = append(s.filtered, SidebarItem{ID: entry.ID, Title: entry.Title})
	}

	if s.selected >= len(s.filtered) {
		s.selected = len(s.filtered) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// View renders the sidebar box.
func (s *Sidebar) View() string {
	var sb strings.Builder

	sb.WriteString(s.theme.SidebarTitle.Render("Videos"))
	sb.WriteByte('\n')
	sb.WriteString(s.input.View())
	sb.WriteString("\n\n")

	if len(s.filtered) == 0 {
		sb.WriteString(s.theme.SidebarItem.Render("No matches."))
	}

	inHistory := false
	for i, item := range s.filtered {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if item.FromHistory && !inHistory {
			sb.WriteString(s.theme.SidebarSection.Render("Recently watched"))
			sb.WriteByte('\n')
			inHistory = true
		}
		if !item.FromHistory && inHistory {
			sb.WriteString(s.theme.SidebarSection.Render("Catalog"))
			sb.WriteByte('\n')
			inHistory = false
		}

		title := util.TruncateWidth(item.Title, s.width-6)
		if i == s.selected {
			sb.WriteString(s.theme.SidebarSelected.Render("> " + title))
		} else {
			sb.WriteString(s.theme.SidebarItem.Render("  " + title))
		}
	}

	box := s.theme.SidebarBox.Width(s.width)
	return box.Render(lipgloss.NewStyle().MaxHeight(s.height).Render(sb.String()))
}
