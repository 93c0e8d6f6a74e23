// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/render"
	"github.com/jmorganforge/vidchat/internal/session"
	"github.com/jmorganforge/vidchat/internal/storage"
	"github.com/jmorganforge/vidchat/internal/ui/components"
	"github.com/jmorganforge/vidchat/internal/ui/styles"
)

// =============================================================================
// FOCUS AND OVERLAY STATE
// =============================================================================

// Focus identifies which pane receives input.
type Focus int

const (
	FocusInput Focus = iota
	FocusMessages
	FocusMedia
)

// Overlay identifies the active modal, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlaySidebar
	OverlayUpload
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures the chat program.
type Options struct {
	Client  *api.Client
	Store   *storage.HistoryStore // nil disables watch history
	Catalog model.Catalog
	Config  *config.Config
}

// Model is the Bubble Tea model for the vidchat TUI.
type Model struct {
	// Styling
	theme  *styles.Theme
	keyMap KeyMap

	// Wiring
	client   *api.Client
	sess     *session.Session
	store    *storage.HistoryStore
	renderer *render.Renderer

	// Layout
	layout *PanelLayout
	width  int
	height int

	// Components
	header      *components.Header
	messageList *components.MessageList
	transcript  *components.TranscriptView
	statusBar   *components.StatusBar
	sidebar     *components.Sidebar
	dialog      *components.UploadDialog
	thinking    *components.ThinkingIndicator

	// Chat pane
	viewport viewport.Model
	input    textinput.Model

	// Interaction state
	focus      Focus
	overlay    Overlay
	showHelp   bool
	deleteMode bool
	deleteIdx  int

	// Video state
	catalog      model.Catalog
	currentVideo model.VideoCatalogEntry
	hasVideo     bool
	playing      bool
	currentTime  float64

	// Status
	connected      bool
	loadingHistory bool
	statusSeq      int
}

// New creates the chat model.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := styles.NewTheme()
	theme.ApplyMode(cfg.UI.Theme)

	renderer, err := render.New(60)
	if err != nil {
		renderer = nil
	}

	input := textinput.New()
	input.Placeholder = "Ask about the video..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = model.DefaultCatalog()
	}

	m := &Model{
		theme:       theme,
		keyMap:      DefaultKeyMap(),
		client:      opts.Client,
		sess:        session.New(),
		store:       opts.Store,
		renderer:    renderer,
		layout:      NewPanelLayout(cfg.UI.PanelRatio),
		header:      components.NewHeader(theme),
		messageList: components.NewMessageList(theme, renderer),
		transcript:  components.NewTranscriptView(theme, cfg.UI.ShowTimestamps),
		statusBar:   components.NewStatusBar(theme),
		sidebar:     components.NewSidebar(theme, catalog),
		dialog:      components.NewUploadDialog(theme),
		thinking:    components.NewThinkingIndicator(theme),
		viewport:    viewport.New(60, 20),
		input:       input,
		catalog:     catalog,
		width:       100,
		height:      30,
	}
	m.loadingHistory = true
	m.thinking.SetLabel("loading history")
	m.messageList.ShowTimestamps = cfg.UI.ShowTimestamps
	m.header.ServerURL = opts.Client.BaseURL()

	// Open on the first catalog entry so the transcript pane has content.
	if len(catalog) > 0 {
		m.setVideo(catalog[0])
	}

	return m
}

// setVideo switches the current video and resets playback.
func (m *Model) setVideo(entry model.VideoCatalogEntry) {
	m.currentVideo = entry
	m.hasVideo = true
	m.playing = false
	m.currentTime = 0
	m.header.VideoTitle = entry.Title
	m.transcript.SetLoading()
}

// chosenEntry resolves a sidebar pick to a catalog entry. History rows for
// videos that left the catalog still open with their stored title.
func chosenEntry(m *Model, id, title string) model.VideoCatalogEntry {
	if entry, ok := m.catalog.ByID(id); ok {
		return entry
	}
	return model.VideoCatalogEntry{ID: id, Title: title}
}

// CurrentVideoID returns the id of the open video, or "".
func (m *Model) CurrentVideoID() string {
	if !m.hasVideo {
		return ""
	}
	return m.currentVideo.ID
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadHistoryCmd(m.client),
		SpinnerTickCmd(m.thinking.FPS()),
		PlaybackTickCmd(),
		textinput.Blink,
	}
	if m.hasVideo {
		cmds = append(cmds,
			TranscriptCmd(m.client, m.currentVideo.ID),
			RecordWatchCmd(m.store, m.currentVideo.ID, m.currentVideo.Title),
		)
	}
	if cmd := RecentVideosCmd(m.store, 5); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// setStatus shows a transient message in the status bar.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusSeq++
	m.statusBar.SetStatus(msg, isError)
	return StatusExpireCmd(m.statusSeq, statusDisplayDuration)
}

// refreshMessages pushes the session state into the viewport.
func (m *Model) refreshMessages() {
	msgs := m.sess.Messages()
	m.messageList.SetMessages(msgs)

	if m.deleteMode {
		if id, ok := m.deleteTargetID(); ok {
			m.messageList.SelectedID = id
		} else {
			m.messageList.SelectedID = ""
		}
	} else {
		m.messageList.SelectedID = ""
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.messageList.View())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// deleteTargetID resolves the delete-mode cursor to a message id.
func (m *Model) deleteTargetID() (string, bool) {
	users := m.userMessageIndices()
	if len(users) == 0 {
		return "", false
	}
	if m.deleteIdx < 0 {
		m.deleteIdx = 0
	}
	if m.deleteIdx >= len(users) {
		m.deleteIdx = len(users) - 1
	}
	return m.sess.Messages()[users[m.deleteIdx]].ID, true
}

// userMessageIndices lists the positions of committed user messages, the
// only ones eligible for deletion.
func (m *Model) userMessageIndices() []int {
	var out []int
	for i, msg := range m.sess.Messages() {
		if msg.Role == model.RoleUser && msg.State == model.StateCommitted {
			out = append(out, i)
		}
	}
	return out
}

// failedMessageID returns the id of the most recent failed send, if any.
func (m *Model) failedMessageID() (string, bool) {
	msgs := m.sess.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].State == model.StateFailed {
			return msgs[i].ID, true
		}
	}
	return "", false
}
