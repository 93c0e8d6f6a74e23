// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Default TUI command for the vidchat CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/model"
	"github.com/jmorganforge/vidchat/internal/storage"
	"github.com/jmorganforge/vidchat/internal/ui/chat"
)

// HandleTUICommand starts the full-screen TUI.
func HandleTUICommand(args Args) int {
	if !IsTTY() || !IsStdoutTTY() {
		fmt.Fprintln(os.Stderr, "vidchat: the TUI requires an interactive terminal")
		fmt.Fprintln(os.Stderr, `Try "vidchat ask" for non-interactive use.`)
		return ExitUsage
	}

	if args.Debug {
		// Stderr is the altscreen while the program runs; route log output
		// to a file instead.
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "vidchat-debug.log"), "vidchat")
		if err == nil {
			defer f.Close()
		}
	}

	cfg := config.Global()
	client := newClient(args)

	var store *storage.HistoryStore
	if cfg.History.Enabled {
		path, err := cfg.HistoryDBPath()
		if err == nil {
			store, err = storage.Open(path)
		}
		if err != nil {
			debugf(args, "watch history unavailable: %v", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
	}

	m := chat.New(chat.Options{
		Client:  client,
		Store:   store,
		Catalog: model.DefaultCatalog(),
		Config:  cfg,
	})

	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Hot-reload config edits into the running program.
	watcher, err := config.NewWatcher(500*time.Millisecond, func(*config.Config) {
		program.Send(chat.ConfigReloadedMsg{})
	})
	if err == nil {
		if werr := watcher.Watch(); werr != nil {
			debugf(args, "config watch unavailable: %v", werr)
		}
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "TUI error: "+err.Error()))
		return ExitError
	}
	return ExitOK
}
