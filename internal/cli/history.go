// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Watch-history commands for the vidchat CLI.
//
// Command: history
// Short:   Inspect or clear the local watch history
//
// Examples:
//   vidchat history                 List recent watches
//   vidchat history list --limit 50
//   vidchat history clear --confirm
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/storage"
)

// HandleHistoryCommand dispatches the history subcommands.
func HandleHistoryCommand(args Args, parser *ArgParser) int {
	cfg := config.Global()
	if !cfg.History.Enabled {
		fmt.Println("Watch history is disabled (history.enabled = false).")
		return ExitOK
	}

	path, err := cfg.HistoryDBPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
		return ExitError
	}

	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "cannot open history: "+err.Error()))
		return ExitError
	}
	defer store.Close()

	switch args.Subcommand {
	case "", "list":
		limit := 20
		if v := parser.Flag("limit"); v != "" {
			n, err := parseLimit(v)
			if err != nil {
				fmt.Fprintln(os.Stderr, "vidchat: "+err.Error())
				return ExitUsage
			}
			limit = n
		}
		return listHistory(store, limit)

	case "clear":
		if !args.Confirm {
			fmt.Fprintln(os.Stderr, "vidchat: history clear requires --confirm")
			return ExitUsage
		}
		if err := store.Clear(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
			return ExitError
		}
		fmt.Println("Watch history cleared.")
		return ExitOK

	default:
		fmt.Fprintf(os.Stderr, "vidchat: unknown history subcommand %q\n", args.Subcommand)
		return ExitUsage
	}
}

func listHistory(store *storage.HistoryStore, limit int) int {
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
		return ExitError
	}
	if len(entries) == 0 {
		fmt.Println("No watch history yet.")
		return ExitOK
	}

	for _, e := range entries {
		when := e.WatchedAt.Format("2006-01-02 15:04")
		fmt.Println(styled(timestampStyle, when) + "  " + e.Title + styled(infoStyle, " ("+e.VideoID+")"))
	}
	return ExitOK
}

func parseLimit(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid --limit value %q", s)
	}
	return n, nil
}
