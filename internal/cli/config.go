// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration commands for the vidchat CLI.
//
// Command: config
// Short:   Show or change configuration
//
// Examples:
//   vidchat config show
//   vidchat config show --json
//   vidchat config get ui.theme
//   vidchat config set ui.theme dark
package cli

import (
	"fmt"
	"os"

	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/render"
)

// HandleConfigCommand dispatches the config subcommands.
func HandleConfigCommand(args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Println(key)
		}
		return ExitOK
	default:
		fmt.Fprintf(os.Stderr, "vidchat: unknown config subcommand %q\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: vidchat config [show|get <key>|set <key> <value>|keys]")
		return ExitUsage
	}
}

func configShow(args Args) int {
	cfg := config.Global()

	if args.JSON {
		out := cfg.String()
		if ColorsEnabled() {
			out = render.HighlightJSON(out)
		}
		fmt.Println(out)
		return ExitOK
	}

	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s = %v\n", key, value)
	}
	return ExitOK
}

func configGet(args Args) int {
	if args.ConfigKey == "" {
		fmt.Fprintln(os.Stderr, "Usage: vidchat config get <key>")
		return ExitUsage
	}

	value, err := config.Global().Get(args.ConfigKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
		return ExitError
	}
	fmt.Printf("%v\n", value)
	return ExitOK
}

func configSet(args Args) int {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		fmt.Fprintln(os.Stderr, "Usage: vidchat config set <key> <value>")
		return ExitUsage
	}

	cfg := config.Global().Clone()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
		return ExitError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "invalid value: "+err.Error()))
		return ExitError
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, styled(errorStyle, "save failed: "+err.Error()))
		return ExitError
	}
	config.SetGlobal(cfg)

	fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
	return ExitOK
}
