// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args is TUI", nil, CmdTUI},
		{"bare flags are TUI", []string{"--debug"}, CmdTUI},
		{"ask", []string{"ask", "what is this?"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"transcript", []string{"transcript", "abc123"}, CmdTranscript},
		{"history", []string{"history", "clear", "--confirm"}, CmdHistory},
		{"config", []string{"config", "get", "ui.theme"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parser := ParseCommand(tt.argv)
			if got != tt.want {
				t.Errorf("ParseCommand(%v) = %v, want %v", tt.argv, got, tt.want)
			}
			if parser == nil {
				t.Error("parser = nil for known command")
			}
		})
	}
}

func TestParseCommand_Unknown(t *testing.T) {
	cmd, parser := ParseCommand([]string{"frobnicate"})
	if cmd != CmdHelp {
		t.Errorf("ParseCommand(frobnicate) = %v, want CmdHelp", cmd)
	}
	if parser != nil {
		t.Error("parser != nil for unknown command")
	}
}

func TestArgParser(t *testing.T) {
	parser := NewArgParser([]string{"show", "--limit", "50", "--server=http://x:1", "--json", "extra"})

	if parser.Subcommand() != "show" {
		t.Errorf("Subcommand() = %q", parser.Subcommand())
	}
	if parser.Flag("limit") != "50" {
		t.Errorf("Flag(limit) = %q", parser.Flag("limit"))
	}
	if parser.Flag("server") != "http://x:1" {
		t.Errorf("Flag(server) = %q", parser.Flag("server"))
	}
	if !parser.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if parser.Positional(1) != "extra" {
		t.Errorf("Positional(1) = %q", parser.Positional(1))
	}
	if parser.PositionalCount() != 2 {
		t.Errorf("PositionalCount() = %d", parser.PositionalCount())
	}
}

func TestArgParser_BoolOnlyFlagDoesNotEatValue(t *testing.T) {
	parser := NewArgParser([]string{"--json", "dQw4w9WgXcQ"})

	if !parser.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if parser.Positional(0) != "dQw4w9WgXcQ" {
		t.Errorf("Positional(0) = %q, video id was consumed by --json", parser.Positional(0))
	}
}

func TestGlobalArgs(t *testing.T) {
	parser := NewArgParser([]string{"--server", "http://10.0.0.5:8000", "--debug", "--no-color"})
	args := globalArgs(parser)

	if args.ServerURL != "http://10.0.0.5:8000" {
		t.Errorf("ServerURL = %q", args.ServerURL)
	}
	if !args.Debug {
		t.Error("Debug = false")
	}
	if !args.NoColor {
		t.Error("NoColor = false")
	}
}

func TestJoinPositionalFrom(t *testing.T) {
	parser := NewArgParser([]string{"what", "is", "this", "--debug"})
	if got := JoinPositionalFrom(parser, 0); got != "what is this" {
		t.Errorf("JoinPositionalFrom = %q", got)
	}
}
