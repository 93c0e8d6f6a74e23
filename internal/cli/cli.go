// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for vidchat.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdTranscript
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ServerURL string
	Debug     bool
	NoColor   bool
	JSON      bool

	// Command-specific
	Query      string
	VideoID    string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Confirm    bool
}

const usageText = `vidchat - chat with an AI tutor about course videos

Vidchat is a terminal client for a video-course chat backend. It shows the
video transcript side by side with a shared conversation, and can ask
one-off questions from the command line.

Usage:
  vidchat                      Start the TUI (default)
  vidchat ask "question"       Ask a single question and print the reply
  vidchat chat                 Interactive chat in the terminal
  vidchat transcript <id>      Print the transcript for a video
  vidchat history [subcommand] Watch history (list, clear --confirm)
  vidchat config [subcommand]  Configuration (show, get <key>, set <key> <value>)
  vidchat version              Show version information
  vidchat help                 Show this help

Global flags:
  --server URL    Backend base URL (default from config)
  --debug         Verbose diagnostics on stderr
  --no-color      Disable colored output

Command flags:
  transcript --json            Print the transcript as JSON
  history --limit N            Number of entries to list (default 20)
  history clear --confirm      Required to clear watch history
  config show --json           Print config as JSON

Environment:
  VIDCHAT_SERVER_URL           Override server.url
  VIDCHAT_THEME                Override ui.theme (auto, dark, light)
  NO_COLOR                     Disable colored output

Exit codes:
  0  success
  1  runtime error (server unreachable, request failed)
  2  usage error (unknown command or flags)
`

// ParseCommand determines the command and its arguments.
func ParseCommand(argv []string) (Command, *ArgParser) {
	if len(argv) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	cmd := argv[0]
	rest := argv[1:]

	switch cmd {
	case "ask":
		return CmdAsk, NewArgParser(rest)
	case "chat":
		return CmdChat, NewArgParser(rest)
	case "transcript":
		return CmdTranscript, NewArgParser(rest)
	case "history":
		return CmdHistory, NewArgParser(rest)
	case "config":
		return CmdConfig, NewArgParser(rest)
	case "version", "--version", "-v":
		return CmdVersion, NewArgParser(rest)
	case "help", "--help", "-h":
		return CmdHelp, NewArgParser(rest)
	}

	if strings.HasPrefix(cmd, "-") {
		// Bare flags mean the default TUI command.
		return CmdTUI, NewArgParser(argv)
	}

	// Unknown command.
	return CmdHelp, nil
}

// globalArgs extracts the global flags shared by every command.
func globalArgs(parser *ArgParser) Args {
	return Args{
		ServerURL: parser.Flag("server"),
		Debug:     parser.BoolFlag("debug"),
		NoColor:   parser.BoolFlag("no-color"),
		JSON:      parser.BoolFlag("json"),
	}
}

// newClient builds the API client from config plus the --server override.
func newClient(args Args) *api.Client {
	cfg := config.Global()
	clientConfig := api.DefaultConfig()
	clientConfig.BaseURL = cfg.Server.URL
	if args.ServerURL != "" {
		clientConfig.BaseURL = args.ServerURL
	}
	if cfg.Server.TimeoutSecs > 0 {
		clientConfig.Timeout = secondsToDuration(cfg.Server.TimeoutSecs)
	}
	clientConfig.TranscriptAttempts = cfg.Transcript.Attempts
	clientConfig.TranscriptDelay = secondsToDuration(cfg.Transcript.DelaySecs)
	return api.NewClientWithConfig(clientConfig)
}

// Run dispatches the CLI and returns the process exit code.
func Run(argv []string) int {
	command, parser := ParseCommand(argv)
	if parser == nil {
		fmt.Fprintf(os.Stderr, "vidchat: unknown command %q\n\n", argv[0])
		fmt.Fprint(os.Stderr, usageText)
		return ExitUsage
	}

	args := globalArgs(parser)
	if args.NoColor {
		ForceColorsEnabled(false)
	}

	switch command {
	case CmdVersion:
		fmt.Printf("vidchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		return ExitOK

	case CmdHelp:
		fmt.Print(usageText)
		return ExitOK

	case CmdAsk:
		args.Query = JoinPositionalFrom(parser, 0)
		return HandleAskCommand(args)

	case CmdChat:
		return HandleChatCommand(args)

	case CmdTranscript:
		args.VideoID = parser.Positional(0)
		return HandleTranscriptCommand(args)

	case CmdHistory:
		args.Subcommand = parser.Subcommand()
		args.Confirm = parser.BoolFlag("confirm")
		return HandleHistoryCommand(args, parser)

	case CmdConfig:
		args.Subcommand = parser.Subcommand()
		args.ConfigKey = parser.Positional(1)
		args.ConfigVal = parser.Positional(2)
		return HandleConfigCommand(args)

	default:
		return HandleTUICommand(args)
	}
}

func secondsToDuration(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

// debugf prints diagnostics when --debug is set.
func debugf(args Args, format string, v ...interface{}) {
	if !args.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "vidchat: "+format+"\n", v...)
}
