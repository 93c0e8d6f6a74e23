// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the vidchat CLI.
//
// Command: ask
// Short:   Ask a single question and print the reply
//
// Examples:
//   vidchat ask "what is covered in lesson 3?"
//   vidchat ask --server http://10.0.0.5:8000 "summarize the video"
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/render"
)

// HandleAskCommand sends one question and prints the assistant reply.
func HandleAskCommand(args Args) int {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, "vidchat: ask requires a question")
		fmt.Fprintln(os.Stderr, `Usage: vidchat ask "question"`)
		return ExitUsage
	}

	client := newClient(args)
	debugf(args, "sending to %s", client.BaseURL())

	reply, err := client.Send(context.Background(), args.Query)
	if err != nil {
		return printClientError(err)
	}

	fmt.Println(renderReply(reply.Content))
	return ExitOK
}

// renderReply formats assistant output for the terminal: tables and Markdown
// when stdout is a TTY, raw text otherwise.
func renderReply(content string) string {
	if !IsStdoutTTY() || !ColorsEnabled() {
		if table, ok := render.DetectTable(content); ok {
			return table.Render(DefaultTerminalWidth)
		}
		return content
	}

	renderer, err := render.New(GetTerminalWidth())
	if err != nil {
		return content
	}
	return renderer.Message(content)
}

// printClientError reports an API failure and picks the exit code.
func printClientError(err error) int {
	switch {
	case api.IsUnreachable(err):
		fmt.Fprintln(os.Stderr, styled(errorStyle, "Cannot reach the vidchat server."))
		fmt.Fprintln(os.Stderr, "Check that the backend is running, or set --server / VIDCHAT_SERVER_URL.")
	case api.IsValidation(err):
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
	default:
		fmt.Fprintln(os.Stderr, styled(errorStyle, err.Error()))
	}
	return ExitError
}
