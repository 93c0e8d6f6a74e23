// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command for the vidchat CLI.
//
// Command: chat
// Short:   Chat with the tutor in a plain terminal REPL
//
// Interactive commands:
//   /history          Reload and print the shared conversation
//   /help, /h         Show available commands
//   /quit, /q         Exit chat
//   Ctrl+D            Exit chat
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jmorganforge/vidchat/internal/api"
	"github.com/jmorganforge/vidchat/internal/config"
	"github.com/jmorganforge/vidchat/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the config dir.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *ChatCLI) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChatCommand runs the plain-terminal REPL against the backend.
func HandleChatCommand(args Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "vidchat: chat requires an interactive terminal")
		return ExitUsage
	}

	client := newClient(args)
	input := NewChatCLI()
	defer input.Close()

	fmt.Println(styled(welcomeStyle, "vidchat interactive chat"))
	fmt.Println(styled(infoStyle, "Server: "+client.BaseURL()))
	fmt.Println(styled(infoStyle, "Type /help for commands, /quit to exit."))
	fmt.Println()

	printConversation(client, args)

	for {
		text, err := input.ReadInput(styled(promptStyle, "you> "))
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return ExitOK
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "input error: "+err.Error()))
			return ExitError
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "/") {
			if quit := handleChatSlash(client, args, text); quit {
				return ExitOK
			}
			continue
		}

		reply, err := client.Send(context.Background(), text)
		if err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "send failed: "+err.Error()))
			if api.IsUnreachable(err) {
				return ExitError
			}
			continue
		}

		fmt.Println()
		fmt.Println(renderReply(reply.Content))
		fmt.Println()
	}
}

// handleChatSlash processes an interactive /command. Returns true to exit.
func handleChatSlash(client *api.Client, args Args, text string) bool {
	switch strings.Fields(text)[0] {
	case "/quit", "/q", "/exit":
		return true
	case "/history":
		printConversation(client, args)
	case "/help", "/h":
		fmt.Println(styled(infoStyle, "/history  reload the shared conversation"))
		fmt.Println(styled(infoStyle, "/help     show this help"))
		fmt.Println(styled(infoStyle, "/quit     exit chat"))
	default:
		fmt.Println(styled(infoStyle, "Unknown command. Type /help."))
	}
	return false
}

// printConversation fetches and prints the shared history.
func printConversation(client *api.Client, args Args) {
	msgs, err := client.History(context.Background())
	if err != nil {
		debugf(args, "history load failed: %v", err)
		fmt.Println(styled(infoStyle, "(could not load conversation history)"))
		return
	}
	if len(msgs) == 0 {
		return
	}

	for _, msg := range msgs {
		label := msg.Role.DisplayName()
		switch msg.Role {
		case model.RoleUser:
			fmt.Println(styled(promptStyle, label+":") + " " + msg.Content)
		case model.RoleAssistant:
			fmt.Println(styled(infoStyle, label+":"))
			fmt.Println(renderReply(msg.Content))
		default:
			fmt.Println(styled(infoStyle, label+": "+msg.Content))
		}
		fmt.Println()
	}
}
