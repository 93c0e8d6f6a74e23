// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transcript.go - Transcript printing command for the vidchat CLI.
//
// Command: transcript
// Short:   Print the transcript for a video
//
// Examples:
//   vidchat transcript dQw4w9WgXcQ
//   vidchat transcript dQw4w9WgXcQ --json
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmorganforge/vidchat/internal/render"
)

// HandleTranscriptCommand fetches and prints a video transcript.
func HandleTranscriptCommand(args Args) int {
	if args.VideoID == "" {
		fmt.Fprintln(os.Stderr, "vidchat: transcript requires a video id")
		fmt.Fprintln(os.Stderr, "Usage: vidchat transcript <video-id> [--json]")
		return ExitUsage
	}

	client := newClient(args)
	debugf(args, "fetching transcript for %s from %s", args.VideoID, client.BaseURL())

	transcript, err := client.Transcript(context.Background(), args.VideoID)
	if err != nil {
		return printClientError(err)
	}

	if args.JSON {
		data, err := json.MarshalIndent(transcript, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, styled(errorStyle, "encode failed: "+err.Error()))
			return ExitError
		}
		out := string(data)
		if ColorsEnabled() {
			out = render.HighlightJSON(out)
		}
		fmt.Println(out)
		return ExitOK
	}

	if len(transcript) == 0 {
		fmt.Println("No transcript available for " + args.VideoID + ".")
		return ExitOK
	}

	for _, line := range transcript {
		fmt.Println(styled(timestampStyle, line.StartTimestamp()) + "  " + line.Text)
	}
	return ExitOK
}
