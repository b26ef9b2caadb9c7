package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tvanier/garmin-coach/internal/chat"
	"github.com/tvanier/garmin-coach/internal/config"
	"github.com/tvanier/garmin-coach/internal/llm"
	"github.com/tvanier/garmin-coach/internal/log"
	"github.com/tvanier/garmin-coach/internal/snapshot"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat about the saved activity snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context())
		},
	}
}

// runChat loads the snapshot, seeds a Gemini chat session with it as
// context, and hands off to the interactive frontend.
func runChat(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	apiKey, err := config.GeminiAPIKey()
	if err != nil {
		return err
	}

	records, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	log.L().Infof("loaded %d activities from %s", len(records), cfg.SnapshotPath)

	// Compact encoding keeps the context payload small.
	contextJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode chat context: %w", err)
	}

	client, err := llm.New(ctx, apiKey, cfg.Model)
	if err != nil {
		return err
	}
	session, err := client.NewChat(ctx, string(contextJSON))
	if err != nil {
		return err
	}

	// Interactive TUI when stdout is a terminal; plain REPL for pipes.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return chat.Run(ctx, session)
	}
	return chat.RunPlain(ctx, session)
}
