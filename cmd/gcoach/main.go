package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tvanier/garmin-coach/internal/log"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "gcoach",
		Short:   "Garmin running coach - fetch your activity history and chat about it",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(logLevel)
		},
		// Default workflow: fetch then chat.
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runFetch(cmd.Context(), 0); err != nil {
				return err
			}
			return runChat(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// A keyboard interrupt is a clean exit, anything else is not.
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
