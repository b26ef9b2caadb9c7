package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tvanier/garmin-coach/internal/config"
	"github.com/tvanier/garmin-coach/internal/fetch"
	"github.com/tvanier/garmin-coach/internal/garmin"
	"github.com/tvanier/garmin-coach/internal/log"
	"github.com/tvanier/garmin-coach/internal/snapshot"
)

func fetchCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch running activities from Garmin Connect and save the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Lookback window in days (0 = config value)")

	return cmd
}

// runFetch authenticates, fetches the running activities of the lookback
// window, and overwrites the snapshot file. days == 0 uses the configured
// lookback.
func runFetch(ctx context.Context, days int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if days <= 0 {
		days = cfg.LookbackDays
	}

	email, password, err := config.GarminCredentials()
	if err != nil {
		return err
	}

	client := garmin.New(garmin.Credentials{Email: email, Password: password}, cfg.TokenDir)
	client.SetMFAPrompt(func() (string, error) {
		return promptMFACode(ctx)
	})

	log.L().Info("authenticating with Garmin Connect")
	if err := client.Login(ctx); err != nil {
		return err
	}

	opts := []fetch.Option{fetch.WithBatchSize(cfg.BatchSize)}
	if !cfg.AssumeReverseChronological {
		opts = append(opts, fetch.WithoutEarlyTermination())
	}

	log.L().Infof("fetching running activities from the last %d days", days)
	activities, err := fetch.New(client, opts...).RunningActivities(ctx, days)
	if err != nil {
		return err
	}

	if err := snapshot.Save(cfg.SnapshotPath, activities); err != nil {
		return err
	}
	log.L().Infof("saved %d activities to %s", len(activities), cfg.SnapshotPath)
	fmt.Printf("Saved %d activities to %s\n", len(activities), cfg.SnapshotPath)
	return nil
}

func promptMFACode(ctx context.Context) (string, error) {
	fmt.Print("Enter your Garmin MFA code: ")
	return readLineContext(ctx, os.Stdin)
}

// readLineContext reads one line, giving up when ctx is canceled so an
// interrupt at the prompt is not swallowed by the blocking read.
func readLineContext(ctx context.Context, r io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(r).ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Println()
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
