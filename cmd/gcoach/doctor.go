package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tvanier/garmin-coach/internal/config"
	"github.com/tvanier/garmin-coach/internal/snapshot"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify credentials, token dir, and snapshot state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Environment ===")
			checkEnv(config.EnvGarminEmail)
			checkEnv(config.EnvGarminPassword)
			checkEnv(config.EnvGeminiAPIKey)

			fmt.Println("\n=== Session token ===")
			fmt.Printf("  Dir: %s\n", cfg.TokenDir)
			tokenPath := filepath.Join(cfg.TokenDir, "token.json")
			if _, err := os.Stat(tokenPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (first run will perform a credential login)")
			} else {
				fmt.Println("  Status: OK (token file present)")
			}

			fmt.Println("\n=== Snapshot ===")
			fmt.Printf("  Path: %s\n", cfg.SnapshotPath)
			info, err := os.Stat(cfg.SnapshotPath)
			if os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'gcoach fetch' first)")
				return nil
			}

			records, err := snapshot.Load(cfg.SnapshotPath)
			if err != nil {
				fmt.Printf("  Status: INVALID (%v)\n", err)
				return nil
			}
			fmt.Printf("  Activities: %d\n", len(records))
			fmt.Printf("  Size: %.1f KB\n", float64(info.Size())/1024)
			fmt.Println("  Status: OK")

			return nil
		},
	}
}

func checkEnv(name string) {
	value := os.Getenv(name)
	if value == "" {
		fmt.Printf("  %s: NOT SET\n", name)
		return
	}
	fmt.Printf("  %s: %s\n", name, maskSecret(value))
}

// maskSecret hides most of a credential while leaving enough to recognize it.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
