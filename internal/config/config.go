package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables holding credentials. Config-file settings never
// carry secrets.
const (
	EnvGarminEmail    = "GARMIN_EMAIL"
	EnvGarminPassword = "GARMIN_PASSWORD"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
)

type Config struct {
	SnapshotPath string `toml:"snapshot_path"`
	TokenDir     string `toml:"token_dir"`
	LookbackDays int    `toml:"lookback_days"`
	BatchSize    int    `toml:"batch_size"`
	Model        string `toml:"model"`

	// AssumeReverseChronological controls the early-termination
	// optimization during fetch. The remote list is not documented to be
	// reverse-chronological, so the assumption stays overridable.
	AssumeReverseChronological bool `toml:"assume_reverse_chronological"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SnapshotPath:               "garmin_data.json",
		TokenDir:                   filepath.Join(home, ".garmin-coach"),
		LookbackDays:               180,
		BatchSize:                  20,
		AssumeReverseChronological: true,
	}

	cfgPath := filepath.Join(home, ".config", "gcoach", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.SnapshotPath = expandHome(cfg.SnapshotPath, home)
	cfg.TokenDir = expandHome(cfg.TokenDir, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

// GarminCredentials reads the Garmin Connect credentials from the
// environment, honoring a local .env file when present.
func GarminCredentials() (email, password string, err error) {
	loadDotenv()
	email = os.Getenv(EnvGarminEmail)
	password = os.Getenv(EnvGarminPassword)

	var missing []string
	if email == "" {
		missing = append(missing, EnvGarminEmail)
	}
	if password == "" {
		missing = append(missing, EnvGarminPassword)
	}
	if len(missing) > 0 {
		return "", "", missingEnvError(missing)
	}
	return email, password, nil
}

// GeminiAPIKey reads the Gemini API key from the environment.
func GeminiAPIKey() (string, error) {
	loadDotenv()
	key := os.Getenv(EnvGeminiAPIKey)
	if key == "" {
		return "", missingEnvError([]string{EnvGeminiAPIKey})
	}
	return key, nil
}

func loadDotenv() {
	// Optional; absence of a .env file is the normal case.
	_ = godotenv.Load()
}

func missingEnvError(vars []string) error {
	return fmt.Errorf("missing required environment variables: %s", strings.Join(vars, ", "))
}
