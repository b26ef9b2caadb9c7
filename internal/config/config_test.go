package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "garmin_data.json", cfg.SnapshotPath)
	assert.Equal(t, filepath.Join(home, ".garmin-coach"), cfg.TokenDir)
	assert.Equal(t, 180, cfg.LookbackDays)
	assert.Equal(t, 20, cfg.BatchSize)
	assert.True(t, cfg.AssumeReverseChronological)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "gcoach")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
snapshot_path = "~/runs/snapshot.json"
lookback_days = 30
assume_reverse_chronological = false
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "runs", "snapshot.json"), cfg.SnapshotPath)
	assert.Equal(t, 30, cfg.LookbackDays)
	assert.False(t, cfg.AssumeReverseChronological)
	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.BatchSize)
}

func TestGarminCredentials(t *testing.T) {
	t.Setenv(EnvGarminEmail, "runner@example.com")
	t.Setenv(EnvGarminPassword, "hunter2")

	email, password, err := GarminCredentials()
	require.NoError(t, err)
	assert.Equal(t, "runner@example.com", email)
	assert.Equal(t, "hunter2", password)
}

func TestGarminCredentialsMissing(t *testing.T) {
	t.Setenv(EnvGarminEmail, "")
	t.Setenv(EnvGarminPassword, "")

	_, _, err := GarminCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvGarminEmail)
	assert.Contains(t, err.Error(), EnvGarminPassword)
}

func TestGeminiAPIKeyMissing(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	_, err := GeminiAPIKey()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvGeminiAPIKey)
}
