package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tvanier/garmin-coach/internal/model"
)

// Save serializes the full activity list to path as an indented JSON array,
// fully replacing any previous content. The indentation is cosmetic.
func Save(path string, activities []model.ActivitySummary) error {
	if activities == nil {
		activities = []model.ActivitySummary{}
	}
	data, err := json.MarshalIndent(activities, "", "    ")
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads the snapshot back as plain records. The ActivitySummary type
// is deliberately not reconstructed; downstream consumption only needs
// field access, not behavior.
func Load(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %s not found, run the fetch step first: %w", path, err)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("snapshot %s is invalid: expected a JSON array of activities", path)
		}
		return nil, fmt.Errorf("snapshot %s contains invalid JSON: %w", path, err)
	}
	if records == nil {
		// A bare "null" document is not an activity list.
		return nil, fmt.Errorf("snapshot %s is invalid: expected a JSON array of activities", path)
	}
	return records, nil
}
