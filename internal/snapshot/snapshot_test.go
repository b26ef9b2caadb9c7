package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvanier/garmin-coach/internal/model"
)

func sampleActivities() []model.ActivitySummary {
	hr := 148.0
	return []model.ActivitySummary{
		{
			ActivityID:     "12345678901234567",
			ActivityName:   "Morning Run",
			ActivityType:   "running",
			StartTimeLocal: "2026-08-29 06:12:00",
			Distance:       5012.3,
			Duration:       1534.2,
			AverageHR:      &hr,
			AverageSpeed:   3.27,
			Laps: []model.Lap{
				{LapNumber: 1, StartTime: "2026-08-29 04:12:00", Distance: 1000, Duration: 305, AverageSpeed: 3.28, AverageHR: &hr},
				{LapNumber: 2, StartTime: "2026-08-29 04:17:05", Distance: 1000, Duration: 310, AverageSpeed: 3.23},
			},
		},
		{
			ActivityID:     "2",
			ActivityName:   "Trail Run",
			ActivityType:   "trail_running",
			StartTimeLocal: "2026-08-28 18:00:00",
			Distance:       8200,
			Duration:       3100,
			AverageSpeed:   2.65,
			Laps:           []model.Lap{{LapNumber: 1}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_data.json")
	activities := sampleActivities()

	require.NoError(t, Save(path, activities))
	records, err := Load(path)
	require.NoError(t, err)

	require.Len(t, records, len(activities))

	first := records[0]
	assert.Equal(t, "12345678901234567", first["activityId"])
	assert.Equal(t, "Morning Run", first["activityName"])
	assert.Equal(t, "running", first["activityType"])
	assert.Equal(t, 5012.3, first["distance"])
	assert.Equal(t, 148.0, first["averageHR"])
	// maxHR was absent: present as an explicit null, not omitted.
	v, ok := first["maxHR"]
	assert.True(t, ok)
	assert.Nil(t, v)

	laps, ok := first["laps"].([]any)
	require.True(t, ok)
	require.Len(t, laps, 2)
	lap2 := laps[1].(map[string]any)
	assert.Equal(t, 2.0, lap2["lapNumber"])
	assert.Nil(t, lap2["averageHR"])
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_data.json")

	require.NoError(t, Save(path, sampleActivities()))
	require.NoError(t, Save(path, sampleActivities()[:1]))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSaveEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_data.json")

	require.NoError(t, Save(path, nil))
	records, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "run the fetch step first")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ invalid`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadNonArrayTopLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garmin_data.json")

	for _, doc := range []string{`{"activities": []}`, `null`, `42`} {
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
		_, err := Load(path)
		require.Error(t, err, "doc %s", doc)
		assert.Contains(t, err.Error(), "expected a JSON array")
	}
}
