package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromNumber(t *testing.T) {
	var a ActivitySummary
	// Large enough to lose digits if routed through a float64.
	require.NoError(t, json.Unmarshal([]byte(`{"activityId": 12345678901234567}`), &a))
	assert.Equal(t, ID("12345678901234567"), a.ActivityID)
}

func TestIDFromString(t *testing.T) {
	var a ActivitySummary
	require.NoError(t, json.Unmarshal([]byte(`{"activityId": "a-17"}`), &a))
	assert.Equal(t, ID("a-17"), a.ActivityID)
}

func TestIDNullAndInvalid(t *testing.T) {
	var a ActivitySummary
	require.NoError(t, json.Unmarshal([]byte(`{"activityId": null}`), &a))
	assert.Equal(t, ID(""), a.ActivityID)

	require.Error(t, json.Unmarshal([]byte(`{"activityId": {}}`), &a))
}

func TestIDMarshalsAsString(t *testing.T) {
	data, err := json.Marshal(ActivitySummary{ActivityID: "42"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"activityId":"42"`)
}

func TestAbsentHeartRateSerializesAsNull(t *testing.T) {
	data, err := json.Marshal(Lap{LapNumber: 1})
	require.NoError(t, err)
	// Explicit null keeps downstream field access total.
	assert.Contains(t, string(data), `"averageHR":null`)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record))
	v, ok := record["averageHR"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestHeartRateRoundTrip(t *testing.T) {
	hr := 151.2
	maxHR := 172.0
	in := ActivitySummary{
		ActivityID:   "1",
		ActivityName: "Intervals",
		ActivityType: "track_running",
		AverageHR:    &hr,
		MaxHR:        &maxHR,
		Laps:         []Lap{{LapNumber: 1, AverageHR: &hr}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out ActivitySummary
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
