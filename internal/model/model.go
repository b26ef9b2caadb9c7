package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an activity identifier. Garmin Connect returns it as a JSON number
// in some payloads and as a string in others; it is normalized to a string
// once at ingestion and treated as opaque everywhere downstream.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("activity id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	// Numeric form: keep the raw digits to avoid float64 precision loss.
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("activity id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Lap is one sub-segment of an activity with its own statistics. Immutable
// once constructed and owned exclusively by its parent ActivitySummary.
//
// AverageHR is a pointer so a missing heart-rate reading serializes as an
// explicit null rather than being omitted; consumers can always access the
// field.
type Lap struct {
	LapNumber    int      `json:"lapNumber"`
	StartTime    string   `json:"startTime"`
	Distance     float64  `json:"distance"`
	Duration     float64  `json:"duration"`
	AverageSpeed float64  `json:"averageSpeed"`
	AverageHR    *float64 `json:"averageHR"`
}

// ActivitySummary is one running activity as persisted in the snapshot
// file. ActivityType always contains the substring "running"; Laps is never
// empty in fetch output (a synthetic lap is created when the API has none).
type ActivitySummary struct {
	ActivityID     ID       `json:"activityId"`
	ActivityName   string   `json:"activityName"`
	ActivityType   string   `json:"activityType"`
	StartTimeLocal string   `json:"startTimeLocal"`
	Distance       float64  `json:"distance"`
	Duration       float64  `json:"duration"`
	AverageHR      *float64 `json:"averageHR"`
	MaxHR          *float64 `json:"maxHR"`
	AverageSpeed   float64  `json:"averageSpeed"`
	Laps           []Lap    `json:"laps"`
}
