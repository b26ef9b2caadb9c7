package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tvanier/garmin-coach/internal/garmin"
	"github.com/tvanier/garmin-coach/internal/log"
	"github.com/tvanier/garmin-coach/internal/model"
)

const (
	defaultBatchSize = 20
	timeLayout       = "2006-01-02 15:04:05"
)

// Client is the slice of the Garmin API the fetcher consumes.
type Client interface {
	Activities(ctx context.Context, start, limit int) ([]garmin.Activity, error)
	ActivitySplits(ctx context.Context, id model.ID) ([]garmin.Lap, error)
	ActivityDetails(ctx context.Context, id model.ID) ([]garmin.Lap, error)
}

// Fetcher pages through the remote activity list and produces normalized
// running activities, each with at least one lap.
type Fetcher struct {
	client       Client
	batchSize    int
	stopAtCutoff bool
	now          func() time.Time
}

type Option func(*Fetcher)

func WithBatchSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithClock overrides the time source used to compute the lookback cutoff.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithoutEarlyTermination disables the assumption that the remote list is
// reverse-chronological. Paging then continues until an empty batch and
// records are filtered individually against the cutoff.
func WithoutEarlyTermination() Option {
	return func(f *Fetcher) { f.stopAtCutoff = false }
}

func New(client Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:       client,
		batchSize:    defaultBatchSize,
		stopAtCutoff: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RunningActivities returns every running-type activity that started within
// the last lookbackDays days, in remote order, with lap detail attached.
// Any remote failure aborts the whole fetch.
func (f *Fetcher) RunningActivities(ctx context.Context, lookbackDays int) ([]model.ActivitySummary, error) {
	cutoff := f.now().AddDate(0, 0, -lookbackDays)
	log.L().Infof("fetching activities since %s", cutoff.Format("2006-01-02"))

	var activities []model.ActivitySummary
	for start := 0; ; start += f.batchSize {
		batch, err := f.client.Activities(ctx, start, f.batchSize)
		if err != nil {
			return nil, fmt.Errorf("list activities (offset %d): %w", start, err)
		}
		if len(batch) == 0 {
			break
		}

		reachedCutoff := false
		for _, act := range batch {
			started, ok := parseStart(act)
			if !ok {
				continue
			}
			if started.Before(cutoff) {
				if f.stopAtCutoff {
					reachedCutoff = true
					break
				}
				continue
			}

			typeKey := strings.ToLower(act.ActivityType.TypeKey)
			if !strings.Contains(typeKey, "running") {
				continue
			}

			log.L().Infof("processing activity %s: %s", act.ActivityID, act.ActivityName)
			laps, err := f.resolveLaps(ctx, act)
			if err != nil {
				return nil, err
			}
			activities = append(activities, summarize(act, typeKey, laps))
		}
		if reachedCutoff {
			break
		}
	}
	return activities, nil
}

// parseStart reads the local start timestamp. A missing or malformed
// timestamp skips the record only, never the whole fetch.
func parseStart(act garmin.Activity) (time.Time, bool) {
	if act.StartTimeLocal == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(timeLayout, act.StartTimeLocal, time.Local)
	if err != nil {
		log.L().Warnf("skipping activity %s: bad start time %q", act.ActivityID, act.StartTimeLocal)
		return time.Time{}, false
	}
	return t, true
}

// resolveLaps attaches lap detail with a three-tier fallback: the dedicated
// splits endpoint, then the laps embedded in the full detail, then a single
// lap synthesized from the activity's own summary fields. Every kept
// activity therefore ends up with at least one lap.
func (f *Fetcher) resolveLaps(ctx context.Context, act garmin.Activity) ([]model.Lap, error) {
	raw, err := f.client.ActivitySplits(ctx, act.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("splits for activity %s: %w", act.ActivityID, err)
	}
	if len(raw) == 0 {
		raw, err = f.client.ActivityDetails(ctx, act.ActivityID)
		if err != nil {
			return nil, fmt.Errorf("details for activity %s: %w", act.ActivityID, err)
		}
	}
	if len(raw) == 0 {
		log.L().Infof("no lap data for activity %s, creating synthetic lap", act.ActivityID)
		start := act.StartTimeGMT
		if start == "" {
			start = act.StartTimeLocal
		}
		return []model.Lap{{
			LapNumber:    1,
			StartTime:    start,
			Distance:     act.Distance,
			Duration:     act.Duration,
			AverageSpeed: act.AverageSpeed,
			AverageHR:    act.AverageHR,
		}}, nil
	}

	laps := make([]model.Lap, 0, len(raw))
	for _, l := range raw {
		laps = append(laps, model.Lap{
			LapNumber:    l.LapIndex,
			StartTime:    l.StartTimeGMT,
			Distance:     l.Distance,
			Duration:     l.Duration,
			AverageSpeed: l.AverageSpeed,
			AverageHR:    l.AverageHeartRate,
		})
	}
	return laps, nil
}

func summarize(act garmin.Activity, typeKey string, laps []model.Lap) model.ActivitySummary {
	name := act.ActivityName
	if name == "" {
		name = "Unnamed"
	}
	return model.ActivitySummary{
		ActivityID:     act.ActivityID,
		ActivityName:   name,
		ActivityType:   typeKey,
		StartTimeLocal: act.StartTimeLocal,
		Distance:       act.Distance,
		Duration:       act.Duration,
		AverageHR:      act.AverageHR,
		MaxHR:          act.MaxHR,
		AverageSpeed:   act.AverageSpeed,
		Laps:           laps,
	}
}
