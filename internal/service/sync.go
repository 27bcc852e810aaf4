package service

import (
	"context"
	"fmt"
	"time"

	"longevity/internal/analysis"
	"longevity/internal/garmin"
	"longevity/internal/store"
	"longevity/internal/strava"
)

// lastStravaSyncKey is the sync_state key holding the RFC3339 timestamp
// of the last successful Strava pull.
const lastStravaSyncKey = "last_strava_sync"

// SyncService pulls data from the configured vendors, classifies
// activities on ingest, and refreshes all derived state.
type SyncService struct {
	store      *store.DB
	garmin     *garmin.Client // nil when Garmin is not configured
	strava     *strava.Client // nil when Strava is not configured
	thresholds analysis.Thresholds
	goals      analysis.Goals
}

// NewSyncService creates a sync service. Either client may be nil;
// that vendor is simply skipped.
func NewSyncService(db *store.DB, garminClient *garmin.Client, stravaClient *strava.Client, thresholds analysis.Thresholds, goals analysis.Goals) *SyncService {
	return &SyncService{
		store:      db,
		garmin:     garminClient,
		strava:     stravaClient,
		thresholds: thresholds,
		goals:      goals,
	}
}

// SyncProgress reports progress during a sync
type SyncProgress struct {
	Phase     string // "wellness", "activities", "recompute"
	Total     int
	Completed int
	Error     error
}

// SyncResult summarizes what a sync accomplished
type SyncResult struct {
	ActivitiesFetched int
	ActivitiesStored  int
	MetricsStored     int
	WeeksSummarized   int
	CurrentStreak     int
	Errors            []error
}

// SyncDaily pulls one day of data (defaulting upstream to yesterday)
// and recomputes derived state.
func (s *SyncService) SyncDaily(ctx context.Context, targetDate time.Time, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}
	day := calendarDate(targetDate)

	if s.garmin != nil {
		if err := s.syncGarminWellness(ctx, day, day, progress, result); err != nil {
			return result, fmt.Errorf("syncing wellness data: %w", err)
		}
		if err := s.syncGarminActivities(ctx, day, day, progress, result); err != nil {
			return result, fmt.Errorf("syncing garmin activities: %w", err)
		}
	}

	if s.strava != nil {
		if err := s.syncStravaActivities(ctx, progress, result); err != nil {
			return result, fmt.Errorf("syncing strava activities: %w", err)
		}
	}

	if err := s.recomputeAfterSync(progress, result); err != nil {
		return result, err
	}

	return result, nil
}

// SyncHistorical backfills the past N days of wellness data and
// activities, then recomputes derived state including weekly summaries.
func (s *SyncService) SyncHistorical(ctx context.Context, days int, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}
	if days <= 0 {
		days = DefaultHistoryDays
	}

	result := &SyncResult{}
	end := calendarDate(time.Now())
	start := end.AddDate(0, 0, -days)

	if s.garmin != nil {
		if err := s.syncGarminWellness(ctx, start, end, progress, result); err != nil {
			return result, fmt.Errorf("syncing wellness data: %w", err)
		}
		if err := s.syncGarminActivities(ctx, start, end, progress, result); err != nil {
			return result, fmt.Errorf("syncing garmin activities: %w", err)
		}
	}

	if s.strava != nil {
		if err := s.syncStravaActivities(ctx, progress, result); err != nil {
			return result, fmt.Errorf("syncing strava activities: %w", err)
		}
	}

	if err := s.recomputeAfterSync(progress, result); err != nil {
		return result, err
	}

	return result, nil
}

// syncGarminWellness pulls the wellness endpoints day by day. A single
// failed day is recorded and skipped rather than aborting the run.
func (s *SyncService) syncGarminWellness(ctx context.Context, start, end time.Time, progress chan<- SyncProgress, result *SyncResult) error {
	totalDays := int(end.Sub(start).Hours()/24) + 1

	for i, day := 0, start; !day.After(end); i, day = i+1, day.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		metric, err := s.fetchGarminDay(ctx, day)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		if err := s.store.UpsertDailyMetric(&metric); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing metrics for %s: %w", day.Format("2006-01-02"), err))
			continue
		}
		result.MetricsStored++

		if progress != nil {
			progress <- SyncProgress{Phase: "wellness", Total: totalDays, Completed: i + 1}
		}
	}

	return nil
}

// fetchGarminDay folds the per-endpoint responses into one metric row.
// Individual endpoint failures leave that field nil.
func (s *SyncService) fetchGarminDay(ctx context.Context, day time.Time) (store.DailyMetric, error) {
	summary, err := s.garmin.GetDailySummary(ctx, day)
	if err != nil {
		return store.DailyMetric{}, fmt.Errorf("fetching wellness for %s: %w", day.Format("2006-01-02"), err)
	}

	sleep, _ := s.garmin.GetSleep(ctx, day)
	hr, _ := s.garmin.GetHeartRates(ctx, day)
	stress, _ := s.garmin.GetStress(ctx, day)
	body, _ := s.garmin.GetBodyComposition(ctx, day)

	return garmin.BuildDailyMetric(day, summary, sleep, hr, stress, body), nil
}

func (s *SyncService) syncGarminActivities(ctx context.Context, start, end time.Time, progress chan<- SyncProgress, result *SyncResult) error {
	items, err := s.garmin.ListActivities(ctx, start, end)
	if err != nil {
		return err
	}
	result.ActivitiesFetched += len(items)

	for i, item := range items {
		activity, err := item.ToStoreActivity()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("converting garmin activity %d: %w", item.ActivityID, err))
			continue
		}
		if err := s.storeClassified(activity); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.ActivitiesStored++

		if progress != nil {
			progress <- SyncProgress{Phase: "activities", Total: len(items), Completed: i + 1}
		}
	}

	return nil
}

func (s *SyncService) syncStravaActivities(ctx context.Context, progress chan<- SyncProgress, result *SyncResult) error {
	var after time.Time
	if lastSync, err := s.store.GetSyncWatermark(lastStravaSyncKey); err == nil && lastSync != "" {
		after, _ = time.Parse(time.RFC3339, lastSync)
	}

	items, err := s.strava.ListAllActivities(ctx, after, func(fetched int) {
		if progress != nil {
			progress <- SyncProgress{Phase: "activities", Total: fetched, Completed: fetched}
		}
	})
	if err != nil {
		return err
	}
	result.ActivitiesFetched += len(items)

	for _, item := range items {
		if err := s.storeClassified(item.ToStoreActivity()); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.ActivitiesStored++
	}

	if err := s.store.SetSyncWatermark(lastStravaSyncKey, time.Now().Format(time.RFC3339)); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("recording sync time: %w", err))
	}

	return nil
}

// storeClassified assigns a training zone and upserts the activity
func (s *SyncService) storeClassified(activity store.Activity) error {
	activity.ZoneClassification = analysis.Classify(activity, s.thresholds)
	if _, err := s.store.UpsertActivity(&activity); err != nil {
		return fmt.Errorf("storing activity: %w", err)
	}
	return nil
}

func (s *SyncService) recomputeAfterSync(progress chan<- SyncProgress, result *SyncResult) error {
	if progress != nil {
		progress <- SyncProgress{Phase: "recompute"}
	}

	recompute, err := s.Recompute(time.Now())
	if err != nil {
		return fmt.Errorf("recomputing derived state: %w", err)
	}
	result.WeeksSummarized = recompute.WeeksSummarized
	result.CurrentStreak = recompute.CurrentStreak

	return nil
}
