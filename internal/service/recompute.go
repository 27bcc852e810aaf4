package service

import (
	"errors"
	"fmt"
	"time"

	"longevity/internal/analysis"
	"longevity/internal/store"
)

// RecomputeResult summarizes a derived-state refresh
type RecomputeResult struct {
	ActivitiesAnnotated int
	CurrentStreak       int
	DaysSinceLast       *float64
	WeeksSummarized     int
}

// Recompute rebuilds all derived state from the stored activities:
// per-activity gap annotations, today's consistency snapshot, and the
// weekly summaries from the first recorded week through the week
// containing now. It reads the clock once so every derived value
// reflects the same moment.
func (s *SyncService) Recompute(now time.Time) (*RecomputeResult, error) {
	now = wallClock(now)
	result := &RecomputeResult{}

	activities, err := s.store.ListAllActivities()
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	if len(activities) == 0 {
		return result, nil
	}

	annotated := analysis.AnnotateGaps(activities)
	for _, a := range annotated {
		if err := s.store.UpdateActivityGaps(a.ID, a.HoursSincePrevious, a.DaysSincePrevious); err != nil {
			return nil, fmt.Errorf("updating gaps for activity %d: %w", a.ID, err)
		}
	}
	result.ActivitiesAnnotated = len(annotated)

	streak := analysis.Streak(activities, now, s.goals.MaxGapDays)
	daysSince := analysis.DaysSinceLastActivity(activities, now)

	today := calendarDate(now)
	snapshot := 0.0
	if daysSince != nil {
		snapshot = *daysSince
	}
	if err := s.store.SetConsistencySnapshot(today, streak, &snapshot); err != nil {
		return nil, fmt.Errorf("saving consistency snapshot: %w", err)
	}
	result.CurrentStreak = streak
	result.DaysSinceLast = daysSince

	weeks, err := s.summarizeAllWeeks(now)
	if err != nil {
		return nil, err
	}
	result.WeeksSummarized = weeks

	return result, nil
}

// summarizeAllWeeks recomputes every weekly summary from the Monday of
// the first recorded activity through the week containing now.
func (s *SyncService) summarizeAllWeeks(now time.Time) (int, error) {
	first, err := s.store.FirstActivityDate()
	if errors.Is(err, store.ErrActivityNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("finding first activity: %w", err)
	}

	weeks := 0
	for weekStart := analysis.WeekStart(first); !weekStart.After(now); weekStart = weekStart.AddDate(0, 0, 7) {
		weekEnd := weekStart.AddDate(0, 0, 6)

		metrics, err := s.store.ListDailyMetricsByDateRange(weekStart, weekEnd)
		if err != nil {
			return weeks, fmt.Errorf("loading metrics for week %s: %w", weekStart.Format("2006-01-02"), err)
		}
		weekActivities, err := s.store.ListActivitiesByDateRange(weekStart, weekEnd)
		if err != nil {
			return weeks, fmt.Errorf("loading activities for week %s: %w", weekStart.Format("2006-01-02"), err)
		}

		summary := analysis.SummarizeWeek(weekStart, weekEnd, metrics, weekActivities, s.goals)
		if err := s.store.UpsertWeeklySummary(&summary); err != nil {
			return weeks, fmt.Errorf("storing summary for week %s: %w", weekStart.Format("2006-01-02"), err)
		}
		weeks++
	}

	return weeks, nil
}

// AddManualActivity stores a hand-entered activity (a gym session or
// workout without a device recording), classifies it, and refreshes
// derived state. The start time defaults to midnight of the given date
// when the caller doesn't supply one.
func (s *SyncService) AddManualActivity(activity store.Activity, now time.Time) (int64, error) {
	if activity.StartTime.IsZero() {
		activity.StartTime = calendarDate(activity.Date)
	}
	activity.Date = calendarDate(activity.Date)
	activity.ZoneClassification = analysis.Classify(activity, s.thresholds)

	id, err := s.store.UpsertActivity(&activity)
	if err != nil {
		return 0, fmt.Errorf("storing activity: %w", err)
	}

	if _, err := s.Recompute(now); err != nil {
		return id, fmt.Errorf("recomputing after manual entry: %w", err)
	}

	return id, nil
}
