package analysis

import (
	"reflect"
	"testing"
	"time"

	"longevity/internal/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func classifiedActivity(d time.Time, zone string, durationMin float64, avgHR, gapDays *float64) store.Activity {
	return store.Activity{
		Date:               d,
		StartTime:          d.Add(8 * time.Hour),
		Source:             "garmin",
		ActivityType:       "cycling",
		ZoneClassification: zone,
		DurationMinutes:    durationMin,
		AvgHR:              avgHR,
		DaysSincePrevious:  gapDays,
	}
}

func TestSummarizeWeekEmpty(t *testing.T) {
	weekStart := date(2024, 6, 10) // Monday
	weekEnd := date(2024, 6, 16)   // Sunday

	w := SummarizeWeek(weekStart, weekEnd, nil, nil, DefaultGoals())

	if w.TotalActivities != 0 {
		t.Errorf("TotalActivities = %d, want 0", w.TotalActivities)
	}
	if w.AvgRestingHR != nil {
		t.Errorf("AvgRestingHR = %v, want nil (mean of empty set is never zero)", *w.AvgRestingHR)
	}
	if w.AvgDailySteps != nil {
		t.Errorf("AvgDailySteps = %v, want nil", *w.AvgDailySteps)
	}
	if w.LongestGapDays != nil {
		t.Errorf("LongestGapDays = %v, want nil", *w.LongestGapDays)
	}
	if !w.NoLongGaps {
		t.Error("NoLongGaps should be true when no gaps were recorded")
	}
	if w.HitZone2Target || w.HitStrengthTarget || w.HitStepsTarget {
		t.Error("session and steps targets should be unmet for an empty week")
	}
	if w.PerfectWeek {
		t.Error("PerfectWeek should be false for an empty week")
	}
}

func TestSummarizeWeekPerfect(t *testing.T) {
	weekStart := date(2024, 6, 10)
	weekEnd := date(2024, 6, 16)

	var metrics []store.DailyMetric
	for i := 0; i < 7; i++ {
		metrics = append(metrics, store.DailyMetric{
			Date:         weekStart.AddDate(0, 0, i),
			RestingHR:    intPtr(50 + i),
			Steps:        intPtr(9000),
			TrainingLoad: intPtr(40),
			SleepHours:   floatPtr(7.5),
		})
	}
	metrics[6].CurrentStreak = 12 // the weekEnd snapshot

	activities := []store.Activity{
		classifiedActivity(weekStart, ZoneZone2, 45, floatPtr(128), nil),
		classifiedActivity(weekStart.AddDate(0, 0, 1), ZoneStrength, 60, nil, floatPtr(1.0)),
		classifiedActivity(weekStart.AddDate(0, 0, 2), ZoneZone2, 50, floatPtr(132), floatPtr(1.0)),
		classifiedActivity(weekStart.AddDate(0, 0, 3), ZoneStrength, 60, nil, floatPtr(1.0)),
		classifiedActivity(weekStart.AddDate(0, 0, 4), ZoneZone2, 40, floatPtr(136), floatPtr(1.0)),
		classifiedActivity(weekStart.AddDate(0, 0, 5), ZoneStrength, 45, nil, floatPtr(1.0)),
		classifiedActivity(weekStart.AddDate(0, 0, 6), ZoneVO2Max, 30, floatPtr(174), floatPtr(1.0)),
	}

	w := SummarizeWeek(weekStart, weekEnd, metrics, activities, DefaultGoals())

	if w.Zone2Sessions != 3 || w.StrengthSessions != 3 || w.VO2MaxSessions != 1 {
		t.Errorf("sessions = %d/%d/%d, want 3/3/1", w.Zone2Sessions, w.StrengthSessions, w.VO2MaxSessions)
	}
	if w.TotalActivities != 7 {
		t.Errorf("TotalActivities = %d, want 7", w.TotalActivities)
	}
	if w.Zone2TotalMinutes != 135 {
		t.Errorf("Zone2TotalMinutes = %v, want 135", w.Zone2TotalMinutes)
	}
	if w.Zone2AvgHR == nil || *w.Zone2AvgHR != 132 {
		t.Errorf("Zone2AvgHR = %v, want 132", w.Zone2AvgHR)
	}
	if w.AvgRestingHR == nil || *w.AvgRestingHR != 53 {
		t.Errorf("AvgRestingHR = %v, want 53", w.AvgRestingHR)
	}
	if w.AvgDailySteps == nil || *w.AvgDailySteps != 9000 {
		t.Errorf("AvgDailySteps = %v, want 9000", w.AvgDailySteps)
	}
	if w.TotalTrainingLoad == nil || *w.TotalTrainingLoad != 280 {
		t.Errorf("TotalTrainingLoad = %v, want 280", w.TotalTrainingLoad)
	}
	if w.LongestGapDays == nil || *w.LongestGapDays != 1.0 {
		t.Errorf("LongestGapDays = %v, want 1.0", w.LongestGapDays)
	}
	if w.DaysWithActivity != 7 {
		t.Errorf("DaysWithActivity = %d, want 7", w.DaysWithActivity)
	}
	if w.MissedActivityDays != 0 {
		t.Errorf("MissedActivityDays = %d, want 0", w.MissedActivityDays)
	}
	if w.ActivityStreakEnd != 12 {
		t.Errorf("ActivityStreakEnd = %d, want 12", w.ActivityStreakEnd)
	}
	if !w.HitZone2Target || !w.HitStrengthTarget || !w.HitStepsTarget || !w.NoLongGaps {
		t.Errorf("goal flags = %v/%v/%v/%v, want all true",
			w.HitZone2Target, w.HitStrengthTarget, w.HitStepsTarget, w.NoLongGaps)
	}
	if !w.PerfectWeek {
		t.Error("PerfectWeek should be true when all four goals are met")
	}
}

func TestSummarizeWeekGapFlags(t *testing.T) {
	weekStart := date(2024, 6, 10)
	weekEnd := date(2024, 6, 16)
	goals := DefaultGoals()

	activities := []store.Activity{
		classifiedActivity(weekStart, ZoneOther, 30, nil, floatPtr(3.2)),
		classifiedActivity(weekStart.AddDate(0, 0, 4), ZoneOther, 30, nil, floatPtr(2.5)),
		classifiedActivity(weekStart.AddDate(0, 0, 5), ZoneOther, 30, nil, floatPtr(1.1)),
	}

	w := SummarizeWeek(weekStart, weekEnd, nil, activities, goals)

	if w.LongestGapDays == nil || *w.LongestGapDays != 3.2 {
		t.Errorf("LongestGapDays = %v, want 3.2", w.LongestGapDays)
	}
	// Gaps strictly greater than the threshold count as missed days
	if w.MissedActivityDays != 2 {
		t.Errorf("MissedActivityDays = %d, want 2", w.MissedActivityDays)
	}
	if w.NoLongGaps {
		t.Error("NoLongGaps should be false with a 3.2 day gap")
	}
}

func TestSummarizeWeekStepsTargetRequiresData(t *testing.T) {
	weekStart := date(2024, 6, 10)
	weekEnd := date(2024, 6, 16)

	// Metrics exist but none carry step counts
	metrics := []store.DailyMetric{
		{Date: weekStart, RestingHR: intPtr(52)},
		{Date: weekStart.AddDate(0, 0, 1), RestingHR: intPtr(51)},
	}

	w := SummarizeWeek(weekStart, weekEnd, metrics, nil, DefaultGoals())

	if w.AvgDailySteps != nil {
		t.Errorf("AvgDailySteps = %v, want nil", *w.AvgDailySteps)
	}
	if w.HitStepsTarget {
		t.Error("HitStepsTarget must be false when mean steps is nil")
	}
}

func TestSummarizeWeekTrainingLoadNilWhenAbsent(t *testing.T) {
	weekStart := date(2024, 6, 10)
	weekEnd := date(2024, 6, 16)

	metrics := []store.DailyMetric{
		{Date: weekStart, Steps: intPtr(5000)},
	}

	w := SummarizeWeek(weekStart, weekEnd, metrics, nil, DefaultGoals())
	if w.TotalTrainingLoad != nil {
		t.Errorf("TotalTrainingLoad = %v, want nil with no load data", *w.TotalTrainingLoad)
	}
}

func TestSummarizeWeekIdempotent(t *testing.T) {
	weekStart := date(2024, 6, 10)
	weekEnd := date(2024, 6, 16)

	metrics := []store.DailyMetric{
		{Date: weekStart, Steps: intPtr(8500), TrainingLoad: intPtr(55)},
		{Date: weekEnd, Steps: intPtr(7200), CurrentStreak: 4},
	}
	activities := []store.Activity{
		classifiedActivity(weekStart, ZoneZone2, 45, floatPtr(125), nil),
		classifiedActivity(weekStart.AddDate(0, 0, 2), ZoneStrength, 60, nil, floatPtr(2.0)),
	}

	first := SummarizeWeek(weekStart, weekEnd, metrics, activities, DefaultGoals())
	second := SummarizeWeek(weekStart, weekEnd, metrics, activities, DefaultGoals())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("SummarizeWeek is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2024, 6, 10), date(2024, 6, 10)},
		{"wednesday maps back to monday", date(2024, 6, 12), date(2024, 6, 10)},
		{"sunday maps back to monday", date(2024, 6, 16), date(2024, 6, 10)},
		{"timestamp is truncated", time.Date(2024, 6, 12, 17, 30, 0, 0, time.UTC), date(2024, 6, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
