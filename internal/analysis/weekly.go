package analysis

import (
	"time"

	"longevity/internal/store"
)

// Goals holds the weekly targets used for goal-achievement flags
type Goals struct {
	Zone2Sessions    int
	StrengthSessions int
	DailySteps       float64
	MaxGapDays       float64
}

// DefaultGoals returns the standard weekly targets
func DefaultGoals() Goals {
	return Goals{
		Zone2Sessions:    3,
		StrengthSessions: 3,
		DailySteps:       8000,
		MaxGapDays:       2.0,
	}
}

// SummarizeWeek builds the rollup for one Monday-Sunday week from the daily
// metrics and classified, gap-annotated activities whose date falls in
// [weekStart, weekEnd] inclusive. It is pure: identical inputs produce an
// identical summary, so re-running a week is always a safe upsert.
func SummarizeWeek(weekStart, weekEnd time.Time, metrics []store.DailyMetric, activities []store.Activity, goals Goals) store.WeeklySummary {
	w := store.WeeklySummary{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}

	// Wellness averages. Mean of an empty set is nil, never zero.
	var restingHRs, hrvs, stresses, batteries, weights, sleepHours, sleepScores, steps []float64
	for _, m := range metrics {
		appendIntPtr(&restingHRs, m.RestingHR)
		appendFloatPtr(&hrvs, m.HRV)
		appendIntPtr(&stresses, m.StressScore)
		appendIntPtr(&batteries, m.BodyBattery)
		appendFloatPtr(&weights, m.Weight)
		appendFloatPtr(&sleepHours, m.SleepHours)
		appendIntPtr(&sleepScores, m.SleepScore)
		appendIntPtr(&steps, m.Steps)
	}
	w.AvgRestingHR = mean(restingHRs)
	w.AvgHRV = mean(hrvs)
	w.AvgStressScore = mean(stresses)
	w.AvgBodyBattery = mean(batteries)
	w.AvgWeight = mean(weights)
	w.AvgSleepHours = mean(sleepHours)
	w.AvgSleepScore = mean(sleepScores)
	w.AvgDailySteps = mean(steps)

	// Session counts per zone
	var zone2HRs []float64
	activityDates := make(map[string]struct{})
	for _, a := range activities {
		switch a.ZoneClassification {
		case ZoneZone2:
			w.Zone2Sessions++
			w.Zone2TotalMinutes += a.DurationMinutes
			if a.AvgHR != nil && *a.AvgHR > 0 {
				zone2HRs = append(zone2HRs, *a.AvgHR)
			}
		case ZoneVO2Max:
			w.VO2MaxSessions++
		case ZoneStrength:
			w.StrengthSessions++
		}
		activityDates[a.Date.Format("2006-01-02")] = struct{}{}
	}
	w.TotalActivities = len(activities)
	w.Zone2AvgHR = mean(zone2HRs)
	w.DaysWithActivity = len(activityDates)

	// Training load: null-safe sum, stored as nil when nothing contributed
	var totalLoad int
	for _, m := range metrics {
		if m.TrainingLoad != nil {
			totalLoad += *m.TrainingLoad
		}
	}
	if totalLoad != 0 {
		w.TotalTrainingLoad = &totalLoad
	}

	// Gap tracking across the week's activities
	for _, a := range activities {
		if a.DaysSincePrevious == nil {
			continue
		}
		gap := *a.DaysSincePrevious
		if w.LongestGapDays == nil || gap > *w.LongestGapDays {
			g := gap
			w.LongestGapDays = &g
		}
		if gap > goals.MaxGapDays {
			w.MissedActivityDays++
		}
	}

	// Streak at end of week from the weekEnd daily metric, 0 if absent
	for _, m := range metrics {
		if m.Date.Equal(weekEnd) {
			w.ActivityStreakEnd = m.CurrentStreak
			break
		}
	}

	// Goal flags. A nil longest gap (zero or one activity this week)
	// satisfies the no-long-gaps flag; preserved behavior, see DESIGN.md.
	w.HitZone2Target = w.Zone2Sessions >= goals.Zone2Sessions
	w.HitStrengthTarget = w.StrengthSessions >= goals.StrengthSessions
	w.HitStepsTarget = w.AvgDailySteps != nil && *w.AvgDailySteps >= goals.DailySteps
	w.NoLongGaps = w.LongestGapDays == nil || *w.LongestGapDays <= goals.MaxGapDays
	w.PerfectWeek = w.HitZone2Target && w.HitStrengthTarget && w.HitStepsTarget && w.NoLongGaps

	return w
}

// WeekStart returns the Monday of the week containing d, at midnight
func WeekStart(d time.Time) time.Time {
	day := calendarDate(d)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func mean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	m := sum / float64(len(vals))
	return &m
}

func appendFloatPtr(dst *[]float64, v *float64) {
	if v != nil {
		*dst = append(*dst, *v)
	}
}

func appendIntPtr(dst *[]float64, v *int) {
	if v != nil {
		*dst = append(*dst, float64(*v))
	}
}
