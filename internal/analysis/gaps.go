package analysis

import (
	"math"
	"sort"
	"time"

	"longevity/internal/store"
)

const hoursPerDay = 24

// AnnotateGaps populates hours/days-since-previous on every activity.
// The input may arrive in any order; the result is sorted ascending by
// start time with the earliest activity carrying nil gaps. A stable sort
// keeps duplicate timestamps deterministic.
//
// The gaps are only meaningful for the complete history. Callers must pass
// every stored activity, never a window.
func AnnotateGaps(activities []store.Activity) []store.Activity {
	out := make([]store.Activity, len(activities))
	copy(out, activities)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	if len(out) == 0 {
		return out
	}

	out[0].HoursSincePrevious = nil
	out[0].DaysSincePrevious = nil

	for i := 1; i < len(out); i++ {
		gap := out[i].StartTime.Sub(out[i-1].StartTime)
		hours := round2(gap.Hours())
		days := round2(gap.Hours() / hoursPerDay)
		out[i].HoursSincePrevious = &hours
		out[i].DaysSincePrevious = &days
	}

	return out
}

// Streak returns the current consistency streak: the number of distinct
// calendar dates with at least one activity, walking backward from the most
// recent activity, unbroken by a calendar-date gap exceeding maxGapDays.
//
// If the most recent activity itself is more than maxGapDays of elapsed time
// before now, the streak is 0 no matter how consistent the past was. The
// status indicator has to fail closed when the user goes quiet.
//
// Note the two gap notions are deliberately different: the staleness gate
// measures elapsed time from now, the backward walk measures whole calendar
// days between workout dates. Do not unify them.
func Streak(activities []store.Activity, now time.Time, maxGapDays float64) int {
	if len(activities) == 0 {
		return 0
	}

	sorted := make([]store.Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime)
	})

	mostRecent := sorted[0].StartTime
	if now.Sub(mostRecent).Hours()/hoursPerDay > maxGapDays {
		return 0
	}

	streakDates := make(map[string]struct{})
	var lastDate time.Time

	for _, a := range sorted {
		activityDate := calendarDate(a.StartTime)

		if lastDate.IsZero() {
			streakDates[activityDate.Format("2006-01-02")] = struct{}{}
			lastDate = activityDate
			continue
		}

		gapDays := int(lastDate.Sub(activityDate).Hours() / hoursPerDay)
		if float64(gapDays) > maxGapDays {
			break
		}
		streakDates[activityDate.Format("2006-01-02")] = struct{}{}
		lastDate = activityDate
	}

	return len(streakDates)
}

// DaysSinceLastActivity returns the elapsed days between now and the most
// recent activity, rounded to 1 decimal. Nil for an empty history.
func DaysSinceLastActivity(activities []store.Activity, now time.Time) *float64 {
	if len(activities) == 0 {
		return nil
	}

	mostRecent := activities[0].StartTime
	for _, a := range activities[1:] {
		if a.StartTime.After(mostRecent) {
			mostRecent = a.StartTime
		}
	}

	days := round1(now.Sub(mostRecent).Hours() / hoursPerDay)
	return &days
}

// calendarDate truncates a timestamp to midnight in its own location
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
