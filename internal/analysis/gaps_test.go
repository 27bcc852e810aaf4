package analysis

import (
	"math"
	"testing"
	"time"

	"longevity/internal/store"
)

func activityAt(id int64, start time.Time) store.Activity {
	return store.Activity{
		ID:           id,
		Date:         time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime:    start,
		Source:       "garmin",
		ActivityType: "cycling",
	}
}

func TestAnnotateGaps(t *testing.T) {
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	t.Run("empty history", func(t *testing.T) {
		out := AnnotateGaps(nil)
		if len(out) != 0 {
			t.Errorf("AnnotateGaps(nil) returned %d activities", len(out))
		}
	})

	t.Run("single activity has nil gaps", func(t *testing.T) {
		out := AnnotateGaps([]store.Activity{activityAt(1, base)})
		if out[0].HoursSincePrevious != nil || out[0].DaysSincePrevious != nil {
			t.Error("earliest activity should have nil gap fields")
		}
	})

	t.Run("gap values", func(t *testing.T) {
		out := AnnotateGaps([]store.Activity{
			activityAt(1, base),
			activityAt(2, base.Add(36*time.Hour)),
			activityAt(3, base.Add(36*time.Hour+90*time.Minute)),
		})

		if out[0].HoursSincePrevious != nil {
			t.Error("first activity should have nil gaps")
		}
		if got := *out[1].HoursSincePrevious; got != 36 {
			t.Errorf("HoursSincePrevious = %v, want 36", got)
		}
		if got := *out[1].DaysSincePrevious; got != 1.5 {
			t.Errorf("DaysSincePrevious = %v, want 1.5", got)
		}
		// 90 minutes = 1.5h = 0.0625 days, rounded to 2 decimals
		if got := *out[2].HoursSincePrevious; got != 1.5 {
			t.Errorf("HoursSincePrevious = %v, want 1.5", got)
		}
		if got := *out[2].DaysSincePrevious; got != 0.06 {
			t.Errorf("DaysSincePrevious = %v, want 0.06", got)
		}
	})

	t.Run("order independence", func(t *testing.T) {
		a := activityAt(1, base)
		b := activityAt(2, base.Add(10*time.Hour))
		c := activityAt(3, base.Add(50*time.Hour))

		permutations := [][]store.Activity{
			{a, b, c},
			{c, b, a},
			{b, c, a},
		}

		want := AnnotateGaps(permutations[0])
		for i, perm := range permutations[1:] {
			got := AnnotateGaps(perm)
			for j := range want {
				if got[j].ID != want[j].ID {
					t.Fatalf("permutation %d: order differs at %d", i+1, j)
				}
				if !floatPtrEqual(got[j].HoursSincePrevious, want[j].HoursSincePrevious) {
					t.Errorf("permutation %d: HoursSincePrevious differs at %d", i+1, j)
				}
				if !floatPtrEqual(got[j].DaysSincePrevious, want[j].DaysSincePrevious) {
					t.Errorf("permutation %d: DaysSincePrevious differs at %d", i+1, j)
				}
			}
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		in := []store.Activity{
			activityAt(2, base.Add(24*time.Hour)),
			activityAt(1, base),
		}
		AnnotateGaps(in)
		if in[0].ID != 2 {
			t.Error("AnnotateGaps reordered the caller's slice")
		}
		if in[0].HoursSincePrevious != nil {
			t.Error("AnnotateGaps wrote gaps into the caller's slice")
		}
	})
}

func TestStreak(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

	daysAgo := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	tests := []struct {
		name       string
		starts     []time.Time
		maxGapDays float64
		want       int
	}{
		{
			name:       "empty history",
			starts:     nil,
			maxGapDays: 2.0,
			want:       0,
		},
		{
			name:       "three consecutive days",
			starts:     []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)},
			maxGapDays: 2.0,
			want:       3,
		},
		{
			name:       "single stale activity fails the gate",
			starts:     []time.Time{daysAgo(5)},
			maxGapDays: 2.0,
			want:       0,
		},
		{
			name:       "three day gap breaks the walk",
			starts:     []time.Time{daysAgo(0), daysAgo(3)},
			maxGapDays: 2.0,
			want:       1,
		},
		{
			name:       "two sessions on one day count once",
			starts:     []time.Time{daysAgo(0), daysAgo(0).Add(9 * time.Hour), daysAgo(1)},
			maxGapDays: 2.0,
			want:       2,
		},
		{
			name:       "two day calendar gaps keep the streak alive",
			starts:     []time.Time{daysAgo(0), daysAgo(2), daysAgo(4), daysAgo(6)},
			maxGapDays: 2.0,
			want:       4,
		},
		{
			name:       "streak counts dates up to the first break only",
			starts:     []time.Time{daysAgo(0), daysAgo(1), daysAgo(5), daysAgo(6)},
			maxGapDays: 2.0,
			want:       2,
		},
		{
			name:       "wider max gap tolerates longer breaks",
			starts:     []time.Time{daysAgo(0), daysAgo(3)},
			maxGapDays: 3.0,
			want:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var activities []store.Activity
			for i, s := range tt.starts {
				activities = append(activities, activityAt(int64(i+1), s))
			}

			got := Streak(activities, now, tt.maxGapDays)
			if got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakStalenessUsesElapsedTime(t *testing.T) {
	// The gate measures elapsed time from now, not calendar dates. An
	// activity 2.4 elapsed days ago is stale even though only two calendar
	// midnights have passed.
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	start := now.Add(-time.Duration(2.4 * 24 * float64(time.Hour)))

	activities := []store.Activity{activityAt(1, start)}
	if got := Streak(activities, now, 2.0); got != 0 {
		t.Errorf("Streak = %d, want 0 for a stale most-recent activity", got)
	}
}

func TestDaysSinceLastActivity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	if got := DaysSinceLastActivity(nil, now); got != nil {
		t.Errorf("DaysSinceLastActivity(empty) = %v, want nil", *got)
	}

	activities := []store.Activity{
		activityAt(1, now.Add(-100*time.Hour)),
		activityAt(2, now.Add(-36*time.Hour)), // most recent
		activityAt(3, now.Add(-80*time.Hour)),
	}

	got := DaysSinceLastActivity(activities, now)
	if got == nil {
		t.Fatal("DaysSinceLastActivity = nil, want value")
	}
	if *got != 1.5 {
		t.Errorf("DaysSinceLastActivity = %v, want 1.5", *got)
	}
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Abs(*a-*b) < 1e-9
}
