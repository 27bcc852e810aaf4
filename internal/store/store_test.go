package store

import (
	"errors"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAt(":memory:")
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

func testActivity(start time.Time) *Activity {
	return &Activity{
		Date:               time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:          start,
		Source:             "garmin",
		ActivityType:       "cycling",
		ZoneClassification: "zone2",
		DurationMinutes:    45,
		DistanceKm:         floatPtr(20.5),
		AvgHR:              floatPtr(130),
	}
}

func TestUpsertActivityVendorKey(t *testing.T) {
	db := openTestDB(t)

	a := testActivity(time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC))
	a.ActivityID = strPtr("garmin-100")

	id1, err := db.UpsertActivity(a)
	if err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}

	// Same vendor id with revised fields must update in place
	a.DurationMinutes = 60
	a.StartTime = a.StartTime.Add(5 * time.Minute)
	id2, err := db.UpsertActivity(a)
	if err != nil {
		t.Fatalf("UpsertActivity update: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same row id, got %d then %d", id1, id2)
	}

	count, err := db.CountActivities()
	if err != nil {
		t.Fatalf("CountActivities: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 activity, got %d", count)
	}

	stored, err := db.GetActivity(id1)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if stored.DurationMinutes != 60 {
		t.Errorf("expected updated duration 60, got %f", stored.DurationMinutes)
	}
}

func TestUpsertActivityManualKey(t *testing.T) {
	db := openTestDB(t)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	a := &Activity{
		Date:               start,
		StartTime:          start,
		Source:             "crossfit",
		ActivityType:       "crossfit",
		ZoneClassification: "strength",
		DurationMinutes:    60,
		WorkoutName:        strPtr("Fran"),
	}

	id1, err := db.UpsertActivity(a)
	if err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}

	// Re-entering the same manual workout must not duplicate it
	a.PerceivedEffort = intPtr(9)
	id2, err := db.UpsertActivity(a)
	if err != nil {
		t.Fatalf("UpsertActivity update: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected same row id, got %d then %d", id1, id2)
	}

	stored, err := db.GetActivity(id1)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if stored.PerceivedEffort == nil || *stored.PerceivedEffort != 9 {
		t.Errorf("expected perceived effort 9, got %v", stored.PerceivedEffort)
	}

	// A different start time on the same day is a separate session
	b := *a
	b.StartTime = start.Add(10 * time.Hour)
	id3, err := db.UpsertActivity(&b)
	if err != nil {
		t.Fatalf("UpsertActivity second session: %v", err)
	}
	if id3 == id1 {
		t.Error("expected a new row for a different start time")
	}
}

func TestUpdateActivityGaps(t *testing.T) {
	db := openTestDB(t)

	a := testActivity(time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC))
	id, err := db.UpsertActivity(a)
	if err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}

	if err := db.UpdateActivityGaps(id, floatPtr(36), floatPtr(1.5)); err != nil {
		t.Fatalf("UpdateActivityGaps: %v", err)
	}

	stored, err := db.GetActivity(id)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if stored.HoursSincePrevious == nil || *stored.HoursSincePrevious != 36 {
		t.Errorf("expected hours 36, got %v", stored.HoursSincePrevious)
	}
	if stored.DaysSincePrevious == nil || *stored.DaysSincePrevious != 1.5 {
		t.Errorf("expected days 1.5, got %v", stored.DaysSincePrevious)
	}

	// Clearing gaps back to nil must stick
	if err := db.UpdateActivityGaps(id, nil, nil); err != nil {
		t.Fatalf("UpdateActivityGaps nil: %v", err)
	}
	stored, err = db.GetActivity(id)
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if stored.HoursSincePrevious != nil || stored.DaysSincePrevious != nil {
		t.Error("expected gaps cleared to nil")
	}

	if err := db.UpdateActivityGaps(9999, floatPtr(1), floatPtr(1)); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound for missing row, got %v", err)
	}
}

func TestListActivitiesOrdering(t *testing.T) {
	db := openTestDB(t)

	times := []time.Time{
		time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC),
	}
	for _, ts := range times {
		if _, err := db.UpsertActivity(testActivity(ts)); err != nil {
			t.Fatalf("UpsertActivity: %v", err)
		}
	}

	asc, err := db.ListAllActivities()
	if err != nil {
		t.Fatalf("ListAllActivities: %v", err)
	}
	if len(asc) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(asc))
	}
	if !asc[0].StartTime.Before(asc[1].StartTime) || !asc[1].StartTime.Before(asc[2].StartTime) {
		t.Error("expected ascending start time order")
	}

	desc, err := db.ListActivities(2, 0)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(desc) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(desc))
	}
	if desc[0].Date.Day() != 12 {
		t.Errorf("expected newest first, got day %d", desc[0].Date.Day())
	}
}

func TestFirstActivityDate(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.FirstActivityDate(); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound on empty db, got %v", err)
	}

	for _, ts := range []time.Time{
		time.Date(2026, 3, 12, 7, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC),
	} {
		if _, err := db.UpsertActivity(testActivity(ts)); err != nil {
			t.Fatalf("UpsertActivity: %v", err)
		}
	}

	first, err := db.FirstActivityDate()
	if err != nil {
		t.Fatalf("FirstActivityDate: %v", err)
	}
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !first.Equal(want) {
		t.Errorf("expected %v, got %v", want, first)
	}
}

func TestUpsertDailyMetricDoesNotClobber(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	err := db.UpsertDailyMetric(&DailyMetric{
		Date:      date,
		Steps:     intPtr(9500),
		RestingHR: intPtr(52),
	})
	if err != nil {
		t.Fatalf("UpsertDailyMetric: %v", err)
	}

	// A second sync with only sleep data must keep the earlier fields
	err = db.UpsertDailyMetric(&DailyMetric{
		Date:       date,
		SleepHours: floatPtr(7.5),
	})
	if err != nil {
		t.Fatalf("UpsertDailyMetric partial: %v", err)
	}

	m, err := db.GetDailyMetric(date)
	if err != nil {
		t.Fatalf("GetDailyMetric: %v", err)
	}
	if m == nil {
		t.Fatal("expected a metric row")
	}
	if m.Steps == nil || *m.Steps != 9500 {
		t.Errorf("expected steps 9500 preserved, got %v", m.Steps)
	}
	if m.RestingHR == nil || *m.RestingHR != 52 {
		t.Errorf("expected resting HR 52 preserved, got %v", m.RestingHR)
	}
	if m.SleepHours == nil || *m.SleepHours != 7.5 {
		t.Errorf("expected sleep 7.5, got %v", m.SleepHours)
	}
}

func TestSetConsistencySnapshot(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Snapshot on a day with no wellness row creates the row
	if err := db.SetConsistencySnapshot(date, 3, floatPtr(0.5)); err != nil {
		t.Fatalf("SetConsistencySnapshot: %v", err)
	}

	m, err := db.GetDailyMetric(date)
	if err != nil {
		t.Fatalf("GetDailyMetric: %v", err)
	}
	if m.CurrentStreak != 3 {
		t.Errorf("expected streak 3, got %d", m.CurrentStreak)
	}
	if m.DaysSinceLastActivity == nil || *m.DaysSinceLastActivity != 0.5 {
		t.Errorf("expected days since 0.5, got %v", m.DaysSinceLastActivity)
	}

	// A later wellness sync must not reset the snapshot
	if err := db.UpsertDailyMetric(&DailyMetric{Date: date, Steps: intPtr(8000)}); err != nil {
		t.Fatalf("UpsertDailyMetric: %v", err)
	}
	m, err = db.GetDailyMetric(date)
	if err != nil {
		t.Fatalf("GetDailyMetric: %v", err)
	}
	if m.CurrentStreak != 3 {
		t.Errorf("expected streak preserved, got %d", m.CurrentStreak)
	}

	// Re-snapshotting overwrites
	if err := db.SetConsistencySnapshot(date, 4, floatPtr(0.2)); err != nil {
		t.Fatalf("SetConsistencySnapshot again: %v", err)
	}
	m, err = db.GetDailyMetric(date)
	if err != nil {
		t.Fatalf("GetDailyMetric: %v", err)
	}
	if m.CurrentStreak != 4 {
		t.Errorf("expected streak 4, got %d", m.CurrentStreak)
	}
	if m.Steps == nil || *m.Steps != 8000 {
		t.Errorf("expected steps preserved, got %v", m.Steps)
	}
}

func TestGetDailyMetricMissing(t *testing.T) {
	db := openTestDB(t)

	m, err := db.GetDailyMetric(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetDailyMetric: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil for missing day, got %+v", m)
	}
}

func TestUpsertWeeklySummaryIdempotent(t *testing.T) {
	db := openTestDB(t)

	weekStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	w := &WeeklySummary{
		WeekStart:         weekStart,
		WeekEnd:           weekStart.AddDate(0, 0, 6),
		Zone2Sessions:     3,
		StrengthSessions:  3,
		TotalActivities:   6,
		AvgDailySteps:     floatPtr(9000),
		HitZone2Target:    true,
		HitStrengthTarget: true,
		HitStepsTarget:    true,
		NoLongGaps:        true,
		PerfectWeek:       true,
	}

	if err := db.UpsertWeeklySummary(w); err != nil {
		t.Fatalf("UpsertWeeklySummary: %v", err)
	}

	// Recomputing the same week with new numbers replaces the row
	w.Zone2Sessions = 2
	w.HitZone2Target = false
	w.PerfectWeek = false
	if err := db.UpsertWeeklySummary(w); err != nil {
		t.Fatalf("UpsertWeeklySummary update: %v", err)
	}

	weeks, err := db.ListWeeklySummaries(10)
	if err != nil {
		t.Fatalf("ListWeeklySummaries: %v", err)
	}
	if len(weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weeks))
	}
	if weeks[0].Zone2Sessions != 2 {
		t.Errorf("expected updated zone2 count 2, got %d", weeks[0].Zone2Sessions)
	}
	if weeks[0].PerfectWeek {
		t.Error("expected perfect week cleared")
	}
	if !weeks[0].HitStrengthTarget {
		t.Error("expected strength flag preserved")
	}
}

func TestListWeeklySummariesNewestFirst(t *testing.T) {
	db := openTestDB(t)

	for _, start := range []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	} {
		w := &WeeklySummary{WeekStart: start, WeekEnd: start.AddDate(0, 0, 6)}
		if err := db.UpsertWeeklySummary(w); err != nil {
			t.Fatalf("UpsertWeeklySummary: %v", err)
		}
	}

	weeks, err := db.ListWeeklySummaries(2)
	if err != nil {
		t.Fatalf("ListWeeklySummaries: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].WeekStart.Day() != 16 || weeks[1].WeekStart.Day() != 9 {
		t.Errorf("expected newest first, got %v then %v", weeks[0].WeekStart, weeks[1].WeekStart)
	}
}

func TestAuthRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetAuth(); !errors.Is(err, ErrNoAuth) {
		t.Errorf("expected ErrNoAuth on empty db, got %v", err)
	}

	expiry := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	err := db.SaveAuth(&Auth{
		AthleteID:    12345,
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    expiry,
	})
	if err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	stored, err := db.GetAuth()
	if err != nil {
		t.Fatalf("GetAuth: %v", err)
	}
	if stored.AthleteID != 12345 || stored.AccessToken != "access" {
		t.Errorf("unexpected auth %+v", stored)
	}
	if !stored.ExpiresAt.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, stored.ExpiresAt)
	}

	if err := db.UpdateTokens("access2", "refresh2", expiry.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateTokens: %v", err)
	}
	stored, err = db.GetAuth()
	if err != nil {
		t.Fatalf("GetAuth after update: %v", err)
	}
	if stored.AccessToken != "access2" || stored.RefreshToken != "refresh2" {
		t.Errorf("expected refreshed tokens, got %+v", stored)
	}
}

func TestSyncWatermark(t *testing.T) {
	db := openTestDB(t)

	val, err := db.GetSyncWatermark("last_strava_sync")
	if err != nil {
		t.Fatalf("GetSyncWatermark: %v", err)
	}
	if val != "" {
		t.Errorf("expected empty value for a feed that never synced, got %q", val)
	}

	if err := db.SetSyncWatermark("last_strava_sync", "2026-03-10T00:00:00Z"); err != nil {
		t.Fatalf("SetSyncWatermark: %v", err)
	}
	if err := db.SetSyncWatermark("last_strava_sync", "2026-03-11T00:00:00Z"); err != nil {
		t.Fatalf("SetSyncWatermark overwrite: %v", err)
	}

	val, err = db.GetSyncWatermark("last_strava_sync")
	if err != nil {
		t.Fatalf("GetSyncWatermark: %v", err)
	}
	if val != "2026-03-11T00:00:00Z" {
		t.Errorf("expected latest value, got %q", val)
	}
}
