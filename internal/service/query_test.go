package service

import (
	"testing"
	"time"

	"longevity/internal/analysis"
	"longevity/internal/store"
)

func newTestQueryService(db *store.DB) *QueryService {
	return NewQueryService(db, analysis.DefaultGoals())
}

func TestGetStatusNoActivities(t *testing.T) {
	db := openTestDB(t)
	q := newTestQueryService(db)

	status, err := q.GetStatus(time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}

	if status.AlertLevel != analysis.AlertRed {
		t.Errorf("AlertLevel = %q, want red", status.AlertLevel)
	}
	if status.DaysSinceLastActivity != NoActivitySentinelDays {
		t.Errorf("DaysSinceLastActivity = %v, want %d", status.DaysSinceLastActivity, NoActivitySentinelDays)
	}
	if status.LastActivityDate != nil {
		t.Errorf("LastActivityDate = %v, want nil", status.LastActivityDate)
	}
}

func TestGetStatusAlertLevels(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastStart time.Time
		want      string
	}{
		{"this morning", now.Add(-4 * time.Hour), analysis.AlertGreen},
		{"day and a half ago", now.Add(-40 * time.Hour), analysis.AlertYellow},
		{"three days ago", now.Add(-72 * time.Hour), analysis.AlertRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			q := newTestQueryService(db)
			seedActivity(t, db, tt.lastStart, "cycling", "zone2", 45, floatPtr(130))

			status, err := q.GetStatus(now)
			if err != nil {
				t.Fatalf("GetStatus() error = %v", err)
			}
			if status.AlertLevel != tt.want {
				t.Errorf("AlertLevel = %q, want %q", status.AlertLevel, tt.want)
			}
			if status.LastActivityType != "cycling" {
				t.Errorf("LastActivityType = %q, want cycling", status.LastActivityType)
			}
		})
	}
}

func TestGetStatusReadsStreakFromSnapshot(t *testing.T) {
	db := openTestDB(t)
	svc := newTestSyncService(db)
	q := newTestQueryService(db)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	seedActivity(t, db, now.Add(-6*time.Hour), "cycling", "zone2", 45, floatPtr(130))
	seedActivity(t, db, now.AddDate(0, 0, -1), "crossfit", "strength", 60, nil)

	if _, err := svc.Recompute(now); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	status, err := q.GetStatus(now)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", status.CurrentStreak)
	}
	if status.AlertLevel != analysis.AlertGreen {
		t.Errorf("AlertLevel = %q, want green", status.AlertLevel)
	}
}

func TestGetStatusHostZoneIndependent(t *testing.T) {
	db := openTestDB(t)
	q := newTestQueryService(db)

	// Vendor feeds carry the athlete's wall clock with a UTC label, so
	// an activity at local midnight on Aug 26 is stored as midnight UTC.
	seedActivity(t, db, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), "cycling", "zone2", 45, floatPtr(130))

	// 14:24 local on Aug 27, on a host running UTC+12. The elapsed
	// wall-clock time is 1.6 days regardless of the host zone.
	now := time.Date(2026, 8, 27, 14, 24, 0, 0, time.FixedZone("NZST", 12*3600))

	status, err := q.GetStatus(now)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status.DaysSinceLastActivity != 1.6 {
		t.Errorf("DaysSinceLastActivity = %v, want 1.6", status.DaysSinceLastActivity)
	}
	if status.AlertLevel != analysis.AlertYellow {
		t.Errorf("AlertLevel = %q, want yellow", status.AlertLevel)
	}
}

func TestGetStatusSnapshotReadFailure(t *testing.T) {
	db := openTestDB(t)
	q := newTestQueryService(db)
	seedActivity(t, db, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), "cycling", "zone2", 45, floatPtr(130))

	if _, err := db.Exec("DROP TABLE daily_metrics"); err != nil {
		t.Fatalf("dropping table: %v", err)
	}

	if _, err := q.GetStatus(time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("GetStatus() error = nil, want failure when the snapshot can't be read")
	}
}

func TestGetDashboardData(t *testing.T) {
	db := openTestDB(t)
	svc := newTestSyncService(db)
	q := newTestQueryService(db)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	seedActivity(t, db, now.Add(-6*time.Hour), "cycling", "zone2", 45, floatPtr(130))

	steps := 9500
	weight := 176.4
	if err := db.UpsertDailyMetric(&store.DailyMetric{
		Date:   now.Truncate(24 * time.Hour),
		Steps:  &steps,
		Weight: &weight,
	}); err != nil {
		t.Fatalf("seeding daily metric: %v", err)
	}

	if _, err := svc.Recompute(now); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	data, err := q.GetDashboardData(now)
	if err != nil {
		t.Fatalf("GetDashboardData() error = %v", err)
	}

	if data.Status == nil || data.Status.AlertLevel != analysis.AlertGreen {
		t.Errorf("Status = %+v, want green alert", data.Status)
	}
	if len(data.RecentActivities) != 1 {
		t.Errorf("RecentActivities = %d, want 1", len(data.RecentActivities))
	}
	if data.CurrentWeek == nil {
		t.Fatal("CurrentWeek = nil, want this week's summary")
	}
	if data.CurrentWeek.Zone2Sessions != 1 {
		t.Errorf("CurrentWeek.Zone2Sessions = %d, want 1", data.CurrentWeek.Zone2Sessions)
	}

	if len(data.StepsHistory) != 30 {
		t.Fatalf("StepsHistory length = %d, want 30", len(data.StepsHistory))
	}
	if data.StepsHistory[29] != 9500 {
		t.Errorf("today's steps = %v, want 9500", data.StepsHistory[29])
	}
	if data.StepsHistory[0] != 0 {
		t.Errorf("missing day charts as %v, want 0", data.StepsHistory[0])
	}

	if len(data.WeightHistory) != 1 || data.WeightHistory[0] != 176.4 {
		t.Errorf("WeightHistory = %v, want the one seeded reading", data.WeightHistory)
	}
}

func TestGetCalendar(t *testing.T) {
	db := openTestDB(t)
	q := newTestQueryService(db)

	seedActivity(t, db, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), "cycling", "zone2", 45, floatPtr(130))
	seedActivity(t, db, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), "crossfit", "strength", 60, nil)
	// Outside the requested month
	seedActivity(t, db, time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC), "running", "other", 30, nil)

	calendar, err := q.GetCalendar(2026, time.March)
	if err != nil {
		t.Fatalf("GetCalendar() error = %v", err)
	}

	if len(calendar) != 1 {
		t.Fatalf("calendar days = %d, want 1", len(calendar))
	}
	entries := calendar["2026-03-10"]
	if len(entries) != 2 {
		t.Fatalf("entries on 2026-03-10 = %d, want 2", len(entries))
	}
	if entries[0].Classification != "zone2" && entries[1].Classification != "zone2" {
		t.Errorf("expected a zone2 entry, got %+v", entries)
	}
}

func TestListDailyMetricsWindow(t *testing.T) {
	db := openTestDB(t)
	q := newTestQueryService(db)

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	inWindow := 8000
	outOfWindow := 5000

	if err := db.UpsertDailyMetric(&store.DailyMetric{
		Date:  now.AddDate(0, 0, -5).Truncate(24 * time.Hour),
		Steps: &inWindow,
	}); err != nil {
		t.Fatalf("seeding metric: %v", err)
	}
	if err := db.UpsertDailyMetric(&store.DailyMetric{
		Date:  now.AddDate(0, 0, -100).Truncate(24 * time.Hour),
		Steps: &outOfWindow,
	}); err != nil {
		t.Fatalf("seeding metric: %v", err)
	}

	metrics, err := q.ListDailyMetrics(now, 30)
	if err != nil {
		t.Fatalf("ListDailyMetrics() error = %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("metrics in window = %d, want 1", len(metrics))
	}
	if metrics[0].Steps == nil || *metrics[0].Steps != 8000 {
		t.Errorf("Steps = %v, want 8000", metrics[0].Steps)
	}
}
