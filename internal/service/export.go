package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"longevity/internal/store"
)

// ExportService writes the full dataset out as CSV files for backup
type ExportService struct {
	store *store.DB
}

// NewExportService creates an export service
func NewExportService(db *store.DB) *ExportService {
	return &ExportService{store: db}
}

// ExportResult reports where the export landed and what it contained
type ExportResult struct {
	Dir        string
	Activities int
	Metrics    int
	Summaries  int
}

// ExportCSV writes activities, daily metrics, and weekly summaries to
// a timestamped directory under baseDir and returns what was written.
func (e *ExportService) ExportCSV(baseDir string, now time.Time) (*ExportResult, error) {
	dir := filepath.Join(baseDir, "export_"+now.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	result := &ExportResult{Dir: dir}

	n, err := e.exportActivities(filepath.Join(dir, "activities.csv"))
	if err != nil {
		return nil, err
	}
	result.Activities = n

	n, err = e.exportDailyMetrics(filepath.Join(dir, "daily_metrics.csv"), now)
	if err != nil {
		return nil, err
	}
	result.Metrics = n

	n, err = e.exportWeeklySummaries(filepath.Join(dir, "weekly_summaries.csv"))
	if err != nil {
		return nil, err
	}
	result.Summaries = n

	return result, nil
}

func (e *ExportService) exportActivities(path string) (int, error) {
	activities, err := e.store.ListAllActivities()
	if err != nil {
		return 0, fmt.Errorf("loading activities: %w", err)
	}

	header := []string{
		"activity_id", "date", "start_time", "source", "activity_type",
		"zone_classification", "duration_minutes", "distance_km", "avg_hr",
		"max_hr", "avg_power", "calories", "elevation_gain", "workout_name",
		"perceived_effort", "hours_since_previous", "days_since_previous", "notes",
	}

	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			strPtrField(a.ActivityID),
			a.Date.Format("2006-01-02"),
			a.StartTime.Format(time.RFC3339),
			a.Source,
			a.ActivityType,
			a.ZoneClassification,
			formatFloat(a.DurationMinutes),
			floatPtrField(a.DistanceKm),
			floatPtrField(a.AvgHR),
			floatPtrField(a.MaxHR),
			intPtrField(a.AvgPower),
			intPtrField(a.Calories),
			floatPtrField(a.ElevationGain),
			strPtrField(a.WorkoutName),
			intPtrField(a.PerceivedEffort),
			floatPtrField(a.HoursSincePrevious),
			floatPtrField(a.DaysSincePrevious),
			strPtrField(a.Notes),
		})
	}

	return len(rows), writeCSV(path, header, rows)
}

func (e *ExportService) exportDailyMetrics(path string, now time.Time) (int, error) {
	// All history, oldest first
	end := now.Truncate(24 * time.Hour)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	metrics, err := e.store.ListDailyMetricsByDateRange(start, end)
	if err != nil {
		return 0, fmt.Errorf("loading daily metrics: %w", err)
	}

	header := []string{
		"date", "resting_hr", "hrv", "stress_score", "body_battery", "weight",
		"sleep_hours", "sleep_score", "steps", "floors_climbed",
		"intensity_minutes", "training_load", "days_since_last_activity",
		"current_streak",
	}

	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Date.Format("2006-01-02"),
			intPtrField(m.RestingHR),
			floatPtrField(m.HRV),
			intPtrField(m.StressScore),
			intPtrField(m.BodyBattery),
			floatPtrField(m.Weight),
			floatPtrField(m.SleepHours),
			intPtrField(m.SleepScore),
			intPtrField(m.Steps),
			intPtrField(m.FloorsClimbed),
			intPtrField(m.IntensityMinutes),
			intPtrField(m.TrainingLoad),
			floatPtrField(m.DaysSinceLastActivity),
			strconv.Itoa(m.CurrentStreak),
		})
	}

	return len(rows), writeCSV(path, header, rows)
}

func (e *ExportService) exportWeeklySummaries(path string) (int, error) {
	// A generous limit covers decades of weeks
	summaries, err := e.store.ListWeeklySummaries(10000)
	if err != nil {
		return 0, fmt.Errorf("loading weekly summaries: %w", err)
	}

	header := []string{
		"week_start_date", "week_end_date", "avg_resting_hr", "avg_hrv",
		"avg_stress_score", "avg_body_battery", "avg_weight", "avg_sleep_hours",
		"avg_sleep_score", "avg_daily_steps", "zone2_sessions", "vo2max_sessions",
		"strength_sessions", "total_activities", "zone2_avg_hr",
		"zone2_total_minutes", "total_training_load", "longest_gap_days",
		"activity_streak_end", "days_with_activity", "missed_activity_days",
		"hit_zone2_target", "hit_strength_target", "hit_steps_target",
		"no_long_gaps", "perfect_week",
	}

	rows := make([][]string, 0, len(summaries))
	for _, w := range summaries {
		rows = append(rows, []string{
			w.WeekStart.Format("2006-01-02"),
			w.WeekEnd.Format("2006-01-02"),
			floatPtrField(w.AvgRestingHR),
			floatPtrField(w.AvgHRV),
			floatPtrField(w.AvgStressScore),
			floatPtrField(w.AvgBodyBattery),
			floatPtrField(w.AvgWeight),
			floatPtrField(w.AvgSleepHours),
			floatPtrField(w.AvgSleepScore),
			floatPtrField(w.AvgDailySteps),
			strconv.Itoa(w.Zone2Sessions),
			strconv.Itoa(w.VO2MaxSessions),
			strconv.Itoa(w.StrengthSessions),
			strconv.Itoa(w.TotalActivities),
			floatPtrField(w.Zone2AvgHR),
			formatFloat(w.Zone2TotalMinutes),
			intPtrField(w.TotalTrainingLoad),
			floatPtrField(w.LongestGapDays),
			strconv.Itoa(w.ActivityStreakEnd),
			strconv.Itoa(w.DaysWithActivity),
			strconv.Itoa(w.MissedActivityDays),
			strconv.FormatBool(w.HitZone2Target),
			strconv.FormatBool(w.HitStrengthTarget),
			strconv.FormatBool(w.HitStepsTarget),
			strconv.FormatBool(w.NoLongGaps),
			strconv.FormatBool(w.PerfectWeek),
		})
	}

	return len(rows), writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows to %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatPtrField(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func intPtrField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strPtrField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
