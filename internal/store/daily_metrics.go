package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dailyMetricColumns = `date, resting_hr, hrv, stress_score, body_battery,
	weight, sleep_hours, sleep_score, steps, floors_climbed, intensity_minutes,
	training_load, days_since_last_activity, current_streak`

// UpsertDailyMetric inserts or updates the wellness fields of one day's
// record. The consistency fields are left alone; those belong to
// SetConsistencySnapshot so a wellness sync never clobbers a fresher streak.
func (db *DB) UpsertDailyMetric(m *DailyMetric) error {
	_, err := db.Exec(`
		INSERT INTO daily_metrics (
			date, resting_hr, hrv, stress_score, body_battery, weight,
			sleep_hours, sleep_score, steps, floors_climbed, intensity_minutes,
			training_load, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			resting_hr = COALESCE(excluded.resting_hr, daily_metrics.resting_hr),
			hrv = COALESCE(excluded.hrv, daily_metrics.hrv),
			stress_score = COALESCE(excluded.stress_score, daily_metrics.stress_score),
			body_battery = COALESCE(excluded.body_battery, daily_metrics.body_battery),
			weight = COALESCE(excluded.weight, daily_metrics.weight),
			sleep_hours = COALESCE(excluded.sleep_hours, daily_metrics.sleep_hours),
			sleep_score = COALESCE(excluded.sleep_score, daily_metrics.sleep_score),
			steps = COALESCE(excluded.steps, daily_metrics.steps),
			floors_climbed = COALESCE(excluded.floors_climbed, daily_metrics.floors_climbed),
			intensity_minutes = COALESCE(excluded.intensity_minutes, daily_metrics.intensity_minutes),
			training_load = COALESCE(excluded.training_load, daily_metrics.training_load),
			updated_at = CURRENT_TIMESTAMP
	`,
		m.Date.Format(dateFormat), m.RestingHR, m.HRV, m.StressScore,
		m.BodyBattery, m.Weight, m.SleepHours, m.SleepScore, m.Steps,
		m.FloorsClimbed, m.IntensityMinutes, m.TrainingLoad,
	)
	return err
}

// SetConsistencySnapshot upserts the streak and days-since-last-activity
// fields for the given date, creating the row if it doesn't exist yet.
func (db *DB) SetConsistencySnapshot(date time.Time, streak int, daysSince *float64) error {
	_, err := db.Exec(`
		INSERT INTO daily_metrics (date, current_streak, days_since_last_activity, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			current_streak = excluded.current_streak,
			days_since_last_activity = excluded.days_since_last_activity,
			updated_at = CURRENT_TIMESTAMP
	`, date.Format(dateFormat), streak, daysSince)
	return err
}

// GetDailyMetric retrieves one day's record, or nil if none exists
func (db *DB) GetDailyMetric(date time.Time) (*DailyMetric, error) {
	row := db.QueryRow(`
		SELECT `+dailyMetricColumns+`
		FROM daily_metrics
		WHERE date = ?
	`, date.Format(dateFormat))

	m, err := scanDailyMetric(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// ListDailyMetricsByDateRange returns records with date in [start, end]
// inclusive, ordered by date ascending
func (db *DB) ListDailyMetricsByDateRange(start, end time.Time) ([]DailyMetric, error) {
	rows, err := db.Query(`
		SELECT `+dailyMetricColumns+`
		FROM daily_metrics
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []DailyMetric
	for rows.Next() {
		m, err := scanDailyMetric(rows.Scan)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

func scanDailyMetric(scan func(dest ...any) error) (*DailyMetric, error) {
	var m DailyMetric
	var dateStr string
	var streak sql.NullInt64

	err := scan(
		&dateStr, &m.RestingHR, &m.HRV, &m.StressScore, &m.BodyBattery,
		&m.Weight, &m.SleepHours, &m.SleepScore, &m.Steps, &m.FloorsClimbed,
		&m.IntensityMinutes, &m.TrainingLoad, &m.DaysSinceLastActivity, &streak,
	)
	if err != nil {
		return nil, err
	}

	m.Date, err = time.Parse(dateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", dateStr, err)
	}
	m.CurrentStreak = int(streak.Int64)

	return &m, nil
}
