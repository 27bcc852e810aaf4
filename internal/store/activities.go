package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

const activityColumns = `id, activity_id, date, start_time, source, activity_type,
	zone_classification, duration_minutes, distance_km, avg_hr, max_hr,
	avg_power, calories, elevation_gain, workout_name, perceived_effort, notes,
	hours_since_previous, days_since_previous`

// UpsertActivity inserts or updates an activity. Vendor activities are
// keyed by their external id; manual entries by (date, source, start_time).
// Returns the row id of the stored activity.
func (db *DB) UpsertActivity(a *Activity) (int64, error) {
	var zone sql.NullString
	if a.ZoneClassification != "" {
		zone = sql.NullString{String: a.ZoneClassification, Valid: true}
	}

	conflict := `ON CONFLICT(date, source, start_time) DO UPDATE SET`
	if a.ActivityID != nil {
		conflict = `ON CONFLICT(activity_id) DO UPDATE SET`
	}

	_, err := db.Exec(`
		INSERT INTO activities (
			activity_id, date, start_time, source, activity_type,
			zone_classification, duration_minutes, distance_km, avg_hr, max_hr,
			avg_power, calories, elevation_gain, workout_name, perceived_effort,
			notes, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`+conflict+`
			date = excluded.date,
			start_time = excluded.start_time,
			source = excluded.source,
			activity_type = excluded.activity_type,
			zone_classification = excluded.zone_classification,
			duration_minutes = excluded.duration_minutes,
			distance_km = excluded.distance_km,
			avg_hr = excluded.avg_hr,
			max_hr = excluded.max_hr,
			avg_power = excluded.avg_power,
			calories = excluded.calories,
			elevation_gain = excluded.elevation_gain,
			workout_name = excluded.workout_name,
			perceived_effort = excluded.perceived_effort,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ActivityID, a.Date.Format(dateFormat), a.StartTime.Format(time.RFC3339),
		a.Source, a.ActivityType, zone, a.DurationMinutes, a.DistanceKm,
		a.AvgHR, a.MaxHR, a.AvgPower, a.Calories, a.ElevationGain,
		a.WorkoutName, a.PerceivedEffort, a.Notes,
	)
	if err != nil {
		return 0, err
	}

	var id int64
	if a.ActivityID != nil {
		err = db.QueryRow(`SELECT id FROM activities WHERE activity_id = ?`, *a.ActivityID).Scan(&id)
	} else {
		err = db.QueryRow(`
			SELECT id FROM activities WHERE date = ? AND source = ? AND start_time = ?
		`, a.Date.Format(dateFormat), a.Source, a.StartTime.Format(time.RFC3339)).Scan(&id)
	}
	return id, err
}

// GetActivity retrieves an activity by row id
func (db *DB) GetActivity(id int64) (*Activity, error) {
	row := db.QueryRow(`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	return scanActivity(row)
}

// ListAllActivities returns the full activity history ordered by start time
// ascending. Gap and streak recomputation needs the whole history, never a
// partial slice.
func (db *DB) ListAllActivities() ([]Activity, error) {
	rows, err := db.Query(`
		SELECT ` + activityColumns + `
		FROM activities
		ORDER BY start_time ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivities returns activities ordered by start time descending
func (db *DB) ListActivities(limit, offset int) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		ORDER BY start_time DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// ListActivitiesByDateRange returns activities whose date falls in
// [start, end] inclusive, ordered by start time ascending
func (db *DB) ListActivitiesByDateRange(start, end time.Time) ([]Activity, error) {
	rows, err := db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE date >= ? AND date <= ?
		ORDER BY start_time ASC, id ASC
	`, start.Format(dateFormat), end.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

// UpdateActivityGaps writes the recomputed gap fields for one activity
func (db *DB) UpdateActivityGaps(id int64, hoursSince, daysSince *float64) error {
	result, err := db.Exec(`
		UPDATE activities
		SET hours_since_previous = ?, days_since_previous = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, hoursSince, daysSince, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// FirstActivityDate returns the date of the earliest activity,
// or ErrActivityNotFound if there are none
func (db *DB) FirstActivityDate() (time.Time, error) {
	var dateStr string
	err := db.QueryRow(`SELECT date FROM activities ORDER BY date ASC LIMIT 1`).Scan(&dateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrActivityNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(dateFormat, dateStr)
}

// CountActivities returns the total number of activities
func (db *DB) CountActivities() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count)
	return count, err
}

// scanActivity scans a single activity from a row
func scanActivity(row *sql.Row) (*Activity, error) {
	var a Activity
	var date, startTime string
	var zone sql.NullString

	err := row.Scan(
		&a.ID, &a.ActivityID, &date, &startTime, &a.Source, &a.ActivityType,
		&zone, &a.DurationMinutes, &a.DistanceKm, &a.AvgHR, &a.MaxHR,
		&a.AvgPower, &a.Calories, &a.ElevationGain, &a.WorkoutName,
		&a.PerceivedEffort, &a.Notes, &a.HoursSincePrevious, &a.DaysSincePrevious,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := parseActivityTimes(&a, date, startTime); err != nil {
		return nil, err
	}
	a.ZoneClassification = zone.String

	return &a, nil
}

// scanActivities scans multiple activities from rows
func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity

	for rows.Next() {
		var a Activity
		var date, startTime string
		var zone sql.NullString

		err := rows.Scan(
			&a.ID, &a.ActivityID, &date, &startTime, &a.Source, &a.ActivityType,
			&zone, &a.DurationMinutes, &a.DistanceKm, &a.AvgHR, &a.MaxHR,
			&a.AvgPower, &a.Calories, &a.ElevationGain, &a.WorkoutName,
			&a.PerceivedEffort, &a.Notes, &a.HoursSincePrevious, &a.DaysSincePrevious,
		)
		if err != nil {
			return nil, err
		}

		if err := parseActivityTimes(&a, date, startTime); err != nil {
			return nil, err
		}
		a.ZoneClassification = zone.String

		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func parseActivityTimes(a *Activity, date, startTime string) error {
	var err error
	a.Date, err = time.Parse(dateFormat, date)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", date, err)
	}
	a.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return fmt.Errorf("parsing start_time %q: %w", startTime, err)
	}
	return nil
}
