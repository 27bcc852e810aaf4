package store

import (
	"fmt"
	"time"
)

const summaryColumns = `week_start_date, week_end_date, avg_resting_hr, avg_hrv,
	avg_stress_score, avg_body_battery, avg_weight, avg_sleep_hours,
	avg_sleep_score, avg_daily_steps, zone2_sessions, vo2max_sessions,
	strength_sessions, total_activities, zone2_avg_hr, zone2_total_minutes,
	total_training_load, longest_gap_days, activity_streak_end,
	days_with_activity, missed_activity_days, hit_zone2_target,
	hit_strength_target, hit_steps_target, no_long_gaps, perfect_week`

// UpsertWeeklySummary inserts or replaces the rollup for one week,
// keyed by its start date. Re-running with identical inputs is a no-op
// apart from the updated_at stamp.
func (db *DB) UpsertWeeklySummary(w *WeeklySummary) error {
	_, err := db.Exec(`
		INSERT INTO weekly_summaries (
			week_start_date, week_end_date, avg_resting_hr, avg_hrv,
			avg_stress_score, avg_body_battery, avg_weight, avg_sleep_hours,
			avg_sleep_score, avg_daily_steps, zone2_sessions, vo2max_sessions,
			strength_sessions, total_activities, zone2_avg_hr, zone2_total_minutes,
			total_training_load, longest_gap_days, activity_streak_end,
			days_with_activity, missed_activity_days, hit_zone2_target,
			hit_strength_target, hit_steps_target, no_long_gaps, perfect_week,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(week_start_date) DO UPDATE SET
			week_end_date = excluded.week_end_date,
			avg_resting_hr = excluded.avg_resting_hr,
			avg_hrv = excluded.avg_hrv,
			avg_stress_score = excluded.avg_stress_score,
			avg_body_battery = excluded.avg_body_battery,
			avg_weight = excluded.avg_weight,
			avg_sleep_hours = excluded.avg_sleep_hours,
			avg_sleep_score = excluded.avg_sleep_score,
			avg_daily_steps = excluded.avg_daily_steps,
			zone2_sessions = excluded.zone2_sessions,
			vo2max_sessions = excluded.vo2max_sessions,
			strength_sessions = excluded.strength_sessions,
			total_activities = excluded.total_activities,
			zone2_avg_hr = excluded.zone2_avg_hr,
			zone2_total_minutes = excluded.zone2_total_minutes,
			total_training_load = excluded.total_training_load,
			longest_gap_days = excluded.longest_gap_days,
			activity_streak_end = excluded.activity_streak_end,
			days_with_activity = excluded.days_with_activity,
			missed_activity_days = excluded.missed_activity_days,
			hit_zone2_target = excluded.hit_zone2_target,
			hit_strength_target = excluded.hit_strength_target,
			hit_steps_target = excluded.hit_steps_target,
			no_long_gaps = excluded.no_long_gaps,
			perfect_week = excluded.perfect_week,
			updated_at = CURRENT_TIMESTAMP
	`,
		w.WeekStart.Format(dateFormat), w.WeekEnd.Format(dateFormat),
		w.AvgRestingHR, w.AvgHRV, w.AvgStressScore, w.AvgBodyBattery,
		w.AvgWeight, w.AvgSleepHours, w.AvgSleepScore, w.AvgDailySteps,
		w.Zone2Sessions, w.VO2MaxSessions, w.StrengthSessions, w.TotalActivities,
		w.Zone2AvgHR, w.Zone2TotalMinutes, w.TotalTrainingLoad,
		w.LongestGapDays, w.ActivityStreakEnd, w.DaysWithActivity,
		w.MissedActivityDays, boolToInt(w.HitZone2Target),
		boolToInt(w.HitStrengthTarget), boolToInt(w.HitStepsTarget),
		boolToInt(w.NoLongGaps), boolToInt(w.PerfectWeek),
	)
	return err
}

// ListWeeklySummaries returns the most recent weeks first
func (db *DB) ListWeeklySummaries(limit int) ([]WeeklySummary, error) {
	rows, err := db.Query(`
		SELECT `+summaryColumns+`
		FROM weekly_summaries
		ORDER BY week_start_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []WeeklySummary
	for rows.Next() {
		var w WeeklySummary
		var weekStart, weekEnd string
		var hitZone2, hitStrength, hitSteps, noGaps, perfect int

		err := rows.Scan(
			&weekStart, &weekEnd, &w.AvgRestingHR, &w.AvgHRV, &w.AvgStressScore,
			&w.AvgBodyBattery, &w.AvgWeight, &w.AvgSleepHours, &w.AvgSleepScore,
			&w.AvgDailySteps, &w.Zone2Sessions, &w.VO2MaxSessions,
			&w.StrengthSessions, &w.TotalActivities, &w.Zone2AvgHR,
			&w.Zone2TotalMinutes, &w.TotalTrainingLoad, &w.LongestGapDays,
			&w.ActivityStreakEnd, &w.DaysWithActivity, &w.MissedActivityDays,
			&hitZone2, &hitStrength, &hitSteps, &noGaps, &perfect,
		)
		if err != nil {
			return nil, err
		}

		w.WeekStart, err = time.Parse(dateFormat, weekStart)
		if err != nil {
			return nil, fmt.Errorf("parsing week_start_date %q: %w", weekStart, err)
		}
		w.WeekEnd, err = time.Parse(dateFormat, weekEnd)
		if err != nil {
			return nil, fmt.Errorf("parsing week_end_date %q: %w", weekEnd, err)
		}
		w.HitZone2Target = hitZone2 == 1
		w.HitStrengthTarget = hitStrength == 1
		w.HitStepsTarget = hitSteps == 1
		w.NoLongGaps = noGaps == 1
		w.PerfectWeek = perfect == 1

		summaries = append(summaries, w)
	}

	return summaries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
