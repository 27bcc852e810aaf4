package api

import (
	"time"

	"longevity/internal/store"
)

// ActivityView is the JSON shape of one activity
type ActivityView struct {
	ID                 int64    `json:"id"`
	ActivityID         *string  `json:"activity_id"`
	Date               string   `json:"date"`
	StartTime          string   `json:"start_time"`
	Source             string   `json:"source"`
	ActivityType       string   `json:"activity_type"`
	ZoneClassification string   `json:"zone_classification"`
	DurationMinutes    float64  `json:"duration_minutes"`
	DistanceKm         *float64 `json:"distance_km"`
	AvgHR              *float64 `json:"avg_hr"`
	MaxHR              *float64 `json:"max_hr"`
	AvgPower           *int     `json:"avg_power"`
	Calories           *int     `json:"calories"`
	ElevationGain      *float64 `json:"elevation_gain"`
	WorkoutName        *string  `json:"workout_name"`
	PerceivedEffort    *int     `json:"perceived_effort"`
	Notes              *string  `json:"notes"`
	HoursSincePrevious *float64 `json:"hours_since_previous"`
	DaysSincePrevious  *float64 `json:"days_since_previous"`
}

func toActivityView(a store.Activity) ActivityView {
	return ActivityView{
		ID:                 a.ID,
		ActivityID:         a.ActivityID,
		Date:               a.Date.Format("2006-01-02"),
		StartTime:          a.StartTime.Format(time.RFC3339),
		Source:             a.Source,
		ActivityType:       a.ActivityType,
		ZoneClassification: a.ZoneClassification,
		DurationMinutes:    a.DurationMinutes,
		DistanceKm:         a.DistanceKm,
		AvgHR:              a.AvgHR,
		MaxHR:              a.MaxHR,
		AvgPower:           a.AvgPower,
		Calories:           a.Calories,
		ElevationGain:      a.ElevationGain,
		WorkoutName:        a.WorkoutName,
		PerceivedEffort:    a.PerceivedEffort,
		Notes:              a.Notes,
		HoursSincePrevious: a.HoursSincePrevious,
		DaysSincePrevious:  a.DaysSincePrevious,
	}
}

// DailyMetricView is the JSON shape of one day of wellness data
type DailyMetricView struct {
	Date                  string   `json:"date"`
	RestingHR             *int     `json:"resting_hr"`
	HRV                   *float64 `json:"hrv"`
	StressScore           *int     `json:"stress_score"`
	BodyBattery           *int     `json:"body_battery"`
	Weight                *float64 `json:"weight"`
	SleepHours            *float64 `json:"sleep_hours"`
	SleepScore            *int     `json:"sleep_score"`
	Steps                 *int     `json:"steps"`
	FloorsClimbed         *int     `json:"floors_climbed"`
	IntensityMinutes      *int     `json:"intensity_minutes"`
	TrainingLoad          *int     `json:"training_load"`
	DaysSinceLastActivity *float64 `json:"days_since_last_activity"`
	CurrentStreak         int      `json:"current_streak"`
}

func toDailyMetricView(m store.DailyMetric) DailyMetricView {
	return DailyMetricView{
		Date:                  m.Date.Format("2006-01-02"),
		RestingHR:             m.RestingHR,
		HRV:                   m.HRV,
		StressScore:           m.StressScore,
		BodyBattery:           m.BodyBattery,
		Weight:                m.Weight,
		SleepHours:            m.SleepHours,
		SleepScore:            m.SleepScore,
		Steps:                 m.Steps,
		FloorsClimbed:         m.FloorsClimbed,
		IntensityMinutes:      m.IntensityMinutes,
		TrainingLoad:          m.TrainingLoad,
		DaysSinceLastActivity: m.DaysSinceLastActivity,
		CurrentStreak:         m.CurrentStreak,
	}
}

// WeeklySummaryView is the JSON shape of one weekly rollup
type WeeklySummaryView struct {
	WeekStart string `json:"week_start_date"`
	WeekEnd   string `json:"week_end_date"`

	AvgRestingHR   *float64 `json:"avg_resting_hr"`
	AvgHRV         *float64 `json:"avg_hrv"`
	AvgStressScore *float64 `json:"avg_stress_score"`
	AvgBodyBattery *float64 `json:"avg_body_battery"`
	AvgWeight      *float64 `json:"avg_weight"`
	AvgSleepHours  *float64 `json:"avg_sleep_hours"`
	AvgSleepScore  *float64 `json:"avg_sleep_score"`
	AvgDailySteps  *float64 `json:"avg_daily_steps"`

	Zone2Sessions     int      `json:"zone2_sessions"`
	VO2MaxSessions    int      `json:"vo2max_sessions"`
	StrengthSessions  int      `json:"strength_sessions"`
	TotalActivities   int      `json:"total_activities"`
	Zone2AvgHR        *float64 `json:"zone2_avg_hr"`
	Zone2TotalMinutes float64  `json:"zone2_total_minutes"`
	TotalTrainingLoad *int     `json:"total_training_load"`

	LongestGapDays     *float64 `json:"longest_gap_days"`
	ActivityStreakEnd  int      `json:"activity_streak_end"`
	DaysWithActivity   int      `json:"days_with_activity"`
	MissedActivityDays int      `json:"missed_activity_days"`

	HitZone2Target    bool `json:"hit_zone2_target"`
	HitStrengthTarget bool `json:"hit_strength_target"`
	HitStepsTarget    bool `json:"hit_steps_target"`
	NoLongGaps        bool `json:"no_long_gaps"`
	PerfectWeek       bool `json:"perfect_week"`
}

func toWeeklySummaryView(s store.WeeklySummary) WeeklySummaryView {
	return WeeklySummaryView{
		WeekStart:          s.WeekStart.Format("2006-01-02"),
		WeekEnd:            s.WeekEnd.Format("2006-01-02"),
		AvgRestingHR:       s.AvgRestingHR,
		AvgHRV:             s.AvgHRV,
		AvgStressScore:     s.AvgStressScore,
		AvgBodyBattery:     s.AvgBodyBattery,
		AvgWeight:          s.AvgWeight,
		AvgSleepHours:      s.AvgSleepHours,
		AvgSleepScore:      s.AvgSleepScore,
		AvgDailySteps:      s.AvgDailySteps,
		Zone2Sessions:      s.Zone2Sessions,
		VO2MaxSessions:     s.VO2MaxSessions,
		StrengthSessions:   s.StrengthSessions,
		TotalActivities:    s.TotalActivities,
		Zone2AvgHR:         s.Zone2AvgHR,
		Zone2TotalMinutes:  s.Zone2TotalMinutes,
		TotalTrainingLoad:  s.TotalTrainingLoad,
		LongestGapDays:     s.LongestGapDays,
		ActivityStreakEnd:  s.ActivityStreakEnd,
		DaysWithActivity:   s.DaysWithActivity,
		MissedActivityDays: s.MissedActivityDays,
		HitZone2Target:     s.HitZone2Target,
		HitStrengthTarget:  s.HitStrengthTarget,
		HitStepsTarget:     s.HitStepsTarget,
		NoLongGaps:         s.NoLongGaps,
		PerfectWeek:        s.PerfectWeek,
	}
}
