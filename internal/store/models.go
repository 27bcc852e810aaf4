package store

import "time"

// Auth represents OAuth tokens for Strava API access
type Auth struct {
	AthleteID    int64     `db:"athlete_id"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
}

// Activity represents one exercise session from any source
// (Garmin, Strava, or a manual entry).
type Activity struct {
	ID                 int64     `db:"id"`
	ActivityID         *string   `db:"activity_id"` // vendor id, nil for manual entries
	Date               time.Time `db:"date"`        // calendar date, midnight local
	StartTime          time.Time `db:"start_time"`
	Source             string    `db:"source"` // "garmin", "strava", "crossfit"
	ActivityType       string    `db:"activity_type"`
	ZoneClassification string    `db:"zone_classification"` // "strength", "zone2", "vo2max", "other"
	DurationMinutes    float64   `db:"duration_minutes"`
	DistanceKm         *float64  `db:"distance_km"`
	AvgHR              *float64  `db:"avg_hr"`
	MaxHR              *float64  `db:"max_hr"`
	AvgPower           *int      `db:"avg_power"` // watts
	Calories           *int      `db:"calories"`
	ElevationGain      *float64  `db:"elevation_gain"` // meters
	WorkoutName        *string   `db:"workout_name"`
	PerceivedEffort    *int      `db:"perceived_effort"` // 1-10, manual entries
	Notes              *string   `db:"notes"`

	// Gap fields, valid only relative to the full chronological history.
	// Nil on the earliest activity; recomputed wholesale on every change.
	HoursSincePrevious *float64 `db:"hours_since_previous"`
	DaysSincePrevious  *float64 `db:"days_since_previous"`
}

// DailyMetric represents one day of wellness data plus the
// consistency snapshot written by the recompute pass.
type DailyMetric struct {
	Date             time.Time `db:"date"`
	RestingHR        *int      `db:"resting_hr"`
	HRV              *float64  `db:"hrv"`
	StressScore      *int      `db:"stress_score"`
	BodyBattery      *int      `db:"body_battery"`
	Weight           *float64  `db:"weight"` // lbs
	SleepHours       *float64  `db:"sleep_hours"`
	SleepScore       *int      `db:"sleep_score"`
	Steps            *int      `db:"steps"`
	FloorsClimbed    *int      `db:"floors_climbed"`
	IntensityMinutes *int      `db:"intensity_minutes"`
	TrainingLoad     *int      `db:"training_load"`

	// Consistency snapshot; only today's record is authoritative.
	DaysSinceLastActivity *float64 `db:"days_since_last_activity"`
	CurrentStreak         int      `db:"current_streak"`
}

// FoodLog is one journaled food entry. Macros are optional so a quick
// entry is just a name and a meal type.
type FoodLog struct {
	ID          int64     `db:"id"`
	Date        time.Time `db:"date"`
	Time        time.Time `db:"time"`
	MealType    string    `db:"meal_type"` // breakfast, lunch, dinner, snack
	FoodName    string    `db:"food_name"`
	PortionSize *string   `db:"portion_size"`
	Calories    *int      `db:"calories"`
	ProteinG    *float64  `db:"protein_g"`
	CarbsG      *float64  `db:"carbs_g"`
	FatG        *float64  `db:"fat_g"`
	Notes       *string   `db:"notes"`
}

// WaterLog is one water intake entry
type WaterLog struct {
	ID               int64     `db:"id"`
	Date             time.Time `db:"date"`
	Time             time.Time `db:"time"`
	AmountOz         float64   `db:"amount_oz"`
	WithElectrolytes bool      `db:"with_electrolytes"`
}

// LabEntry is one lab panel, body measurement, or 1RM strength test.
// entry_type distinguishes them; all value columns are optional.
type LabEntry struct {
	ID                 int64     `db:"id"`
	Date               time.Time `db:"date"`
	EntryType          string    `db:"entry_type"` // "lab", "measurement", "strength"
	ApoB               *float64  `db:"apob"`       // mg/dL
	HbA1c              *float64  `db:"hba1c"`      // percent
	BPSystolic         *int      `db:"bp_systolic"`
	BPDiastolic        *int      `db:"bp_diastolic"`
	VO2Max             *float64  `db:"vo2max"` // ml/kg/min
	BodyFatPercent     *float64  `db:"body_fat_percent"`
	WaistCircumference *float64  `db:"waist_circumference"` // inches
	BackSquat1RM       *float64  `db:"back_squat_1rm"`      // lbs
	Deadlift1RM        *float64  `db:"deadlift_1rm"`
	OHP1RM             *float64  `db:"ohp_1rm"`
	Notes              *string   `db:"notes"`
}

// WeeklySummary represents the rollup for one ISO week (Monday-Sunday),
// keyed by week start date.
type WeeklySummary struct {
	WeekStart time.Time `db:"week_start_date"`
	WeekEnd   time.Time `db:"week_end_date"`

	AvgRestingHR   *float64 `db:"avg_resting_hr"`
	AvgHRV         *float64 `db:"avg_hrv"`
	AvgStressScore *float64 `db:"avg_stress_score"`
	AvgBodyBattery *float64 `db:"avg_body_battery"`
	AvgWeight      *float64 `db:"avg_weight"`
	AvgSleepHours  *float64 `db:"avg_sleep_hours"`
	AvgSleepScore  *float64 `db:"avg_sleep_score"`
	AvgDailySteps  *float64 `db:"avg_daily_steps"`

	Zone2Sessions    int `db:"zone2_sessions"`
	VO2MaxSessions   int `db:"vo2max_sessions"`
	StrengthSessions int `db:"strength_sessions"`
	TotalActivities  int `db:"total_activities"`

	Zone2AvgHR        *float64 `db:"zone2_avg_hr"`
	Zone2TotalMinutes float64  `db:"zone2_total_minutes"`

	TotalTrainingLoad *int `db:"total_training_load"`

	LongestGapDays     *float64 `db:"longest_gap_days"`
	ActivityStreakEnd  int      `db:"activity_streak_end"`
	DaysWithActivity   int      `db:"days_with_activity"`
	MissedActivityDays int      `db:"missed_activity_days"`

	// Goal flags stored as 0/1 integers.
	HitZone2Target    bool `db:"hit_zone2_target"`
	HitStrengthTarget bool `db:"hit_strength_target"`
	HitStepsTarget    bool `db:"hit_steps_target"`
	NoLongGaps        bool `db:"no_long_gaps"`
	PerfectWeek       bool `db:"perfect_week"`
}
