package garmin

import (
	"fmt"
	"strings"
	"time"

	"longevity/internal/store"
)

// DailySummary is the wellness summary Garmin reports per day
type DailySummary struct {
	CalendarDate     string `json:"calendarDate"`
	TotalSteps       *int   `json:"totalSteps"`
	FloorsAscended   *int   `json:"floorsAscended"`
	IntensityMinutes *int   `json:"moderateIntensityMinutes"`
	RestingHeartRate *int   `json:"restingHeartRate"`
}

// SleepData is the nightly sleep response
type SleepData struct {
	DailySleepDTO struct {
		SleepTimeSeconds int `json:"sleepTimeSeconds"`
		SleepScores      struct {
			Overall struct {
				Value *int `json:"value"`
			} `json:"overall"`
		} `json:"sleepScores"`
	} `json:"dailySleepDTO"`
}

// HeartRates is the daily heart rate response
type HeartRates struct {
	RestingHeartRate *int `json:"restingHeartRate"`
}

// StressData is the daily stress response
type StressData struct {
	AvgStressLevel *int `json:"avgStressLevel"`
}

// BodyComposition is the daily weight response. Weight is in grams.
type BodyComposition struct {
	TotalAverage struct {
		Weight *float64 `json:"weight"`
	} `json:"totalAverage"`
}

// WeightLbs converts the stored gram value to pounds
func (b *BodyComposition) WeightLbs() *float64 {
	if b == nil || b.TotalAverage.Weight == nil {
		return nil
	}
	lbs := *b.TotalAverage.Weight / 1000 * 2.20462
	return &lbs
}

// ActivityItem is one activity from the activity list endpoint
type ActivityItem struct {
	ActivityID   int64  `json:"activityId"`
	ActivityName string `json:"activityName"`
	ActivityType struct {
		TypeKey string `json:"typeKey"`
	} `json:"activityType"`
	StartTimeLocal string   `json:"startTimeLocal"` // "2006-01-02 15:04:05"
	Duration       float64  `json:"duration"`       // seconds
	Distance       *float64 `json:"distance"`       // meters
	AverageHR      *float64 `json:"averageHR"`
	MaxHR          *float64 `json:"maxHR"`
	Calories       *float64 `json:"calories"`
	ElevationGain  *float64 `json:"elevationGain"`
	AvgPower       *float64 `json:"avgPower"`
}

const startTimeLayout = "2006-01-02 15:04:05"

// ToStoreActivity converts an API activity into our storage model
func (a ActivityItem) ToStoreActivity() (store.Activity, error) {
	start, err := time.Parse(startTimeLayout, a.StartTimeLocal)
	if err != nil {
		return store.Activity{}, fmt.Errorf("parsing start time %q: %w", a.StartTimeLocal, err)
	}

	activityType := a.ActivityType.TypeKey
	if activityType == "" {
		activityType = "unknown"
	}

	id := fmt.Sprintf("garmin-%d", a.ActivityID)
	out := store.Activity{
		ActivityID:      &id,
		Date:            start.Truncate(24 * time.Hour),
		StartTime:       start,
		Source:          "garmin",
		ActivityType:    strings.ToLower(activityType),
		DurationMinutes: a.Duration / 60,
		AvgHR:           a.AverageHR,
		MaxHR:           a.MaxHR,
		ElevationGain:   a.ElevationGain,
	}

	if a.ActivityName != "" {
		name := a.ActivityName
		out.WorkoutName = &name
	}
	if a.Distance != nil && *a.Distance > 0 {
		km := *a.Distance / 1000
		out.DistanceKm = &km
	}
	if a.Calories != nil && *a.Calories > 0 {
		cal := int(*a.Calories)
		out.Calories = &cal
	}
	if a.AvgPower != nil && *a.AvgPower > 0 {
		power := int(*a.AvgPower)
		out.AvgPower = &power
	}

	return out, nil
}

// BuildDailyMetric folds the per-endpoint wellness responses into one
// storage row. Any of the inputs may be nil when an endpoint returned
// no data for the day.
func BuildDailyMetric(date time.Time, summary *DailySummary, sleep *SleepData, hr *HeartRates, stress *StressData, body *BodyComposition) store.DailyMetric {
	metric := store.DailyMetric{Date: date.Truncate(24 * time.Hour)}

	if summary != nil {
		metric.Steps = summary.TotalSteps
		metric.FloorsClimbed = summary.FloorsAscended
		metric.IntensityMinutes = summary.IntensityMinutes
		metric.RestingHR = summary.RestingHeartRate
	}
	if hr != nil && hr.RestingHeartRate != nil {
		metric.RestingHR = hr.RestingHeartRate
	}
	if stress != nil {
		metric.StressScore = stress.AvgStressLevel
	}
	if sleep != nil && sleep.DailySleepDTO.SleepTimeSeconds > 0 {
		hours := float64(sleep.DailySleepDTO.SleepTimeSeconds) / 3600
		metric.SleepHours = &hours
		metric.SleepScore = sleep.DailySleepDTO.SleepScores.Overall.Value
	}
	if w := body.WeightLbs(); w != nil {
		metric.Weight = w
	}

	return metric
}
