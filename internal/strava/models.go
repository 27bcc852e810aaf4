package strava

import (
	"fmt"
	"strings"
	"time"

	"longevity/internal/store"
)

// Activity is a Strava activity as returned by the API
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Distance           float64   `json:"distance"`             // meters
	MovingTime         int       `json:"moving_time"`          // seconds
	ElapsedTime        int       `json:"elapsed_time"`         // seconds
	TotalElevationGain float64   `json:"total_elevation_gain"` // meters
	AverageHeartrate   float64   `json:"average_heartrate"`    // bpm
	MaxHeartrate       float64   `json:"max_heartrate"`        // bpm
	Calories           float64   `json:"calories"`
	SufferScore        float64   `json:"suffer_score"`
	HasHeartrate       bool      `json:"has_heartrate"`
}

// ToStoreActivity converts an API activity into our storage model.
// Activity types are normalized to lowercase so the classifier's keyword
// matching behaves the same regardless of source casing.
func (a Activity) ToStoreActivity() store.Activity {
	id := fmt.Sprintf("strava-%d", a.ID)
	start := a.StartDateLocal
	if start.IsZero() {
		start = a.StartDate
	}

	activityType := a.SportType
	if activityType == "" {
		activityType = a.Type
	}

	out := store.Activity{
		ActivityID:      &id,
		Date:            start.Truncate(24 * time.Hour),
		StartTime:       start,
		Source:          "strava",
		ActivityType:    strings.ToLower(activityType),
		DurationMinutes: float64(a.MovingTime) / 60,
	}

	if a.Name != "" {
		name := a.Name
		out.WorkoutName = &name
	}
	if a.Distance > 0 {
		km := a.Distance / 1000
		out.DistanceKm = &km
	}
	if a.HasHeartrate && a.AverageHeartrate > 0 {
		avg := a.AverageHeartrate
		out.AvgHR = &avg
	}
	if a.HasHeartrate && a.MaxHeartrate > 0 {
		max := a.MaxHeartrate
		out.MaxHR = &max
	}
	if a.TotalElevationGain > 0 {
		gain := a.TotalElevationGain
		out.ElevationGain = &gain
	}
	if a.Calories > 0 {
		cal := int(a.Calories)
		out.Calories = &cal
	}
	if a.SufferScore > 0 {
		effort := int(a.SufferScore)
		out.PerceivedEffort = &effort
	}

	return out
}
