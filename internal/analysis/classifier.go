package analysis

import (
	"strings"

	"longevity/internal/store"
)

// Zone classification labels
const (
	ZoneStrength = "strength"
	ZoneZone2    = "zone2"
	ZoneVO2Max   = "vo2max"
	ZoneOther    = "other"
)

// Thresholds holds the tunable classification rules. The bands are kept as
// plain numbers on purpose: the point of the classifier is that the user can
// audit and adjust every cutoff.
type Thresholds struct {
	// Activities from this source are always strength, regardless of HR.
	StrengthSource string

	StrengthKeywords []string
	CardioKeywords   []string

	Zone2HRMin          float64
	Zone2HRMax          float64
	Zone2MinDurationMin float64

	VO2MaxHRMin          float64
	VO2MaxMinDurationMin float64
	VO2MaxMaxDurationMin float64
}

// DefaultThresholds returns the standard classification thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrengthSource:       "crossfit",
		StrengthKeywords:     []string{"strength", "weight", "crossfit", "gym", "training", "fitness"},
		CardioKeywords:       []string{"cycling", "running", "biking", "ride", "run", "indoor_cycling"},
		Zone2HRMin:           120,
		Zone2HRMax:           140,
		Zone2MinDurationMin:  40,
		VO2MaxHRMin:          170,
		VO2MaxMinDurationMin: 25,
		VO2MaxMaxDurationMin: 50,
	}
}

// Classify assigns a zone label to a single activity. Rules are evaluated in
// order, first match wins:
//
//  1. strength source -> strength
//  2. strength keyword in the activity type -> strength
//  3. cardio keyword with HR and duration present -> zone2 or vo2max by band
//  4. everything else -> other
//
// Missing HR or duration is never an error; the activity falls through to
// "other", which still counts toward consistency tracking.
func Classify(a store.Activity, th Thresholds) string {
	activityType := strings.ToLower(a.ActivityType)

	if a.Source == th.StrengthSource {
		return ZoneStrength
	}

	if containsAny(activityType, th.StrengthKeywords) {
		return ZoneStrength
	}

	isCardio := containsAny(activityType, th.CardioKeywords)
	if isCardio && a.AvgHR != nil && *a.AvgHR > 0 && a.DurationMinutes > 0 {
		hr := *a.AvgHR

		if a.DurationMinutes >= th.Zone2MinDurationMin && hr >= th.Zone2HRMin && hr <= th.Zone2HRMax {
			return ZoneZone2
		}

		if a.DurationMinutes >= th.VO2MaxMinDurationMin && a.DurationMinutes <= th.VO2MaxMaxDurationMin && hr >= th.VO2MaxHRMin {
			return ZoneVO2Max
		}
	}

	return ZoneOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
