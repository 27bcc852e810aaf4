package analysis

import (
	"testing"

	"longevity/internal/store"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name     string
		activity store.Activity
		want     string
	}{
		{
			name: "crossfit source is always strength",
			activity: store.Activity{
				Source:          "crossfit",
				ActivityType:    "cycling",
				AvgHR:           floatPtr(130),
				DurationMinutes: 45,
			},
			want: ZoneStrength,
		},
		{
			name: "crossfit source with no HR or duration",
			activity: store.Activity{
				Source:       "crossfit",
				ActivityType: "metcon",
			},
			want: ZoneStrength,
		},
		{
			name: "strength keyword in type",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "strength_training",
				DurationMinutes: 30,
			},
			want: ZoneStrength,
		},
		{
			name: "strength keyword is case-insensitive",
			activity: store.Activity{
				Source:       "garmin",
				ActivityType: "Weight Training",
			},
			want: ZoneStrength,
		},
		{
			name: "cycling in zone2 band",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "cycling",
				AvgHR:           floatPtr(130),
				DurationMinutes: 45,
			},
			want: ZoneZone2,
		},
		{
			name: "cycling at vo2max intensity",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "cycling",
				AvgHR:           floatPtr(175),
				DurationMinutes: 30,
			},
			want: ZoneVO2Max,
		},
		{
			name: "cycling between bands is other",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "cycling",
				AvgHR:           floatPtr(150),
				DurationMinutes: 45,
			},
			want: ZoneOther,
		},
		{
			name: "zone2 band bounds are inclusive",
			activity: store.Activity{
				Source:          "strava",
				ActivityType:    "indoor_cycling",
				AvgHR:           floatPtr(140),
				DurationMinutes: 40,
			},
			want: ZoneZone2,
		},
		{
			name: "vo2max duration bounds are inclusive",
			activity: store.Activity{
				Source:          "strava",
				ActivityType:    "run",
				AvgHR:           floatPtr(172),
				DurationMinutes: 50,
			},
			want: ZoneVO2Max,
		},
		{
			name: "zone2 HR but too short falls through to other",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "running",
				AvgHR:           floatPtr(130),
				DurationMinutes: 30,
			},
			want: ZoneOther,
		},
		{
			name: "vo2max HR but too long is other",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "cycling",
				AvgHR:           floatPtr(175),
				DurationMinutes: 90,
			},
			want: ZoneOther,
		},
		{
			name: "cardio without HR data is other, not an error",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "cycling",
				DurationMinutes: 60,
			},
			want: ZoneOther,
		},
		{
			name: "cardio with zero duration is other",
			activity: store.Activity{
				Source:       "garmin",
				ActivityType: "cycling",
				AvgHR:        floatPtr(130),
			},
			want: ZoneOther,
		},
		{
			name: "walking is other",
			activity: store.Activity{
				Source:          "garmin",
				ActivityType:    "walking",
				AvgHR:           floatPtr(100),
				DurationMinutes: 60,
			},
			want: ZoneOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.activity, th)
			if got != tt.want {
				t.Errorf("Classify(%s) = %q, want %q", tt.activity.ActivityType, got, tt.want)
			}
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.Zone2HRMin = 110
	th.Zone2HRMax = 125
	th.Zone2MinDurationMin = 20

	a := store.Activity{
		Source:          "garmin",
		ActivityType:    "cycling",
		AvgHR:           floatPtr(115),
		DurationMinutes: 25,
	}

	if got := Classify(a, th); got != ZoneZone2 {
		t.Errorf("Classify with custom band = %q, want %q", got, ZoneZone2)
	}

	// Same activity fails the default band
	if got := Classify(a, DefaultThresholds()); got != ZoneOther {
		t.Errorf("Classify with default band = %q, want %q", got, ZoneOther)
	}
}

func TestClassifyStrengthSourceBeatsKeywords(t *testing.T) {
	// Rule 1 wins before any keyword matching happens
	a := store.Activity{
		Source:          "crossfit",
		ActivityType:    "running",
		AvgHR:           floatPtr(130),
		DurationMinutes: 45,
	}
	if got := Classify(a, DefaultThresholds()); got != ZoneStrength {
		t.Errorf("Classify = %q, want %q", got, ZoneStrength)
	}
}
