package analysis

import "testing"

func TestAlertLevel(t *testing.T) {
	tests := []struct {
		name      string
		daysSince *float64
		want      string
	}{
		{"no activity ever", nil, AlertRed},
		{"same day", floatPtr(0.3), AlertGreen},
		{"just under green cutoff", floatPtr(1.4), AlertGreen},
		{"green cutoff is exclusive", floatPtr(1.5), AlertYellow},
		{"just under yellow cutoff", floatPtr(1.9), AlertYellow},
		{"yellow cutoff is exclusive", floatPtr(2.0), AlertRed},
		{"long silence", floatPtr(6.0), AlertRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlertLevel(tt.daysSince); got != tt.want {
				t.Errorf("AlertLevel = %q, want %q", got, tt.want)
			}
		})
	}
}
