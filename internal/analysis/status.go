package analysis

// Alert levels for the live status indicator
const (
	AlertGreen  = "green"
	AlertYellow = "yellow"
	AlertRed    = "red"
)

// AlertLevel maps days-since-last-activity onto the traffic-light status.
// A nil value (no activity at all) is red.
func AlertLevel(daysSince *float64) string {
	switch {
	case daysSince == nil:
		return AlertRed
	case *daysSince < 1.5:
		return AlertGreen
	case *daysSince < 2.0:
		return AlertYellow
	default:
		return AlertRed
	}
}
