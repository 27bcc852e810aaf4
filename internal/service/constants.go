package service

const (
	// Default lookback for a historical sync
	DefaultHistoryDays = 90

	// Pagination limits for the TUI and API
	RecentActivitiesLimit = 20
	WeeklySummariesLimit  = 12
	DailyMetricsDays      = 90

	// Reported when no activity has ever been recorded
	NoActivitySentinelDays = 999
)
