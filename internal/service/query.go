package service

import (
	"fmt"
	"time"

	"longevity/internal/analysis"
	"longevity/internal/store"
)

// QueryService provides read-only queries for the TUI and API
type QueryService struct {
	store *store.DB
	goals analysis.Goals
}

// NewQueryService creates a query service with the configured goals
func NewQueryService(db *store.DB, goals analysis.Goals) *QueryService {
	return &QueryService{store: db, goals: goals}
}

// Goals returns the configured weekly targets
func (q *QueryService) Goals() analysis.Goals {
	return q.goals
}

// StatusReport is the at-a-glance consistency check
type StatusReport struct {
	DaysSinceLastActivity float64
	CurrentStreak         int
	AlertLevel            string
	LastActivityDate      *time.Time
	LastActivityType      string
}

// GetStatus answers the one question the whole system exists for:
// how long since the last activity, and is that fine, worrying, or
// past the allowed gap.
func (q *QueryService) GetStatus(now time.Time) (*StatusReport, error) {
	now = wallClock(now)

	activities, err := q.store.ListActivities(1, 0)
	if err != nil {
		return nil, fmt.Errorf("loading last activity: %w", err)
	}

	if len(activities) == 0 {
		return &StatusReport{
			DaysSinceLastActivity: NoActivitySentinelDays,
			AlertLevel:            analysis.AlertRed,
		}, nil
	}

	last := activities[0]
	daysSince := analysis.DaysSinceLastActivity(activities, now)

	metric, err := q.store.GetDailyMetric(calendarDate(now))
	if err != nil {
		return nil, fmt.Errorf("loading today's snapshot: %w", err)
	}
	streak := 0
	if metric != nil {
		streak = metric.CurrentStreak
	}

	report := &StatusReport{
		CurrentStreak:    streak,
		AlertLevel:       analysis.AlertLevel(daysSince),
		LastActivityDate: &last.Date,
		LastActivityType: last.ActivityType,
	}
	if daysSince != nil {
		report.DaysSinceLastActivity = *daysSince
	}

	return report, nil
}

// DashboardData bundles everything the dashboard view renders
type DashboardData struct {
	Status           *StatusReport
	CurrentWeek      *store.WeeklySummary
	RecentActivities []store.Activity
	RecentWeeks      []store.WeeklySummary

	// Daily step counts for the trend chart, oldest first
	StepsHistory []float64
	StepsDates   []time.Time

	// Weight readings from the same window, days without a reading
	// omitted rather than charted as zero
	WeightHistory []float64
}

// GetDashboardData fetches all data needed for the dashboard view
func (q *QueryService) GetDashboardData(now time.Time) (*DashboardData, error) {
	now = wallClock(now)
	data := &DashboardData{}

	status, err := q.GetStatus(now)
	if err != nil {
		return nil, err
	}
	data.Status = status

	recent, err := q.store.ListActivities(RecentActivitiesLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("loading recent activities: %w", err)
	}
	data.RecentActivities = recent

	weeks, err := q.store.ListWeeklySummaries(WeeklySummariesLimit)
	if err != nil {
		return nil, fmt.Errorf("loading weekly summaries: %w", err)
	}
	data.RecentWeeks = weeks

	weekStart := analysis.WeekStart(now)
	for i := range weeks {
		if weeks[i].WeekStart.Equal(weekStart) {
			data.CurrentWeek = &weeks[i]
			break
		}
	}

	data.StepsHistory, data.StepsDates, data.WeightHistory, err = q.buildTrendHistories(now)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// buildTrendHistories collects the last 30 days of step counts and
// weight readings for charting. Days without step data chart as zero;
// days without a weight reading are omitted from the weight series.
func (q *QueryService) buildTrendHistories(now time.Time) ([]float64, []time.Time, []float64, error) {
	end := calendarDate(now)
	start := end.AddDate(0, 0, -29)

	metrics, err := q.store.ListDailyMetricsByDateRange(start, end)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading trend history: %w", err)
	}

	byDate := make(map[string]store.DailyMetric, len(metrics))
	for _, m := range metrics {
		byDate[m.Date.Format("2006-01-02")] = m
	}

	var steps []float64
	var dates []time.Time
	var weights []float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		value := 0.0
		if m, ok := byDate[day.Format("2006-01-02")]; ok {
			if m.Steps != nil {
				value = float64(*m.Steps)
			}
			if m.Weight != nil {
				weights = append(weights, *m.Weight)
			}
		}
		steps = append(steps, value)
		dates = append(dates, day)
	}

	return steps, dates, weights, nil
}

// ListRecentActivities returns the newest activities first
func (q *QueryService) ListRecentActivities(limit, offset int) ([]store.Activity, error) {
	if limit <= 0 {
		limit = RecentActivitiesLimit
	}
	return q.store.ListActivities(limit, offset)
}

// CountActivities returns the total number of stored activities
func (q *QueryService) CountActivities() (int, error) {
	return q.store.CountActivities()
}

// ListWeeklySummaries returns the most recent weekly summaries
func (q *QueryService) ListWeeklySummaries(limit int) ([]store.WeeklySummary, error) {
	if limit <= 0 {
		limit = WeeklySummariesLimit
	}
	return q.store.ListWeeklySummaries(limit)
}

// ListDailyMetrics returns wellness metrics for the past N days
func (q *QueryService) ListDailyMetrics(now time.Time, days int) ([]store.DailyMetric, error) {
	if days <= 0 {
		days = DailyMetricsDays
	}
	end := calendarDate(now)
	start := end.AddDate(0, 0, -days)
	return q.store.ListDailyMetricsByDateRange(start, end)
}

// CalendarEntry is one activity on the calendar view
type CalendarEntry struct {
	Type            string  `json:"type"`
	Classification  string  `json:"classification"`
	DurationMinutes float64 `json:"duration"`
}

// GetCalendar groups a month's activities by date, keyed "2006-01-02"
func (q *QueryService) GetCalendar(year int, month time.Month) (map[string][]CalendarEntry, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	activities, err := q.store.ListActivitiesByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("loading calendar activities: %w", err)
	}

	calendar := make(map[string][]CalendarEntry)
	for _, a := range activities {
		key := a.Date.Format("2006-01-02")
		calendar[key] = append(calendar[key], CalendarEntry{
			Type:            a.ActivityType,
			Classification:  a.ZoneClassification,
			DurationMinutes: a.DurationMinutes,
		})
	}

	return calendar, nil
}
