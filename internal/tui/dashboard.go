package tui

import (
	"fmt"
	"time"

	"longevity/internal/analysis"
	"longevity/internal/service"
	"longevity/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService) DashboardModel {
	return DashboardModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData(time.Now())
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{data: data}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || m.data.Status == nil {
		return "\n  No data available. Press 's' to sync."
	}

	var sections []string

	sections = append(sections, m.renderStatusBanner())

	// Top row: consistency card and this week's goals side by side
	statusCard := m.renderConsistencyCard()
	goalsCard := m.renderGoalsCard()
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, statusCard, "  ", goalsCard)
	sections = append(sections, topRow)

	if len(m.data.StepsHistory) > 2 {
		sections = append(sections, m.renderStepsChart())
	}

	if len(m.data.WeightHistory) > 2 {
		sections = append(sections, m.renderWeightChart())
	}

	sections = append(sections, m.renderRecentActivities())

	help := statusStyle.Render("Press 'r' to refresh, 's' to sync, '2' for activities, '3' for weeks")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBanner shows the traffic light at the top of the screen
func (m DashboardModel) renderStatusBanner() string {
	s := m.data.Status

	var text string
	switch s.AlertLevel {
	case analysis.AlertGreen:
		text = fmt.Sprintf("ON TRACK - last activity %.1f days ago", s.DaysSinceLastActivity)
	case analysis.AlertYellow:
		text = fmt.Sprintf("GETTING CLOSE - %.1f days since last activity", s.DaysSinceLastActivity)
	default:
		if s.LastActivityDate == nil {
			text = "NO ACTIVITIES RECORDED - time to start"
		} else {
			text = fmt.Sprintf("GAP TOO LONG - %.1f days since last activity", s.DaysSinceLastActivity)
		}
	}

	return alertStyle(s.AlertLevel).Render(text)
}

func (m DashboardModel) renderConsistencyCard() string {
	title := cardTitleStyle.Render("Consistency")
	s := m.data.Status

	lastActivity := "-"
	if s.LastActivityDate != nil {
		lastActivity = fmt.Sprintf("%s (%s)", s.LastActivityDate.Format("Jan 02"), s.LastActivityType)
	}

	lines := []string{
		RenderMetric("Current streak", fmt.Sprintf("%d days", s.CurrentStreak)),
		RenderMetric("Days since activity", fmt.Sprintf("%.1f", s.DaysSinceLastActivity)),
		RenderMetric("Last activity", lastActivity),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderGoalsCard() string {
	title := cardTitleStyle.Render("This Week")
	goals := m.queryService.Goals()

	week := m.data.CurrentWeek
	if week == nil {
		content := statusStyle.Render("No summary yet - sync to compute")
		return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
	}

	lines := []string{
		m.renderGoalLine("Zone 2", week.Zone2Sessions, goals.Zone2Sessions, week.HitZone2Target),
		m.renderGoalLine("Strength", week.StrengthSessions, goals.StrengthSessions, week.HitStrengthTarget),
		fmt.Sprintf("%s %s", goalMark(week.HitStepsTarget), m.renderStepsGoal(week)),
		fmt.Sprintf("%s No long gaps", goalMark(week.NoLongGaps)),
	}

	if week.PerfectWeek {
		lines = append(lines, "", successStyle.Render("Perfect week!"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderGoalLine(label string, have, want int, met bool) string {
	percent := 0.0
	if want > 0 {
		percent = float64(have) / float64(want)
	}
	return fmt.Sprintf("%s %-9s %d/%d %s", goalMark(met), label, have, want, RenderProgressBar(percent, 10))
}

func (m DashboardModel) renderStepsGoal(week *store.WeeklySummary) string {
	if week.AvgDailySteps == nil {
		return "Steps: no data"
	}
	return fmt.Sprintf("Steps avg %.0f", *week.AvgDailySteps)
}

func (m DashboardModel) renderStepsChart() string {
	title := cardTitleStyle.Render("Daily Steps - Last 30 Days")

	graph := asciigraph.Plot(m.data.StepsHistory,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderWeightChart() string {
	title := cardTitleStyle.Render("Weight (lbs) - Last 30 Days")

	graph := asciigraph.Plot(m.data.WeightHistory,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	if len(m.data.RecentActivities) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-16s  %-9s  %7s  %6s",
		"Date", "Type", "Zone", "Minutes", "AvgHR"))

	rows := []string{header}
	for i, a := range m.data.RecentActivities {
		if i >= 5 {
			break
		}

		hr := "-"
		if a.AvgHR != nil {
			hr = fmt.Sprintf("%.0f", *a.AvgHR)
		}

		row := tableRowStyle.Render(fmt.Sprintf("%-10s  %-16s  %-9s  %7.0f  %6s",
			a.Date.Format("Jan 02"),
			truncateName(a.ActivityType, 16),
			a.ZoneClassification,
			a.DurationMinutes,
			hr,
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
