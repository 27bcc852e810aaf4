package tui

import (
	"fmt"
	"strings"

	"longevity/internal/service"
	"longevity/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WeeksModel is the weekly summaries screen model
type WeeksModel struct {
	queryService *service.QueryService
	viewport     viewport.Model
	weeks        []store.WeeklySummary
	ready        bool
	loading      bool
	err          error
}

// NewWeeksModel creates a new weekly summaries model
func NewWeeksModel(qs *service.QueryService, width, height int) WeeksModel {
	m := WeeksModel{
		queryService: qs,
		loading:      true,
	}
	if width > 0 && height > 6 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the weeks screen
func (m WeeksModel) Init() tea.Cmd {
	return m.loadWeeks
}

type weeksLoadedMsg struct {
	weeks []store.WeeklySummary
	err   error
}

func (m WeeksModel) loadWeeks() tea.Msg {
	weeks, err := m.queryService.ListWeeklySummaries(service.WeeklySummariesLimit)
	return weeksLoadedMsg{weeks: weeks, err: err}
}

// Update handles messages
func (m WeeksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case weeksLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.weeks = msg.weeks
		if m.ready {
			m.viewport.SetContent(m.renderWeeks())
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.renderWeeks())

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadWeeks
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the weekly summaries
func (m WeeksModel) View() string {
	if m.loading {
		return "\n  Loading weekly summaries..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.weeks) == 0 {
		return "\n  No weekly summaries yet. Press 's' to sync."
	}

	if !m.ready {
		return m.renderWeeks()
	}

	return m.viewport.View()
}

func (m WeeksModel) renderWeeks() string {
	var sections []string

	goals := m.queryService.Goals()

	for _, w := range m.weeks {
		title := cardTitleStyle.Render(fmt.Sprintf("Week of %s", w.WeekStart.Format("Jan 02, 2006")))
		if w.PerfectWeek {
			title += "  " + goalMetStyle.Render("PERFECT WEEK")
		}

		var lines []string
		lines = append(lines, title)
		lines = append(lines, "")

		lines = append(lines, fmt.Sprintf("  %s  Zone 2 %d/%d   Strength %d/%d   VO2max %d   Total %d",
			goalMark(w.HitZone2Target && w.HitStrengthTarget),
			w.Zone2Sessions, goals.Zone2Sessions,
			w.StrengthSessions, goals.StrengthSessions,
			w.VO2MaxSessions,
			w.TotalActivities,
		))

		steps := "-"
		if w.AvgDailySteps != nil {
			steps = fmt.Sprintf("%.0f", *w.AvgDailySteps)
		}
		lines = append(lines, fmt.Sprintf("  %s  Avg daily steps %s (goal %.0f)",
			goalMark(w.HitStepsTarget), steps, goals.DailySteps))

		gap := "-"
		if w.LongestGapDays != nil {
			gap = fmt.Sprintf("%.1f", *w.LongestGapDays)
		}
		lines = append(lines, fmt.Sprintf("  %s  Longest gap %s days (limit %.1f)   Active days %d/7",
			goalMark(w.NoLongGaps), gap, goals.MaxGapDays, w.DaysWithActivity))

		var wellness []string
		if w.AvgRestingHR != nil {
			wellness = append(wellness, fmt.Sprintf("RHR %.0f", *w.AvgRestingHR))
		}
		if w.AvgSleepHours != nil {
			wellness = append(wellness, fmt.Sprintf("Sleep %.1fh", *w.AvgSleepHours))
		}
		if w.AvgStressScore != nil {
			wellness = append(wellness, fmt.Sprintf("Stress %.0f", *w.AvgStressScore))
		}
		if w.AvgWeight != nil {
			wellness = append(wellness, fmt.Sprintf("Weight %.1f lbs", *w.AvgWeight))
		}
		if len(wellness) > 0 {
			lines = append(lines, "     "+strings.Join(wellness, "   "))
		}

		if w.Zone2TotalMinutes > 0 {
			z2hr := ""
			if w.Zone2AvgHR != nil {
				z2hr = fmt.Sprintf(" at %.0f bpm", *w.Zone2AvgHR)
			}
			lines = append(lines, fmt.Sprintf("     Zone 2 volume %.0f min%s", w.Zone2TotalMinutes, z2hr))
		}

		card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		sections = append(sections, card)
	}

	help := statusStyle.Render("\n  j/k or arrows: scroll  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
