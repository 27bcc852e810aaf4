package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"longevity/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SyncModel is the sync screen model
type SyncModel struct {
	syncService *service.SyncService
	syncing     bool
	historical  bool
	result      *service.SyncResult
	err         error
	done        bool
}

// NewSyncModel creates a new sync model
func NewSyncModel(ss *service.SyncService) SyncModel {
	return SyncModel{
		syncService: ss,
	}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	return nil
}

// SyncDoneMsg is sent when a sync finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, func() tea.Msg { return SyncCompleteMsg{} }

	case tea.KeyMsg:
		if !m.syncing {
			switch msg.String() {
			case "enter", "d":
				m.syncing = true
				m.historical = false
				m.done = false
				m.err = nil
				m.result = nil
				return m, m.runDailySync
			case "h":
				m.syncing = true
				m.historical = true
				m.done = false
				m.err = nil
				m.result = nil
				return m, m.runHistoricalSync
			}
		}
	}
	return m, nil
}

func (m SyncModel) runDailySync() tea.Msg {
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1)

	// Pass nil for progress channel - we're not showing real-time updates
	// (the channel would block if buffer fills up)
	result, syncErr := m.syncService.SyncDaily(ctx, yesterday, nil)

	return SyncDoneMsg{Result: result, Err: syncErr}
}

func (m SyncModel) runHistoricalSync() tea.Msg {
	ctx := context.Background()

	result, syncErr := m.syncService.SyncHistorical(ctx, service.DefaultHistoryDays, nil)

	return SyncDoneMsg{Result: result, Err: syncErr}
}

// View renders the sync screen
func (m SyncModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Sync")
	sections = append(sections, title)

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 'd' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done && !m.syncing {
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.syncing {
		sections = append(sections, m.renderProgress())
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, "  Daily sync (yesterday):")
	lines = append(lines, "")
	lines = append(lines, "  1. Pull wellness metrics (steps, sleep, stress, weight)")
	lines = append(lines, "  2. Fetch new activities and classify training zones")
	lines = append(lines, "  3. Recompute gaps, streak, and weekly summaries")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render(fmt.Sprintf("  Historical sync backfills the last %d days.", service.DefaultHistoryDays)))
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 'd' or Enter for daily sync, 'h' for historical"))

	return strings.Join(lines, "\n")
}

func (m SyncModel) renderProgress() string {
	var lines []string

	lines = append(lines, "")
	if m.historical {
		lines = append(lines, fmt.Sprintf("  Backfilling the last %d days...", service.DefaultHistoryDays))
	} else {
		lines = append(lines, "  Syncing yesterday's data...")
	}
	lines = append(lines, "")
	lines = append(lines, "  1. Pulling wellness metrics")
	lines = append(lines, "  2. Fetching activities")
	lines = append(lines, "  3. Recomputing consistency")
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  This may take a moment..."))

	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	var lines []string

	if m.result == nil {
		return ""
	}

	r := m.result
	lines = append(lines, "")

	if r.ActivitiesStored > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d activities stored", r.ActivitiesStored)))
	} else {
		lines = append(lines, statusStyle.Render("  No new activities"))
	}

	if r.MetricsStored > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d daily metric days stored", r.MetricsStored)))
	}

	if r.WeeksSummarized > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d weeks summarized", r.WeeksSummarized)))
	}

	lines = append(lines, statusStyle.Render(fmt.Sprintf("  Current streak: %d days", r.CurrentStreak)))

	if len(r.Errors) > 0 {
		lines = append(lines, "")
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d errors occurred", len(r.Errors))))
	}

	return strings.Join(lines, "\n")
}
