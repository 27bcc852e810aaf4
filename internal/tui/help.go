package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Activities list"},
		{"3", "Weekly summaries"},
		{"4 or s", "Sync screen"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	})
	sections = append(sections, navSection)

	dashSection := m.renderSection("Dashboard", []keyHelp{
		{"r", "Refresh data"},
	})
	sections = append(sections, dashSection)

	actSection := m.renderSection("Activities List", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"pgdn", "Next page"},
		{"pgup", "Previous page"},
		{"r", "Refresh list"},
	})
	sections = append(sections, actSection)

	syncSection := m.renderSection("Sync Screen", []keyHelp{
		{"d / enter", "Daily sync (yesterday)"},
		{"h", "Historical sync (90 days)"},
	})
	sections = append(sections, syncSection)

	zonesSection := m.renderZonesHelp()
	sections = append(sections, zonesSection)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderZonesHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")).Render("Training Zones Explained"))
	lines = append(lines, "")

	zones := []struct {
		name string
		desc string
	}{
		{"Strength", "CrossFit and lifting sessions. Preserves muscle mass."},
		{"Zone 2", "Easy cardio, HR 120-140 for 40+ minutes. Builds aerobic base."},
		{"VO2max", "Hard intervals, HR 170+, 25-50 minutes. Raises aerobic ceiling."},
		{"Other", "Walks, yoga, and anything that fits no bucket above."},
		{"Streak", "Consecutive days ending today or yesterday with an activity."},
		{"Alert", "Green under 1.5 days since last activity, yellow under 2, red beyond."},
	}

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	for _, zone := range zones {
		lines = append(lines, "  "+helpKeyStyle.Render(zone.name))
		lines = append(lines, "  "+mutedStyle.Render(zone.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
