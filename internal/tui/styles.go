package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	greenColor   = lipgloss.Color("#10B981")
	yellowColor  = lipgloss.Color("#F59E0B")
	redColor     = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light gray
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	// Navigation
	navStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	navInactiveStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	// Cards and boxes
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Metrics
	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(22)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	// Alert banners, keyed to the traffic-light levels
	alertGreenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(greenColor).
			Padding(0, 2)

	alertYellowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1F2937")).
				Background(yellowColor).
				Padding(0, 2)

	alertRedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(redColor).
			Padding(0, 2)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				BorderBottom(true).
				BorderForeground(mutedColor).
				Padding(0, 1)

	tableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(primaryColor).
				Foreground(textColor).
				Padding(0, 1)

	// Status
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor)

	successStyle = lipgloss.NewStyle().
			Foreground(greenColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(yellowColor)

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Goal progress
	goalMetStyle = lipgloss.NewStyle().
			Foreground(greenColor)

	goalUnmetStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// alertStyle picks the banner style for an alert level
func alertStyle(level string) lipgloss.Style {
	switch level {
	case "green":
		return alertGreenStyle
	case "yellow":
		return alertYellowStyle
	default:
		return alertRedStyle
	}
}

// RenderMetric renders a labeled metric line
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderProgressBar renders an ASCII progress bar
func RenderProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += goalMetStyle.Render("█")
		} else {
			bar += goalUnmetStyle.Render("░")
		}
	}
	return bar
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

// goalMark renders a pass/fail marker for a weekly goal
func goalMark(met bool) string {
	if met {
		return goalMetStyle.Render("✓")
	}
	return goalUnmetStyle.Render("✗")
}
