package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/visit"
)

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Weekend confirmation box
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f59e0b")).
			Padding(0, 2)
)

// statusColors maps visit statuses to their label colour.
var statusColors = map[visit.Status]lipgloss.Color{
	visit.StatusPending:     lipgloss.Color("#f59e0b"),
	visit.StatusConfirmed:   lipgloss.Color("#4ade80"),
	visit.StatusCompleted:   lipgloss.Color("#60a5fa"),
	visit.StatusCancelled:   lipgloss.Color("#f87171"),
	visit.StatusRescheduled: lipgloss.Color("#c084fc"),
}

// StatusStyle returns the style for a visit status label.
func StatusStyle(s visit.Status) lipgloss.Style {
	if c, ok := statusColors[s]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// StateStyle returns the style for a publication state label.
func StateStyle(s publication.State) lipgloss.Style {
	switch s {
	case publication.StateActive:
		return accentStyle
	case publication.StatePaused:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	case publication.StateFinished:
		return metaStyle
	default:
		return dimStyle
	}
}

func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
