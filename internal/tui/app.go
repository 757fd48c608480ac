// Package tui is the interactive terminal UI opened by "hm browse".
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/house-market/internal/schedule"
)

type view int

const (
	viewVisits view = iota
	viewPubs
	viewSchedule
)

// App is the root Bubbletea model.
type App struct {
	view   view
	visits visitsModel
	pubs   pubsModel
	form   scheduleModel
	flash  string
	width  int
	height int
}

// NewApp creates the TUI for userID's visits. ctx bounds every request the
// screens make.
func NewApp(ctx context.Context, api API, userID int64, opts ...schedule.Option) App {
	var s *schedule.Scheduler
	if api != nil {
		s = schedule.New(api, opts...)
	}
	return App{
		visits: newVisitsModel(ctx, api, userID),
		pubs:   newPubsModel(ctx, api),
		form:   newScheduleModel(ctx, s),
	}
}

func (a App) Init() tea.Cmd {
	return a.visits.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: tabs(1) + blank(1) + flash(1) + help(1)
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.visits, _ = a.visits.Update(bodyMsg)
		a.pubs, _ = a.pubs.Update(bodyMsg)
		return a, nil

	case visitsRefreshMsg, visitsLoadedMsg:
		var cmd tea.Cmd
		a.visits, cmd = a.visits.Update(msg)
		return a, cmd

	case pubsMoreMsg, pubsPageMsg:
		var cmd tea.Cmd
		a.pubs, cmd = a.pubs.Update(msg)
		return a, cmd

	case scheduleForMsg:
		a.form = a.form.reset(msg.propertyID)
		a.view = viewSchedule
		a.flash = ""
		return a, nil

	case visitScheduledMsg:
		if !a.form.current(msg) {
			return a, nil
		}
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		if msg.err == nil && msg.visit != nil {
			a.flash = a.form.statusMsg
			a.view = viewVisits
			return a, tea.Batch(cmd, refreshVisits)
		}
		return a, cmd

	case tea.KeyMsg:
		if a.view == viewSchedule {
			if msg.String() == "esc" && a.form.confirm == nil {
				a.view = viewPubs
				return a, nil
			}
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			var cmd tea.Cmd
			a.form, cmd = a.form.Update(msg)
			return a, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.flash = ""
			if a.view != viewVisits {
				a.view = viewVisits
				return a, a.visits.Init()
			}
			return a, nil
		case "2":
			a.flash = ""
			if a.view != viewPubs {
				a.view = viewPubs
				return a, a.pubs.Init()
			}
			return a, nil
		case "n":
			a.form = a.form.reset(0)
			a.view = viewSchedule
			a.flash = ""
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewVisits:
		a.visits, cmd = a.visits.Update(msg)
	case viewPubs:
		a.pubs, cmd = a.pubs.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Visits", viewVisits},
		{"2", "Publications", viewPubs},
		{"n", "Schedule", viewSchedule},
	}

	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		tabBar.WriteString(" " + label + "  ")
	}

	var body, help string
	switch a.view {
	case viewVisits:
		body = a.visits.View()
		help = joinHelp(helpEntry("1-2", "tabs"), helpEntry("j/k", "nav"), helpEntry("r", "refresh"), helpEntry("f", "filter"), helpEntry("n", "schedule"), helpEntry("q", "quit"))
	case viewPubs:
		body = a.pubs.View()
		help = joinHelp(helpEntry("1-2", "tabs"), helpEntry("j/k", "scroll"), helpEntry("enter", "book visit"), helpEntry("r", "reload"), helpEntry("q", "quit"))
	case viewSchedule:
		body = a.form.View()
		if a.form.confirm != nil {
			help = joinHelp(helpEntry("y", "book"), helpEntry("n", "cancel"))
		} else {
			help = joinHelp(helpEntry("tab", "next"), helpEntry("enter", "submit"), helpEntry("esc", "back"))
		}
	}

	flash := ""
	if a.flash != "" {
		flash = accentStyle.Render("✓ " + a.flash)
	}

	const chrome = 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")
	if a.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(a.width).Render(body)
	}

	return tabBar.String() + "\n\n" + body + "\n" + flash + "\n" + help
}
