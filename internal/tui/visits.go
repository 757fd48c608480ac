package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/fetch"
	"github.com/evcraddock/house-market/internal/visit"
)

// -- messages --

// visitsRefreshMsg asks the visits screen to reload.
type visitsRefreshMsg struct{}

type visitsLoadedMsg struct {
	gen    uint64
	visits []*visit.Visit
	err    error
}

// -- model --

type visitsModel struct {
	ctx       context.Context
	api       API
	userID    int64
	state     fetch.State[[]*visit.Visit]
	filter    visit.Status // StatusUnknown = all
	filterIdx int          // index into filterOrder
	cursor    int
	width     int
	height    int
}

// filterOrder is the cycle order for the status filter.
var filterOrder = append([]visit.Status{visit.StatusUnknown}, visit.ValidStatuses...)

func newVisitsModel(ctx context.Context, api API, userID int64) visitsModel {
	return visitsModel{ctx: ctx, api: api, userID: userID}
}

func (m visitsModel) Init() tea.Cmd {
	return refreshVisits
}

func refreshVisits() tea.Msg {
	return visitsRefreshMsg{}
}

// load starts a fetch of the user's visits.
func (m *visitsModel) load() tea.Cmd {
	if m.userID == 0 || m.api == nil {
		return nil
	}
	gen := m.state.Start()
	ctx, api, userID := m.ctx, m.api, m.userID
	return func() tea.Msg {
		visits, err := api.ListVisitsByClient(ctx, userID)
		return visitsLoadedMsg{gen: gen, visits: visits, err: err}
	}
}

func (m visitsModel) Update(msg tea.Msg) (visitsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case visitsRefreshMsg:
		return m, m.load()

	case visitsLoadedMsg:
		if m.state.Finish(msg.gen, msg.visits, msg.err) {
			if m.cursor >= len(m.visible()) {
				m.cursor = 0
			}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m visitsModel) handleKey(msg tea.KeyMsg) (visitsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m, m.load()
	case "f":
		m.filterIdx = (m.filterIdx + 1) % len(filterOrder)
		m.filter = filterOrder[m.filterIdx]
		m.cursor = 0
	}
	return m, nil
}

// visible returns the loaded visits that pass the status filter.
func (m visitsModel) visible() []*visit.Visit {
	if m.filter == visit.StatusUnknown {
		return m.state.Data
	}
	var out []*visit.Visit
	for _, v := range m.state.Data {
		if v.Status() == m.filter {
			out = append(out, v)
		}
	}
	return out
}

func (m visitsModel) filterLabel() string {
	if m.filter == visit.StatusUnknown {
		return "all"
	}
	return strings.ToLower(m.filter.Label())
}

func (m visitsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("My visits"))
	b.WriteString("  " + metaStyle.Render("filter: ") + dimStyle.Render(m.filterLabel()))
	if m.state.Loading() {
		b.WriteString("  " + dimStyle.Render("loading..."))
	}
	b.WriteString("\n\n")

	if m.userID == 0 {
		b.WriteString(dimStyle.Render("No user configured. Run: hm login --user <id>"))
		return b.String()
	}
	if m.state.Err != nil {
		b.WriteString(errorStyle.Render(client.UserMessage(m.state.Err)))
		b.WriteString("\n" + metaStyle.Render("press r to retry"))
		return b.String()
	}
	if m.state.Status == fetch.Idle {
		return b.String()
	}

	visits := m.visible()
	if len(visits) == 0 && !m.state.Loading() {
		b.WriteString(dimStyle.Render("no visits"))
		return b.String()
	}

	for i, v := range visits {
		status := StatusStyle(v.Status()).Render(fmt.Sprintf("%-11s", v.StatusLabel()))
		when := v.ScheduledAt.Format("Mon 2006-01-02 15:04")
		line := fmt.Sprintf("#%-5d %s  %s  property #%d", v.ID, when, status, v.PropertyID)
		style := normalStyle
		if i == m.cursor {
			style = selectedStyle
		}
		b.WriteString(cursorPrefix(i == m.cursor) + style.Render(line) + "\n")
	}

	return b.String()
}
