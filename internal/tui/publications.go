package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/fetch"
	"github.com/evcraddock/house-market/internal/publication"
)

// pageSize is the number of publications fetched per call.
const pageSize = publication.DefaultPageSize

// loadAhead is how close to the end of the list the cursor gets before the
// next page is requested.
const loadAhead = 3

// -- messages --

// pubsMoreMsg asks the publications screen for its next page.
type pubsMoreMsg struct{}

type pubsPageMsg struct {
	gen   uint64
	items []*publication.Publication
	last  bool
	err   error
}

// scheduleForMsg opens the booking form for a property.
type scheduleForMsg struct {
	propertyID int64
}

// -- model --

type pubsModel struct {
	ctx    context.Context
	api    API
	pager  fetch.Pager[*publication.Publication]
	cursor int
	width  int
	height int
}

func newPubsModel(ctx context.Context, api API) pubsModel {
	return pubsModel{ctx: ctx, api: api, pager: fetch.NewPager[*publication.Publication](pageSize)}
}

func (m pubsModel) Init() tea.Cmd {
	if len(m.pager.Items) > 0 {
		return nil
	}
	return morePubs
}

func morePubs() tea.Msg {
	return pubsMoreMsg{}
}

// loadNext claims the next page. It returns nil while a page is loading or
// after the last page.
func (m *pubsModel) loadNext() tea.Cmd {
	if m.api == nil {
		return nil
	}
	page, size, gen, ok := m.pager.Begin()
	if !ok {
		return nil
	}
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		p, err := api.ListPublications(ctx, page, size)
		if err != nil {
			return pubsPageMsg{gen: gen, err: err}
		}
		return pubsPageMsg{gen: gen, items: p.Content, last: p.Last}
	}
}

func (m pubsModel) Update(msg tea.Msg) (pubsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pubsMoreMsg:
		return m, m.loadNext()

	case pubsPageMsg:
		m.pager.Complete(msg.gen, msg.items, msg.last, msg.err)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m pubsModel) handleKey(msg tea.KeyMsg) (pubsModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.pager.Items)-1 {
			m.cursor++
		}
		if m.cursor >= len(m.pager.Items)-loadAhead {
			return m, m.loadNext()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		m.pager.Reset()
		m.cursor = 0
		return m, m.loadNext()
	case "enter", "s":
		if p := m.selected(); p != nil && p.PropertyID != nil {
			id := *p.PropertyID
			return m, func() tea.Msg { return scheduleForMsg{propertyID: id} }
		}
	}
	return m, nil
}

func (m pubsModel) selected() *publication.Publication {
	if m.cursor < 0 || m.cursor >= len(m.pager.Items) {
		return nil
	}
	return m.pager.Items[m.cursor]
}

func (m pubsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Publications"))
	b.WriteString("  " + metaStyle.Render(fmt.Sprintf("%d loaded", len(m.pager.Items))))
	b.WriteString("\n\n")

	if len(m.pager.Items) == 0 && m.pager.Done() {
		b.WriteString(dimStyle.Render("no publications"))
		return b.String()
	}

	titleWidth := m.width - 40
	if titleWidth < 20 {
		titleWidth = 20
	}
	for i, p := range m.pager.Items {
		price := "-"
		if p.Price != nil {
			price = fmt.Sprintf("%.0f", *p.Price)
		}
		state := StateStyle(p.State).Render(fmt.Sprintf("%-9s", p.State.Label()))
		line := fmt.Sprintf("#%-5d %s  %12s  %s", p.ID, state, price, truncStr(p.Title, titleWidth))
		style := normalStyle
		if i == m.cursor {
			style = selectedStyle
		}
		b.WriteString(cursorPrefix(i == m.cursor) + style.Render(line) + "\n")
	}

	switch {
	case m.pager.Loading():
		b.WriteString(dimStyle.Render("loading more..."))
	case m.pager.Err != nil:
		b.WriteString(errorStyle.Render(client.UserMessage(m.pager.Err)) + "  " + metaStyle.Render("j to retry"))
	case m.pager.Done():
		b.WriteString(metaStyle.Render("end of list"))
	}

	return b.String()
}
