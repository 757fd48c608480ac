package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/schedule"
	"github.com/evcraddock/house-market/internal/visit"
)

type formField int

const (
	fieldProperty formField = iota
	fieldDate
	fieldClock
	fieldMessage
	numFields
)

var fieldLabels = [numFields]string{"property", "date", "time", "message"}

var fieldHints = [numFields]string{"ID", "YYYY-MM-DD", "HH:MM", "optional"}

// -- messages --

type visitScheduledMsg struct {
	gen   uint64
	req   schedule.Request
	visit *visit.Visit
	err   error
}

// -- model --

type scheduleModel struct {
	ctx       context.Context
	scheduler *schedule.Scheduler
	fields    [numFields]string
	errs      map[formField]string
	focus     formField
	confirm   *schedule.Request // weekend booking awaiting y/n
	gen       uint64            // bumped on reset; replies from older forms are dropped
	submitted bool
	statusMsg string
	err       error
}

func newScheduleModel(ctx context.Context, s *schedule.Scheduler) scheduleModel {
	return scheduleModel{ctx: ctx, scheduler: s}
}

// reset clears the form, prefilling the property.
func (m scheduleModel) reset(propertyID int64) scheduleModel {
	m.gen++
	m.fields = [numFields]string{}
	if propertyID > 0 {
		m.fields[fieldProperty] = strconv.FormatInt(propertyID, 10)
		m.focus = fieldDate
	} else {
		m.focus = fieldProperty
	}
	m.errs = nil
	m.confirm = nil
	m.submitted = false
	m.statusMsg = ""
	m.err = nil
	return m
}

func (m scheduleModel) Update(msg tea.Msg) (scheduleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case visitScheduledMsg:
		if !m.current(msg) {
			return m, nil
		}
		m.submitted = false
		switch {
		case msg.err == nil:
			m.statusMsg = fmt.Sprintf("visit #%d scheduled", msg.visit.ID)
		case errors.Is(msg.err, schedule.ErrConfirmationRequired):
			req := msg.req
			m.confirm = &req
		default:
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m scheduleModel) handleKey(msg tea.KeyMsg) (scheduleModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""
	m.err = nil

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == numFields-1 {
			return m.submit()
		}
		m.focus++
	case "tab", "down":
		m.focus = (m.focus + 1) % numFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numFields) % numFields
	default:
		m.fields[m.focus] = editRune(m.fields[m.focus], msg.String())
		delete(m.errs, m.focus)
	}
	return m, nil
}

func (m scheduleModel) handleConfirmKey(msg tea.KeyMsg) (scheduleModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		req := *m.confirm
		req.WeekendConfirmed = true
		m.confirm = nil
		m.submitted = true
		return m, m.send(req)
	case "n", "N", "esc":
		m.confirm = nil
		m.statusMsg = schedule.ErrAbandoned.Error()
	}
	return m, nil
}

// parse checks presence and format of every field. errs is empty when the
// form can be submitted.
func (m scheduleModel) parse() (schedule.Request, map[formField]string) {
	var req schedule.Request
	errs := map[formField]string{}

	prop := strings.TrimSpace(m.fields[fieldProperty])
	if prop == "" {
		errs[fieldProperty] = "required"
	} else if id, err := strconv.ParseInt(prop, 10, 64); err != nil || id <= 0 {
		errs[fieldProperty] = "must be a positive number"
	} else {
		req.PropertyID = id
	}

	date := strings.TrimSpace(m.fields[fieldDate])
	if date == "" {
		errs[fieldDate] = "required"
	} else if d, err := localtime.ParseDate(date); err != nil {
		errs[fieldDate] = "use YYYY-MM-DD"
	} else {
		req.Date = d
	}

	clock := strings.TrimSpace(m.fields[fieldClock])
	if clock == "" {
		errs[fieldClock] = "required"
	} else if c, err := localtime.ParseClock(clock); err != nil {
		errs[fieldClock] = "use HH:MM"
	} else {
		req.Clock = c
	}

	req.Message = strings.TrimSpace(m.fields[fieldMessage])
	return req, errs
}

func (m scheduleModel) submit() (scheduleModel, tea.Cmd) {
	req, errs := m.parse()
	m.errs = errs
	if len(errs) > 0 {
		return m, nil
	}

	m.submitted = true
	return m, m.send(req)
}

// current reports whether msg answers a submission from this form.
func (m scheduleModel) current(msg visitScheduledMsg) bool {
	return msg.gen == m.gen
}

func (m scheduleModel) send(req schedule.Request) tea.Cmd {
	ctx, s, gen := m.ctx, m.scheduler, m.gen
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		v, err := s.Submit(ctx, req)
		return visitScheduledMsg{gen: gen, req: req, visit: v, err: err}
	}
}

func (m scheduleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Schedule a visit"))
	b.WriteString("\n\n")

	for i := formField(0); i < numFields; i++ {
		cursor := " "
		style := metaStyle
		value := m.fields[i]
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		if m.fields[i] == "" && i != m.focus {
			value = dimStyle.Render(fieldHints[i])
		}
		fmt.Fprintf(&b, "%s %s: %s", cursor, style.Render(fmt.Sprintf("%-8s", fieldLabels[i])), value)
		if e, ok := m.errs[i]; ok {
			b.WriteString("  " + errorStyle.Render(e))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirm != nil:
		when := schedule.Combine(m.confirm.Date, m.confirm.Clock)
		box := fmt.Sprintf("%s falls on a %s.\nBook it anyway?  %s  %s",
			when.Format("2006-01-02 15:04"), when.Weekday(),
			helpEntry("y", "yes"), helpEntry("n", "no"))
		b.WriteString(modalStyle.Render(box))
	case m.submitted:
		b.WriteString(dimStyle.Render("scheduling..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(errorText(m.err)))
	case m.statusMsg != "":
		b.WriteString(accentStyle.Render(m.statusMsg))
	}

	return b.String()
}

// errorText is the user-facing text for a scheduling error.
func errorText(err error) string {
	var rejected *schedule.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	var apiErr *client.Error
	if errors.Is(err, schedule.ErrScheduleFailed) && errors.As(err, &apiErr) {
		return schedule.ErrScheduleFailed.Error() + ": " + apiErr.Message
	}
	return client.UserMessage(err)
}
