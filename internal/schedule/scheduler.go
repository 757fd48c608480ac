package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/validate"
	"github.com/evcraddock/house-market/internal/visit"
)

// Visits is the backend the scheduler books against.
type Visits interface {
	CreateVisit(ctx context.Context, propertyID int64, scheduledAt, message string) (*visit.Visit, error)
	UpdateVisit(ctx context.Context, id int64, req visit.UpdateRequest) (*visit.Visit, error)
}

// Confirmer asks the user to accept a weekend booking.
type Confirmer interface {
	ConfirmWeekend(ctx context.Context, candidate time.Time) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, candidate time.Time) (bool, error)

// ConfirmWeekend implements Confirmer.
func (f ConfirmFunc) ConfirmWeekend(ctx context.Context, candidate time.Time) (bool, error) {
	return f(ctx, candidate)
}

// Request is a booking form submission.
type Request struct {
	PropertyID       int64
	Date             time.Time
	Clock            time.Time
	Message          string
	WeekendConfirmed bool
}

// Scheduler runs the booking workflow.
type Scheduler struct {
	visits  Visits
	confirm Confirmer
	now     func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithConfirmer sets the weekend confirmation prompt.
func WithConfirmer(c Confirmer) Option {
	return func(s *Scheduler) { s.confirm = c }
}

// WithClock overrides the current time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a Scheduler booking through visits.
func New(visits Visits, opts ...Option) *Scheduler {
	s := &Scheduler{visits: visits, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates req and, when it passes, makes exactly one create call.
// Rejections and declined weekend prompts never reach the network.
func (s *Scheduler) Submit(ctx context.Context, req Request) (*visit.Visit, error) {
	candidate := Combine(req.Date, req.Clock)
	if err := s.decide(ctx, candidate, req.WeekendConfirmed); err != nil {
		return nil, err
	}

	body := visit.CreateRequest{
		PropertyID:  req.PropertyID,
		ScheduledAt: localtime.Format(candidate),
		Message:     req.Message,
	}
	if err := validate.Struct(body); err != nil {
		return nil, err
	}

	v, err := s.visits.CreateVisit(ctx, body.PropertyID, body.ScheduledAt, body.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScheduleFailed, err)
	}
	slog.Info("visit scheduled", "visit_id", v.ID, "property_id", body.PropertyID, "at", body.ScheduledAt)
	return v, nil
}

// Reschedule moves v to a new time under the same rules and marks it
// rescheduled.
func (s *Scheduler) Reschedule(ctx context.Context, v *visit.Visit, date, clock time.Time, weekendConfirmed bool) (*visit.Visit, error) {
	if err := visit.CheckAction(v, visit.ActionReschedule); err != nil {
		return nil, err
	}

	candidate := Combine(date, clock)
	if err := s.decide(ctx, candidate, weekendConfirmed); err != nil {
		return nil, err
	}

	req := visit.UpdateFrom(v)
	req.ScheduledAt = localtime.Format(candidate)
	req.Status = visit.ActionReschedule.Target()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	updated, err := s.visits.UpdateVisit(ctx, v.ID, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRescheduleFailed, err)
	}
	slog.Info("visit rescheduled", "visit_id", v.ID, "at", req.ScheduledAt)
	return updated, nil
}

// decide returns nil when candidate may be sent.
func (s *Scheduler) decide(ctx context.Context, candidate time.Time, weekendConfirmed bool) error {
	res := Check(candidate, s.now(), weekendConfirmed)
	switch res.Decision {
	case Rejected:
		return &RejectedError{Reason: res.Reason}
	case NeedsConfirmation:
		if s.confirm == nil {
			return ErrConfirmationRequired
		}
		ok, err := s.confirm.ConfirmWeekend(ctx, candidate)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAbandoned
		}
	}
	return nil
}
