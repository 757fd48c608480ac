package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/validate"
	"github.com/evcraddock/house-market/internal/visit"
)

type createCall struct {
	propertyID  int64
	scheduledAt string
	message     string
}

type fakeVisits struct {
	creates []createCall
	updates []visit.UpdateRequest
	err     error
}

func (f *fakeVisits) CreateVisit(ctx context.Context, propertyID int64, scheduledAt, message string) (*visit.Visit, error) {
	f.creates = append(f.creates, createCall{propertyID, scheduledAt, message})
	if f.err != nil {
		return nil, f.err
	}
	ts, _ := localtime.Parse(scheduledAt)
	return &visit.Visit{ID: 99, PropertyID: propertyID, ScheduledAt: localtime.New(ts), RawStatus: "PENDIENTE"}, nil
}

func (f *fakeVisits) UpdateVisit(ctx context.Context, id int64, req visit.UpdateRequest) (*visit.Visit, error) {
	f.updates = append(f.updates, req)
	if f.err != nil {
		return nil, f.err
	}
	ts, _ := localtime.Parse(req.ScheduledAt)
	return &visit.Visit{ID: id, PropertyID: req.PropertyID, ScheduledAt: localtime.New(ts), RawStatus: string(req.Status)}, nil
}

func fixedNow() time.Time { return monday }

func request(day, hour, minute int) Request {
	return Request{
		PropertyID: 12,
		Date:       time.Date(2024, 6, day, 0, 0, 0, 0, time.Local),
		Clock:      time.Date(0, 1, 1, hour, minute, 0, 0, time.Local),
		Message:    "Quisiera ver el departamento",
	}
}

func TestSubmitRejectsWithinLeadTime(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	_, err := s.Submit(context.Background(), request(10, 11, 30))
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want *RejectedError", err)
	}
	if rejected.Reason != ReasonLeadTime {
		t.Errorf("reason = %q", rejected.Reason)
	}
	if len(fv.creates) != 0 {
		t.Errorf("creates = %d, want 0", len(fv.creates))
	}
}

func TestSubmitRejectsPast(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	_, err := s.Submit(context.Background(), request(9, 15, 0))
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Reason != ReasonPast {
		t.Fatalf("err = %v, want past rejection", err)
	}
	if len(fv.creates) != 0 {
		t.Error("no create call expected")
	}
}

func TestSubmitWeekdayCreatesOnce(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	v, err := s.Submit(context.Background(), request(11, 9, 0))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v.ID != 99 {
		t.Errorf("id = %d", v.ID)
	}
	if len(fv.creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(fv.creates))
	}
	want := createCall{12, "2024-06-11T09:00:00", "Quisiera ver el departamento"}
	if fv.creates[0] != want {
		t.Errorf("create = %+v, want %+v", fv.creates[0], want)
	}
}

func TestSubmitWeekendDeclined(t *testing.T) {
	fv := &fakeVisits{}
	asked := 0
	confirm := ConfirmFunc(func(ctx context.Context, candidate time.Time) (bool, error) {
		asked++
		if candidate.Weekday() != time.Saturday {
			t.Errorf("prompted for %s", candidate.Weekday())
		}
		return false, nil
	})
	s := New(fv, WithClock(fixedNow), WithConfirmer(confirm))

	_, err := s.Submit(context.Background(), request(15, 9, 0))
	if !errors.Is(err, ErrAbandoned) {
		t.Fatalf("err = %v, want ErrAbandoned", err)
	}
	if asked != 1 {
		t.Errorf("asked = %d, want 1", asked)
	}
	if len(fv.creates) != 0 {
		t.Errorf("creates = %d, want 0", len(fv.creates))
	}
}

func TestSubmitWeekendAccepted(t *testing.T) {
	fv := &fakeVisits{}
	asked := 0
	confirm := ConfirmFunc(func(ctx context.Context, candidate time.Time) (bool, error) {
		asked++
		return true, nil
	})
	s := New(fv, WithClock(fixedNow), WithConfirmer(confirm))

	if _, err := s.Submit(context.Background(), request(15, 9, 0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if asked != 1 {
		t.Errorf("asked = %d, want 1", asked)
	}
	if len(fv.creates) != 1 || fv.creates[0].scheduledAt != "2024-06-15T09:00:00" {
		t.Errorf("creates = %+v", fv.creates)
	}
}

func TestSubmitWeekendWithoutConfirmer(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	req := request(16, 10, 0)
	if _, err := s.Submit(context.Background(), req); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if len(fv.creates) != 0 {
		t.Fatal("no create call expected before confirmation")
	}

	req.WeekendConfirmed = true
	if _, err := s.Submit(context.Background(), req); err != nil {
		t.Fatalf("confirmed submit: %v", err)
	}
	if len(fv.creates) != 1 {
		t.Errorf("creates = %d, want 1", len(fv.creates))
	}
}

func TestSubmitConfirmerError(t *testing.T) {
	fv := &fakeVisits{}
	boom := errors.New("terminal closed")
	s := New(fv, WithClock(fixedNow), WithConfirmer(ConfirmFunc(func(context.Context, time.Time) (bool, error) {
		return false, boom
	})))

	if _, err := s.Submit(context.Background(), request(15, 9, 0)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestSubmitBackendFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fv := &fakeVisits{err: cause}
	s := New(fv, WithClock(fixedNow))

	_, err := s.Submit(context.Background(), request(11, 9, 0))
	if !errors.Is(err, ErrScheduleFailed) {
		t.Errorf("err = %v, want ErrScheduleFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the cause", err)
	}
	if len(fv.creates) != 1 {
		t.Errorf("creates = %d, want exactly 1 (no retry)", len(fv.creates))
	}
}

func TestSubmitInvalidProperty(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	req := request(11, 9, 0)
	req.PropertyID = 0
	_, err := s.Submit(context.Background(), req)
	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *validate.ValidationError", err)
	}
	if verr.Field("propiedadId") == "" {
		t.Errorf("errors = %v", verr.Errors)
	}
	if len(fv.creates) != 0 {
		t.Error("no create call expected")
	}
}

func TestReschedule(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))
	v := &visit.Visit{ID: 4, PropertyID: 12, ScheduledAt: localtime.New(at(11, 9, 0)), RawStatus: "CONFIRMADA", Comment: "llevar DNI"}

	updated, err := s.Reschedule(context.Background(), v, at(12, 0, 0), at(12, 16, 0), false)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if len(fv.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(fv.updates))
	}
	got := fv.updates[0]
	if got.ScheduledAt != "2024-06-12T16:00:00" || got.Status != visit.StatusRescheduled || got.Comment != "llevar DNI" {
		t.Errorf("update = %+v", got)
	}
	if updated.Status() != visit.StatusRescheduled {
		t.Errorf("status = %s", updated.Status())
	}
}

func TestRescheduleRules(t *testing.T) {
	fv := &fakeVisits{}
	s := New(fv, WithClock(fixedNow))

	done := &visit.Visit{ID: 1, PropertyID: 12, RawStatus: "COMPLETADA"}
	if _, err := s.Reschedule(context.Background(), done, at(12, 0, 0), at(12, 16, 0), false); err == nil {
		t.Error("expected error rescheduling a completed visit")
	}

	pending := &visit.Visit{ID: 2, PropertyID: 12, RawStatus: "pendiente"}
	_, err := s.Reschedule(context.Background(), pending, at(10, 0, 0), at(10, 11, 0), false)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Errorf("err = %v, want *RejectedError", err)
	}

	if _, err := s.Reschedule(context.Background(), pending, at(16, 0, 0), at(16, 11, 0), false); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("err = %v, want ErrConfirmationRequired", err)
	}
	if len(fv.updates) != 0 {
		t.Errorf("updates = %d, want 0", len(fv.updates))
	}
}
