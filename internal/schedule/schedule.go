// Package schedule validates and submits visit bookings.
//
// A candidate time is rejected when it is not in the future or falls inside
// the minimum lead time. Weekend candidates need an explicit confirmation
// before they are sent.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// MinLeadTime is how far ahead a visit must be booked.
const MinLeadTime = 2 * time.Hour

// Rejection reasons shown to the user.
const (
	ReasonPast     = "the visit must be scheduled in the future"
	ReasonLeadTime = "visits must be booked at least 2 hours in advance"
)

// Decision is the outcome of checking a candidate time.
type Decision int

const (
	Proceed Decision = iota
	NeedsConfirmation
	Rejected
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case NeedsConfirmation:
		return "needs confirmation"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Result is a Decision plus the reason for a rejection.
type Result struct {
	Decision Decision
	Reason   string
}

var (
	// ErrAbandoned is returned when the user declines a weekend booking.
	ErrAbandoned = errors.New("visit not scheduled")
	// ErrConfirmationRequired is returned for a weekend booking when no
	// confirmer is available. Re-submit with WeekendConfirmed set.
	ErrConfirmationRequired = errors.New("the selected date falls on a weekend, confirm to continue")
	// ErrScheduleFailed wraps a failed create call.
	ErrScheduleFailed = errors.New("could not schedule the visit")
	// ErrRescheduleFailed wraps a failed update call.
	ErrRescheduleFailed = errors.New("could not reschedule the visit")
)

// RejectedError reports a candidate that broke a booking rule.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// Combine takes the calendar date from date and the time of day from clock.
// The result is in date's location, truncated to the second.
func Combine(date, clock time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Check applies the booking rules to candidate at time now.
func Check(candidate, now time.Time, weekendConfirmed bool) Result {
	if !candidate.After(now) {
		return Result{Decision: Rejected, Reason: ReasonPast}
	}
	if candidate.Before(now.Add(MinLeadTime)) {
		return Result{Decision: Rejected, Reason: ReasonLeadTime}
	}
	if IsWeekend(candidate) && !weekendConfirmed {
		return Result{Decision: NeedsConfirmation}
	}
	return Result{Decision: Proceed}
}
