package visit

import "fmt"

// Action is a user operation on an existing reservation.
type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"
	ActionComplete   Action = "complete"
	ActionReschedule Action = "reschedule"
	ActionDelete     Action = "delete"
)

// allowed lists the actions offered for each status. Terminal statuses
// only allow deletion.
var allowed = map[Status][]Action{
	StatusPending:     {ActionConfirm, ActionCancel, ActionReschedule, ActionDelete},
	StatusRescheduled: {ActionConfirm, ActionCancel, ActionReschedule, ActionDelete},
	StatusConfirmed:   {ActionComplete, ActionCancel, ActionReschedule, ActionDelete},
	StatusCompleted:   {ActionDelete},
	StatusCancelled:   {ActionDelete},
}

// Actions returns the actions available from status s.
// Unknown statuses allow everything; the backend has the final word.
func (s Status) Actions() []Action {
	if a, ok := allowed[s]; ok {
		return a
	}
	return []Action{ActionConfirm, ActionCancel, ActionComplete, ActionReschedule, ActionDelete}
}

// Can reports whether action a is offered from status s.
func (s Status) Can(a Action) bool {
	for _, x := range s.Actions() {
		if x == a {
			return true
		}
	}
	return false
}

// Target returns the status an action moves a reservation into.
// Delete has no target.
func (a Action) Target() Status {
	switch a {
	case ActionConfirm:
		return StatusConfirmed
	case ActionCancel:
		return StatusCancelled
	case ActionComplete:
		return StatusCompleted
	case ActionReschedule:
		return StatusRescheduled
	default:
		return StatusUnknown
	}
}

// CheckAction returns an error when action a is not offered for v.
func CheckAction(v *Visit, a Action) error {
	s := v.Status()
	if !s.Can(a) {
		return fmt.Errorf("cannot %s a visit that is %s", a, s.Label())
	}
	return nil
}
