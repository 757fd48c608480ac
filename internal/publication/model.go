// Package publication provides the marketplace listing model.
package publication

import (
	"fmt"
	"strings"

	"github.com/evcraddock/house-market/internal/localtime"
)

// State is a publication's lifecycle state.
type State string

const (
	StateActive   State = "ACTIVA"
	StatePaused   State = "PAUSADA"
	StateFinished State = "FINALIZADA"
	StateDraft    State = "BORRADOR"
)

// ValidStates is the set of known states.
var ValidStates = []State{StateActive, StatePaused, StateFinished, StateDraft}

// ParseState accepts the backend value or an English alias.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activa", "active":
		return StateActive, nil
	case "pausada", "paused":
		return StatePaused, nil
	case "finalizada", "finished":
		return StateFinished, nil
	case "borrador", "draft":
		return StateDraft, nil
	}
	return "", fmt.Errorf("invalid publication state %q (use active, paused, finished or draft)", s)
}

// Label returns a human-readable label for the state.
func (s State) Label() string {
	switch s {
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	case StateDraft:
		return "Draft"
	default:
		return string(s)
	}
}

// Publication is a listing exposing a property for sale or rental.
type Publication struct {
	ID          int64          `json:"id"`
	Title       string         `json:"titulo"`
	Description string         `json:"descripcion,omitempty"`
	State       State          `json:"estado"`
	StartDate   localtime.Date `json:"fechaInicio"`
	EndDate     localtime.Date `json:"fechaFin"`
	CreatedAt   localtime.Time `json:"fechaCreacion"`
	PropertyID  *int64         `json:"propiedadId,omitempty"`
	Price       *float64       `json:"precio,omitempty"`
}

// Query selects one page of publications.
type Query struct {
	State State `validate:"omitempty,publication_state"`
	Page  int   `validate:"gte=0"`
	Size  int   `validate:"gte=1,lte=100"`
}

// DefaultPageSize is the page size used when none is given.
const DefaultPageSize = 20
