// Package visit provides the visit/reservation domain model.
package visit

import (
	"strings"

	"github.com/evcraddock/house-market/internal/localtime"
)

// Status is where a reservation is in its lifecycle.
type Status string

const (
	StatusUnknown     Status = ""
	StatusPending     Status = "PENDIENTE"
	StatusConfirmed   Status = "CONFIRMADA"
	StatusCompleted   Status = "COMPLETADA"
	StatusCancelled   Status = "CANCELADA"
	StatusRescheduled Status = "REPROGRAMADA"
)

// ValidStatuses is the set of known statuses.
var ValidStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled}

// statusLabels maps every accepted spelling, lowercased, to its status.
var statusLabels = map[string]Status{
	"pendiente":    StatusPending,
	"pending":      StatusPending,
	"confirmada":   StatusConfirmed,
	"confirmado":   StatusConfirmed,
	"confirmed":    StatusConfirmed,
	"completada":   StatusCompleted,
	"completado":   StatusCompleted,
	"completed":    StatusCompleted,
	"cancelada":    StatusCancelled,
	"cancelado":    StatusCancelled,
	"cancelled":    StatusCancelled,
	"canceled":     StatusCancelled,
	"reprogramada": StatusRescheduled,
	"reprogramado": StatusRescheduled,
	"rescheduled":  StatusRescheduled,
}

// ParseStatus matches free text against the known labels, ignoring case
// and surrounding whitespace. Unrecognised text yields StatusUnknown.
func ParseStatus(s string) Status {
	return statusLabels[strings.ToLower(strings.TrimSpace(s))]
}

// IsValid checks if a status is recognized.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusRescheduled:
		return "Rescheduled"
	default:
		return "Unknown"
	}
}

// Visit is a scheduled viewing of a property.
type Visit struct {
	ID          int64          `json:"id"`
	PropertyID  int64          `json:"propiedadId"`
	ClientID    int64          `json:"clienteId,omitempty"`
	AgentID     int64          `json:"agenteId,omitempty"`
	ScheduledAt localtime.Time `json:"fechaHora"`
	RawStatus   string         `json:"estado"`
	Comment     string         `json:"comentario,omitempty"`
}

// Status parses the backend's free-text status.
func (v *Visit) Status() Status {
	return ParseStatus(v.RawStatus)
}

// StatusLabel returns the display label, falling back to the raw text
// when the status is not one of the known labels.
func (v *Visit) StatusLabel() string {
	if s := v.Status(); s != StatusUnknown {
		return s.Label()
	}
	if v.RawStatus == "" {
		return "-"
	}
	return v.RawStatus
}

// CreateRequest is the body of POST /api/visitas.
type CreateRequest struct {
	PropertyID  int64  `json:"propiedadId" validate:"required,gt=0"`
	ScheduledAt string `json:"fechaHora" validate:"required,datetime=2006-01-02T15:04:05"`
	Message     string `json:"mensaje,omitempty" validate:"max=500"`
}

// UpdateRequest is the body of PUT /api/visitas/{id}.
type UpdateRequest struct {
	PropertyID  int64  `json:"propiedadId" validate:"required,gt=0"`
	ClientID    int64  `json:"clienteId,omitempty" validate:"gte=0"`
	AgentID     int64  `json:"agenteId,omitempty" validate:"gte=0"`
	ScheduledAt string `json:"fechaHora" validate:"required,datetime=2006-01-02T15:04:05"`
	Status      Status `json:"estado" validate:"required,visit_status"`
	Comment     string `json:"comentario,omitempty" validate:"max=500"`
}

// UpdateFrom builds an update request carrying v's current fields.
func UpdateFrom(v *Visit) UpdateRequest {
	status := v.Status()
	if status == StatusUnknown {
		status = StatusPending
	}
	return UpdateRequest{
		PropertyID:  v.PropertyID,
		ClientID:    v.ClientID,
		AgentID:     v.AgentID,
		ScheduledAt: v.ScheduledAt.String(),
		Status:      status,
		Comment:     v.Comment,
	}
}
