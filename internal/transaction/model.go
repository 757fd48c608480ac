// Package transaction provides the sale/rental transaction model.
package transaction

import (
	"fmt"
	"strings"

	"github.com/evcraddock/house-market/internal/localtime"
)

// Type is the kind of deal.
type Type string

const (
	TypeSale   Type = "VENTA"
	TypeRental Type = "ALQUILER"
)

// ParseType accepts the backend value or an English alias.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "venta", "sale":
		return TypeSale, nil
	case "alquiler", "rental", "rent":
		return TypeRental, nil
	}
	return "", fmt.Errorf("invalid transaction type %q (use sale or rental)", s)
}

// Transaction is a sale or rental agreement on a property.
type Transaction struct {
	ID         int64          `json:"id"`
	PropertyID int64          `json:"propiedadId"`
	ClientID   int64          `json:"clienteId"`
	AgentID    int64          `json:"agenteId"`
	Type       Type           `json:"tipo"`
	Amount     float64        `json:"monto"`
	Date       localtime.Time `json:"fecha"`
	Status     string         `json:"estado"`
	Notes      string         `json:"notas,omitempty"`
}

// Request is the body of POST and PUT /api/transacciones.
type Request struct {
	PropertyID int64   `json:"propiedadId" validate:"required,gt=0"`
	ClientID   int64   `json:"clienteId" validate:"required,gt=0"`
	AgentID    int64   `json:"agenteId" validate:"required,gt=0"`
	Type       Type    `json:"tipo" validate:"required,oneof=VENTA ALQUILER"`
	Amount     float64 `json:"monto" validate:"gt=0"`
	Date       string  `json:"fecha" validate:"required,datetime=2006-01-02T15:04:05"`
	Status     string  `json:"estado,omitempty" validate:"max=40"`
	Notes      string  `json:"notas,omitempty" validate:"max=1000"`
}

// RequestFrom builds a request carrying t's current fields.
func RequestFrom(t *Transaction) Request {
	return Request{
		PropertyID: t.PropertyID,
		ClientID:   t.ClientID,
		AgentID:    t.AgentID,
		Type:       t.Type,
		Amount:     t.Amount,
		Date:       t.Date.String(),
		Status:     t.Status,
		Notes:      t.Notes,
	}
}
