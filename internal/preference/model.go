// Package preference provides the notification preference model and its
// editable draft.
package preference

import (
	"fmt"
	"strings"
)

// SearchMode selects how new listings are matched.
type SearchMode string

const (
	ModeLocation  SearchMode = "UBICACION"
	ModeProximity SearchMode = "PROXIMIDAD"
	ModeBoth      SearchMode = "AMBOS"
)

// TransactionType is the kind of deal a preference follows.
type TransactionType string

const (
	TypeSale   TransactionType = "VENTA"
	TypeRental TransactionType = "ALQUILER"
)

// ParseSearchMode accepts the backend value or an English alias.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ubicacion", "location":
		return ModeLocation, nil
	case "proximidad", "proximity":
		return ModeProximity, nil
	case "ambos", "both":
		return ModeBoth, nil
	}
	return "", fmt.Errorf("invalid search mode %q (use location, proximity or both)", s)
}

// ParseTransactionType accepts the backend value or an English alias.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "venta", "sale":
		return TypeSale, nil
	case "alquiler", "rental", "rent":
		return TypeRental, nil
	}
	return "", fmt.Errorf("invalid transaction type %q (use sale or rental)", s)
}

// UsesLocation reports whether region/district matching applies.
func (m SearchMode) UsesLocation() bool {
	return m == ModeLocation || m == ModeBoth
}

// UsesProximity reports whether radius matching applies.
func (m SearchMode) UsesProximity() bool {
	return m == ModeProximity || m == ModeBoth
}

// Preference is a saved filter for new-listing alerts.
type Preference struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"usuarioId"`
	Region          *string         `json:"region,omitempty"`
	District        *string         `json:"distrito,omitempty"`
	RadiusKm        *float64        `json:"radioKm,omitempty"`
	Latitude        *float64        `json:"latitud,omitempty"`
	Longitude       *float64        `json:"longitud,omitempty"`
	SearchMode      SearchMode      `json:"modoBusqueda"`
	TransactionType TransactionType `json:"tipoTransaccion"`
	Active          bool            `json:"activo"`
}

// Draft is the form buffer for creating or editing a preference.
// Cross-field rules (which fields each search mode needs) are checked by
// the validate package.
type Draft struct {
	UserID          int64           `json:"usuarioId" validate:"required,gt=0"`
	Region          *string         `json:"region,omitempty" validate:"omitempty,max=100"`
	District        *string         `json:"distrito,omitempty" validate:"omitempty,max=100"`
	RadiusKm        *float64        `json:"radioKm,omitempty" validate:"omitempty,gt=0,lte=200"`
	Latitude        *float64        `json:"latitud,omitempty" validate:"omitempty,latitude"`
	Longitude       *float64        `json:"longitud,omitempty" validate:"omitempty,longitude"`
	SearchMode      SearchMode      `json:"modoBusqueda" validate:"required,oneof=UBICACION PROXIMIDAD AMBOS"`
	TransactionType TransactionType `json:"tipoTransaccion" validate:"required,oneof=VENTA ALQUILER"`
	Active          bool            `json:"activo"`
}

// DraftFrom copies p into a new draft.
func DraftFrom(p *Preference) Draft {
	return Draft{
		UserID:          p.UserID,
		Region:          copyString(p.Region),
		District:        copyString(p.District),
		RadiusKm:        copyFloat(p.RadiusKm),
		Latitude:        copyFloat(p.Latitude),
		Longitude:       copyFloat(p.Longitude),
		SearchMode:      p.SearchMode,
		TransactionType: p.TransactionType,
		Active:          p.Active,
	}
}

// Edit holds optional field changes; nil fields are left untouched.
// An empty string clears Region or District.
type Edit struct {
	Region          *string
	District        *string
	RadiusKm        *float64
	Latitude        *float64
	Longitude       *float64
	SearchMode      *SearchMode
	TransactionType *TransactionType
	Active          *bool
}

// Apply returns a copy of d with e's changes.
func (d Draft) Apply(e Edit) Draft {
	if e.Region != nil {
		d.Region = emptyToNil(*e.Region)
	}
	if e.District != nil {
		d.District = emptyToNil(*e.District)
	}
	if e.RadiusKm != nil {
		d.RadiusKm = copyFloat(e.RadiusKm)
	}
	if e.Latitude != nil {
		d.Latitude = copyFloat(e.Latitude)
	}
	if e.Longitude != nil {
		d.Longitude = copyFloat(e.Longitude)
	}
	if e.SearchMode != nil {
		d.SearchMode = *e.SearchMode
	}
	if e.TransactionType != nil {
		d.TransactionType = *e.TransactionType
	}
	if e.Active != nil {
		d.Active = *e.Active
	}
	return d
}

// Changes lists human-readable differences between p and d.
func Changes(p *Preference, d Draft) []string {
	var out []string
	add := func(field, from, to string) {
		if from != to {
			out = append(out, fmt.Sprintf("%s: %s -> %s", field, from, to))
		}
	}
	add("region", FormatString(p.Region), FormatString(d.Region))
	add("district", FormatString(p.District), FormatString(d.District))
	add("radius_km", FormatFloat(p.RadiusKm), FormatFloat(d.RadiusKm))
	add("latitude", FormatFloat(p.Latitude), FormatFloat(d.Latitude))
	add("longitude", FormatFloat(p.Longitude), FormatFloat(d.Longitude))
	add("search_mode", string(p.SearchMode), string(d.SearchMode))
	add("transaction_type", string(p.TransactionType), string(d.TransactionType))
	add("active", fmt.Sprint(p.Active), fmt.Sprint(d.Active))
	return out
}

// FormatString renders an optional string, "-" when unset.
func FormatString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// FormatFloat renders an optional number, "-" when unset.
func FormatFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *f)
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
