// Package property provides the read-only property model.
package property

import "strings"

// Property is a listing's underlying real-estate asset.
type Property struct {
	ID          int64    `json:"id"`
	Title       string   `json:"titulo"`
	Address     string   `json:"direccion"`
	District    string   `json:"distrito,omitempty"`
	Type        string   `json:"tipo,omitempty"`
	Price       *float64 `json:"precio,omitempty"`
	Bedrooms    *int64   `json:"habitaciones,omitempty"`
	Bathrooms   *int64   `json:"banos,omitempty"`
	AreaM2      *float64 `json:"area,omitempty"`
	Images      []string `json:"imagenes,omitempty"`
	Description string   `json:"descripcion,omitempty"`
}

// PrimaryImage returns the first usable image URL, or "".
func (p *Property) PrimaryImage() string {
	for _, img := range p.Images {
		if s := strings.TrimSpace(img); s != "" {
			return s
		}
	}
	return ""
}

// DisplayName returns the title, falling back to the address.
func (p *Property) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Address != "" {
		return p.Address
	}
	return "Property"
}
