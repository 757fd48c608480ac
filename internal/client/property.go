package client

import (
	"context"

	"github.com/evcraddock/house-market/internal/property"
)

// GetProperty returns a property.
func (c *Client) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	var p property.Property
	if err := c.get(ctx, idPath("/api/propiedades", id), &p); err != nil {
		return nil, wrap("client.GetProperty", "could not load the property", err)
	}
	return &p, nil
}
