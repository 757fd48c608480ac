package tui

import (
	"context"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/schedule"
	"github.com/evcraddock/house-market/internal/visit"
)

// API is the part of the backend client the screens use.
// *client.Client satisfies it.
type API interface {
	schedule.Visits
	ListVisitsByClient(ctx context.Context, clientID int64) ([]*visit.Visit, error)
	ListPublications(ctx context.Context, page, size int) (*client.Page[*publication.Publication], error)
}
