package tui

import (
	"context"
	"sync"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/visit"
)

type fakeAPI struct {
	mu      sync.Mutex
	visits  []*visit.Visit
	pages   [][]*publication.Publication
	err     error
	created []string
	pageReq []int
}

func (f *fakeAPI) CreateVisit(ctx context.Context, propertyID int64, scheduledAt, message string) (*visit.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, scheduledAt)
	at, _ := localtime.Parse(scheduledAt)
	return &visit.Visit{ID: 99, PropertyID: propertyID, ScheduledAt: localtime.New(at), RawStatus: "PENDIENTE"}, nil
}

func (f *fakeAPI) UpdateVisit(ctx context.Context, id int64, req visit.UpdateRequest) (*visit.Visit, error) {
	return &visit.Visit{ID: id, PropertyID: req.PropertyID, RawStatus: string(req.Status)}, nil
}

func (f *fakeAPI) ListVisitsByClient(ctx context.Context, clientID int64) ([]*visit.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visits, f.err
}

func (f *fakeAPI) ListPublications(ctx context.Context, page, size int) (*client.Page[*publication.Publication], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageReq = append(f.pageReq, page)
	if f.err != nil {
		return nil, f.err
	}
	p := &client.Page[*publication.Publication]{Number: page, Size: size, TotalPages: len(f.pages)}
	if page < len(f.pages) {
		p.Content = f.pages[page]
	}
	p.Last = page >= len(f.pages)-1
	return p, nil
}

func makeVisit(id int64, status string) *visit.Visit {
	at, _ := localtime.Parse("2024-06-11T09:00:00")
	return &visit.Visit{ID: id, PropertyID: 12, ScheduledAt: localtime.New(at), RawStatus: status}
}

func makePubs(start, n int) []*publication.Publication {
	out := make([]*publication.Publication, 0, n)
	for i := 0; i < n; i++ {
		id := int64(start + i)
		prop := id * 10
		out = append(out, &publication.Publication{
			ID:         id,
			Title:      "Listing",
			State:      publication.StateActive,
			PropertyID: &prop,
		})
	}
	return out
}
