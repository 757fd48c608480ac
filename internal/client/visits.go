package client

import (
	"context"
	"net/url"
	"time"

	"github.com/evcraddock/house-market/internal/localtime"
	"github.com/evcraddock/house-market/internal/visit"
)

const visitsPath = "/api/visitas"

// CreateVisit books a visit. scheduledAt is a backend timestamp.
func (c *Client) CreateVisit(ctx context.Context, propertyID int64, scheduledAt, message string) (*visit.Visit, error) {
	body := visit.CreateRequest{PropertyID: propertyID, ScheduledAt: scheduledAt, Message: message}
	var v visit.Visit
	if err := c.post(ctx, visitsPath, body, &v); err != nil {
		return nil, wrap("client.CreateVisit", "could not schedule the visit", err)
	}
	return &v, nil
}

// GetVisit returns one visit.
func (c *Client) GetVisit(ctx context.Context, id int64) (*visit.Visit, error) {
	var v visit.Visit
	if err := c.get(ctx, idPath(visitsPath, id), &v); err != nil {
		return nil, wrap("client.GetVisit", "could not load the visit", err)
	}
	return &v, nil
}

// UpdateVisit replaces a visit.
func (c *Client) UpdateVisit(ctx context.Context, id int64, req visit.UpdateRequest) (*visit.Visit, error) {
	var v visit.Visit
	if err := c.put(ctx, idPath(visitsPath, id), req, &v); err != nil {
		return nil, wrap("client.UpdateVisit", "could not update the visit", err)
	}
	return &v, nil
}

// ConfirmVisit marks a visit as confirmed.
func (c *Client) ConfirmVisit(ctx context.Context, id int64) (*visit.Visit, error) {
	var v visit.Visit
	if err := c.patch(ctx, idPath(visitsPath, id)+"/confirmar", &v); err != nil {
		return nil, wrap("client.ConfirmVisit", "could not confirm the visit", err)
	}
	return &v, nil
}

// DeleteVisit removes a visit.
func (c *Client) DeleteVisit(ctx context.Context, id int64) error {
	if err := c.doDelete(ctx, idPath(visitsPath, id)); err != nil {
		return wrap("client.DeleteVisit", "could not delete the visit", err)
	}
	return nil
}

// ListVisitsByClient returns the visits booked by a client.
func (c *Client) ListVisitsByClient(ctx context.Context, clientID int64) ([]*visit.Visit, error) {
	return c.listVisits(ctx, "client.ListVisitsByClient", idPath(visitsPath+"/cliente", clientID))
}

// ListVisitsByAgent returns the visits assigned to an agent.
func (c *Client) ListVisitsByAgent(ctx context.Context, agentID int64) ([]*visit.Visit, error) {
	return c.listVisits(ctx, "client.ListVisitsByAgent", idPath(visitsPath+"/agente", agentID))
}

// ListVisitsByProperty returns the visits for a property.
func (c *Client) ListVisitsByProperty(ctx context.Context, propertyID int64) ([]*visit.Visit, error) {
	return c.listVisits(ctx, "client.ListVisitsByProperty", idPath(visitsPath+"/propiedad", propertyID))
}

// ListVisitsBetween returns visits scheduled in [from, to].
func (c *Client) ListVisitsBetween(ctx context.Context, from, to time.Time) ([]*visit.Visit, error) {
	params := url.Values{}
	params.Set("inicio", localtime.Format(from))
	params.Set("fin", localtime.Format(to))
	return c.listVisits(ctx, "client.ListVisitsBetween", visitsPath+"/rango?"+params.Encode())
}

func (c *Client) listVisits(ctx context.Context, op, path string) ([]*visit.Visit, error) {
	var visits []*visit.Visit
	if err := c.get(ctx, path, &visits); err != nil {
		return nil, wrap(op, "could not load visits", err)
	}
	return visits, nil
}
