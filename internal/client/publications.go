package client

import (
	"context"
	"net/url"

	"github.com/evcraddock/house-market/internal/publication"
)

const publicationsPath = "/api/publicaciones"

// ListPublications returns one page of publications.
func (c *Client) ListPublications(ctx context.Context, page, size int) (*Page[*publication.Publication], error) {
	var p Page[*publication.Publication]
	if err := c.get(ctx, publicationsPath+"?"+pageParams(page, size).Encode(), &p); err != nil {
		return nil, wrap("client.ListPublications", "could not load publications", err)
	}
	return &p, nil
}

// GetPublication returns one publication.
func (c *Client) GetPublication(ctx context.Context, id int64) (*publication.Publication, error) {
	var p publication.Publication
	if err := c.get(ctx, idPath(publicationsPath, id), &p); err != nil {
		return nil, wrap("client.GetPublication", "could not load the publication", err)
	}
	return &p, nil
}

// ListPublicationsByState returns the publications in state.
func (c *Client) ListPublicationsByState(ctx context.Context, state publication.State) ([]*publication.Publication, error) {
	var pubs []*publication.Publication
	if err := c.get(ctx, publicationsPath+"/estado/"+url.PathEscape(string(state)), &pubs); err != nil {
		return nil, wrap("client.ListPublicationsByState", "could not load publications", err)
	}
	return pubs, nil
}

// ListPublicationsByProperty returns the publications for a property.
func (c *Client) ListPublicationsByProperty(ctx context.Context, propertyID int64) ([]*publication.Publication, error) {
	var pubs []*publication.Publication
	if err := c.get(ctx, idPath(publicationsPath+"/propiedad", propertyID), &pubs); err != nil {
		return nil, wrap("client.ListPublicationsByProperty", "could not load publications", err)
	}
	return pubs, nil
}
