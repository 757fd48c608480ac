package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/evcraddock/house-market/internal/preference"
)

const preferencesPath = "/api/preferencias-notificacion"

// CreatePreference stores a new notification preference.
func (c *Client) CreatePreference(ctx context.Context, d preference.Draft) (*preference.Preference, error) {
	var p preference.Preference
	if err := c.post(ctx, preferencesPath, d, &p); err != nil {
		return nil, wrap("client.CreatePreference", "could not save the preference", err)
	}
	return &p, nil
}

// GetPreference returns one preference.
func (c *Client) GetPreference(ctx context.Context, id int64) (*preference.Preference, error) {
	var p preference.Preference
	if err := c.get(ctx, idPath(preferencesPath, id), &p); err != nil {
		return nil, wrap("client.GetPreference", "could not load the preference", err)
	}
	return &p, nil
}

// ListPreferencesByUser returns a user's preferences.
func (c *Client) ListPreferencesByUser(ctx context.Context, userID int64) ([]*preference.Preference, error) {
	var prefs []*preference.Preference
	if err := c.get(ctx, idPath(preferencesPath+"/usuario", userID), &prefs); err != nil {
		return nil, wrap("client.ListPreferencesByUser", "could not load preferences", err)
	}
	return prefs, nil
}

// UpdatePreference replaces a preference with d.
func (c *Client) UpdatePreference(ctx context.Context, id int64, d preference.Draft) (*preference.Preference, error) {
	var p preference.Preference
	if err := c.put(ctx, idPath(preferencesPath, id), d, &p); err != nil {
		return nil, wrap("client.UpdatePreference", "could not update the preference", err)
	}
	return &p, nil
}

// SetPreferenceActive switches a preference on or off.
func (c *Client) SetPreferenceActive(ctx context.Context, id int64, active bool) (*preference.Preference, error) {
	params := url.Values{}
	params.Set("valor", strconv.FormatBool(active))

	var p preference.Preference
	if err := c.patch(ctx, idPath(preferencesPath, id)+"/activo?"+params.Encode(), &p); err != nil {
		return nil, wrap("client.SetPreferenceActive", "could not change the preference", err)
	}
	return &p, nil
}

// DeletePreference removes a preference.
func (c *Client) DeletePreference(ctx context.Context, id int64) error {
	if err := c.doDelete(ctx, idPath(preferencesPath, id)); err != nil {
		return wrap("client.DeletePreference", "could not delete the preference", err)
	}
	return nil
}
