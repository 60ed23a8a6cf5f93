package backend

import (
	"context"
	"net/url"
)

// GPSObjects lists the current snapshot of all tracked objects visible to
// the caller's tenant.
func (c *Client) GPSObjects(ctx context.Context) ([]TrackedObject, error) {
	var objects []TrackedObject
	if err := c.get(ctx, "/gps/objects", nil, &objects); err != nil {
		return nil, err
	}

	return objects, nil
}

// GPSLocations returns location snapshots, optionally narrowed to one IMEI.
// An empty imei asks the provider for every device.
func (c *Client) GPSLocations(ctx context.Context, imei string) ([]TrackedObject, error) {
	query := url.Values{}
	if imei != "" {
		query.Set("imei", imei)
	}

	var locations []TrackedObject
	if err := c.get(ctx, "/gps/locations", query, &locations); err != nil {
		return nil, err
	}

	return locations, nil
}
