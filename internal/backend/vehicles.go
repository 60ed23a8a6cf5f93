package backend

import "context"

// Vehicles lists the tenant's fleet. The GPS screen joins this list with
// tracked objects through the vehicle IMEI.
func (c *Client) Vehicles(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := c.get(ctx, "/vehicles", nil, &vehicles); err != nil {
		return nil, err
	}

	return vehicles, nil
}
