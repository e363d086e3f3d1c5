package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	return getOne[model.HealthStatus](ctx, c, "/health")
}

// Status returns the monitoring service status. Its shape is server defined.
func (c *Client) Status(ctx context.Context) (*model.Document, error) {
	return getOne[model.Document](ctx, c, "/status")
}

// Snapshot returns the last full hardware snapshot.
func (c *Client) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	return getOne[model.Snapshot](ctx, c, "/snapshot")
}

// LiveSnapshot forces a fresh poll on the server before returning the snapshot.
func (c *Client) LiveSnapshot(ctx context.Context) (*model.Snapshot, error) {
	return getOne[model.Snapshot](ctx, c, "/snapshot/live")
}
