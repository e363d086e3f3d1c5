package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

func (c *Client) Memory(ctx context.Context) (*model.Memory, error) {
	return getOne[model.Memory](ctx, c, "/memory")
}

func (c *Client) Network(ctx context.Context) (*model.Network, error) {
	return getOne[model.Network](ctx, c, "/network")
}
