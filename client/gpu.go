package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// GPU returns the primary GPU.
func (c *Client) GPU(ctx context.Context) (*model.GPU, error) {
	return getOne[model.GPU](ctx, c, "/gpu")
}

func (c *Client) AllGPUs(ctx context.Context) ([]*model.GPU, error) {
	return getList[model.GPU](ctx, c, "/gpu/all")
}

func (c *Client) GPUProcesses(ctx context.Context) ([]*model.GPUProcess, error) {
	return getList[model.GPUProcess](ctx, c, "/gpu/processes")
}
