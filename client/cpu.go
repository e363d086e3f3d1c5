package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

func (c *Client) CPU(ctx context.Context) (*model.CPU, error) {
	return getOne[model.CPU](ctx, c, "/cpu")
}

// CPUSensors returns per-core temperatures, voltages and power in one call.
func (c *Client) CPUSensors(ctx context.Context) (*model.CPUSensors, error) {
	return getOne[model.CPUSensors](ctx, c, "/cpu/sensors")
}

func (c *Client) CPUCores(ctx context.Context) ([]*model.CoreData, error) {
	return getList[model.CoreData](ctx, c, "/cpu/sensors/cores")
}

func (c *Client) CPUTemperatures(ctx context.Context) ([]*model.CoreTemperature, error) {
	return getList[model.CoreTemperature](ctx, c, "/cpu/sensors/temperatures")
}

func (c *Client) CPUFrequencies(ctx context.Context) ([]*model.CoreFrequency, error) {
	return getList[model.CoreFrequency](ctx, c, "/cpu/sensors/frequencies")
}

func (c *Client) CPUPower(ctx context.Context) (*model.CPUPower, error) {
	return getOne[model.CPUPower](ctx, c, "/cpu/sensors/power")
}

func (c *Client) CPUThrottling(ctx context.Context) (*model.Throttling, error) {
	return getOne[model.Throttling](ctx, c, "/cpu/sensors/throttling")
}
