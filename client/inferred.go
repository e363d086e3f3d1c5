package client

import (
	"context"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// Inferred returns every derived metric in one call.
func (c *Client) Inferred(ctx context.Context) (*model.InferredMetrics, error) {
	return getOne[model.InferredMetrics](ctx, c, "/inferred")
}

// ThermalHeadroom reports how far each component is from throttling.
func (c *Client) ThermalHeadroom(ctx context.Context) (*model.ThermalHeadroom, error) {
	return getOne[model.ThermalHeadroom](ctx, c, "/inferred/thermal-headroom")
}

func (c *Client) Efficiency(ctx context.Context) (*model.EfficiencyScore, error) {
	return getOne[model.EfficiencyScore](ctx, c, "/inferred/efficiency")
}

func (c *Client) Bottleneck(ctx context.Context) (*model.Bottleneck, error) {
	return getOne[model.Bottleneck](ctx, c, "/inferred/bottleneck")
}

func (c *Client) WorkloadProfile(ctx context.Context) (*model.WorkloadProfile, error) {
	return getOne[model.WorkloadProfile](ctx, c, "/inferred/workload")
}

// HealthPrediction returns component health predictions. Its shape is server defined.
func (c *Client) HealthPrediction(ctx context.Context) (*model.Document, error) {
	return getOne[model.Document](ctx, c, "/inferred/health")
}

// Monitors returns every sensor from every monitoring source.
func (c *Client) Monitors(ctx context.Context) (*model.Monitors, error) {
	return getOne[model.Monitors](ctx, c, "/monitors")
}

func (c *Client) MonitorSources(ctx context.Context) (*model.MonitorSources, error) {
	return getOne[model.MonitorSources](ctx, c, "/monitors/sources")
}

func (c *Client) AllTemperatures(ctx context.Context) ([]*model.Sensor, error) {
	return getList[model.Sensor](ctx, c, "/monitors/temperatures")
}

func (c *Client) CriticalSensors(ctx context.Context) ([]*model.Sensor, error) {
	return getList[model.Sensor](ctx, c, "/monitors/critical")
}

func (c *Client) WarningSensors(ctx context.Context) ([]*model.Sensor, error) {
	return getList[model.Sensor](ctx, c, "/monitors/warnings")
}
