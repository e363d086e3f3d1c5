package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// Mainboard returns board sensors: voltages, VRM, chipset.
func (c *Client) Mainboard(ctx context.Context) (*model.Mainboard, error) {
	return getOne[model.Mainboard](ctx, c, "/mainboard")
}

func (c *Client) Voltages(ctx context.Context) ([]*model.VoltageSensor, error) {
	return getList[model.VoltageSensor](ctx, c, "/mainboard/voltages")
}

// VRM returns nil without error when the board exposes no VRM sensors.
func (c *Client) VRM(ctx context.Context) (*model.VRM, error) {
	return getOne[model.VRM](ctx, c, "/mainboard/vrm")
}

// Chipset returns nil without error when the board exposes no PCH sensor.
func (c *Client) Chipset(ctx context.Context) (*model.Chipset, error) {
	return getOne[model.Chipset](ctx, c, "/mainboard/chipset")
}

func (c *Client) Fans(ctx context.Context) (*model.Fans, error) {
	return getOne[model.Fans](ctx, c, "/fans")
}

func (c *Client) FanControllers(ctx context.Context) ([]*model.FanController, error) {
	return getList[model.FanController](ctx, c, "/fans/controllers")
}

// SetFanSpeed sets a channel to speed percent (0-100). The server validates the range.
func (c *Client) SetFanSpeed(ctx context.Context, controllerID, channelID string, speed int) (bool, error) {
	return c.control(ctx, fanChannelPath(controllerID, channelID, "speed"), map[string]int{"speed": speed})
}

// SetFanMode switches a channel between "auto" and "manual".
func (c *Client) SetFanMode(ctx context.Context, controllerID, channelID, mode string) (bool, error) {
	return c.control(ctx, fanChannelPath(controllerID, channelID, "mode"), map[string]string{"mode": mode})
}

func fanChannelPath(controllerID, channelID, setting string) string {
	return fmt.Sprintf("/fans/controllers/%s/channels/%s/%s",
		url.PathEscape(controllerID), url.PathEscape(channelID), setting)
}

// Advanced returns VRM, chipset, PCIe and thermal zone data together.
func (c *Client) Advanced(ctx context.Context) (*model.Advanced, error) {
	return getOne[model.Advanced](ctx, c, "/advanced")
}

func (c *Client) PCIeBandwidth(ctx context.Context) ([]*model.PCIeLink, error) {
	return getList[model.PCIeLink](ctx, c, "/advanced/pcie")
}

func (c *Client) ThermalZones(ctx context.Context) ([]*model.ThermalZone, error) {
	return getList[model.ThermalZone](ctx, c, "/advanced/thermal-zones")
}
