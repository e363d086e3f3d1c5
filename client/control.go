package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/CristiGvl/cascade-hwmon/model"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// PowerProfiles lists the OS power plans the server can switch between.
func (c *Client) PowerProfiles(ctx context.Context) ([]*model.PowerProfile, error) {
	return getList[model.PowerProfile](ctx, c, "/ai/control/power-profiles")
}

func (c *Client) SetPowerProfile(ctx context.Context, profileID string) (bool, error) {
	return c.control(ctx, "/ai/control/power-profiles/"+url.PathEscape(profileID), struct{}{})
}

// Brightness returns the display brightness, or nil when the server cannot read it.
func (c *Client) Brightness(ctx context.Context) (*int, error) {
	const path = "/ai/control/brightness"

	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	res := gjson.GetBytes(raw, "brightness")
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}

	level, err := cast.ToIntE(res.Value())
	if err != nil {
		return nil, &Error{Op: http.MethodGet + " " + path, Err: fmt.Errorf("brightness: %w", err)}
	}
	return &level, nil
}

// SetBrightness sets display brightness (0-100).
func (c *Client) SetBrightness(ctx context.Context, level int) (bool, error) {
	return c.control(ctx, "/ai/control/brightness", map[string]int{"level": level})
}

// KillProcess asks the server to terminate pid; force requests a hard kill.
func (c *Client) KillProcess(ctx context.Context, pid int, force bool) (bool, error) {
	return c.control(ctx, fmt.Sprintf("/ai/control/process/%d", pid), map[string]bool{"force": force})
}
