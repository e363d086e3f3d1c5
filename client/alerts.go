package client

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"

	"github.com/CristiGvl/cascade-hwmon/model"
)

// AlertRequest describes a new alert. Extra carries any additional fields the
// server accepts (threshold, enabled, ...); the named fields win on conflict.
type AlertRequest struct {
	Name       string
	SensorPath string
	Condition  string
	Extra      map[string]any
}

func (r AlertRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(r.Extra)+3)
	maps.Copy(body, r.Extra)
	body["name"] = r.Name
	body["sensorPath"] = r.SensorPath
	body["condition"] = r.Condition
	return json.Marshal(body)
}

// Alerts returns every configured alert in server order.
func (c *Client) Alerts(ctx context.Context) ([]*model.Alert, error) {
	return getList[model.Alert](ctx, c, "/alerts")
}

// CreateAlert registers an alert and returns it with its server-assigned ID.
func (c *Client) CreateAlert(ctx context.Context, req AlertRequest) (*model.Alert, error) {
	raw, err := c.post(ctx, "/alerts", req)
	if err != nil {
		return nil, err
	}
	return decodeOne[model.Alert](raw, http.MethodPost+" /alerts")
}
