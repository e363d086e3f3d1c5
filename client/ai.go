package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CristiGvl/cascade-hwmon/model"
	"github.com/tidwall/gjson"
)

// AIClient groups the /ai endpoints. It shares its parent's transport.
type AIClient struct {
	client *Client
}

// Status returns the system summary with health scores and capabilities.
func (ai *AIClient) Status(ctx context.Context) (*model.AIStatus, error) {
	return getOne[model.AIStatus](ctx, ai.client, "/ai/status")
}

// Analysis returns the server's recommendations and warnings.
func (ai *AIClient) Analysis(ctx context.Context) (*model.AIAnalysis, error) {
	return getOne[model.AIAnalysis](ctx, ai.client, "/ai/analysis")
}

// Actions lists the actions ExecuteAction accepts.
func (ai *AIClient) Actions(ctx context.Context) ([]*model.AIAction, error) {
	const path = "/ai/actions"
	op := http.MethodGet + " " + path

	raw, err := ai.client.get(ctx, path)
	if err != nil {
		return nil, err
	}

	actions := gjson.GetBytes(raw, "actions")
	if !actions.Exists() {
		return nil, &Error{Op: op, Err: errors.New(`response has no "actions" key`)}
	}
	return decodeList[model.AIAction](json.RawMessage(actions.Raw), op)
}

// ExecuteAction runs a named action such as "set_power_profile". Nil params are sent as {}.
func (ai *AIClient) ExecuteAction(ctx context.Context, action string, params map[string]any) (*model.ActionResult, error) {
	const path = "/ai/action"

	if params == nil {
		params = map[string]any{}
	}
	raw, err := ai.client.post(ctx, path, map[string]any{
		"action": action,
		"params": params,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeOne[model.ActionResult](raw, http.MethodPost+" "+path)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &model.ActionResult{}
	}
	return result, nil
}
