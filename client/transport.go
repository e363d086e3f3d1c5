package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CristiGvl/cascade-hwmon/model"
	"go.uber.org/zap"
)

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Op: http.MethodPost + " " + path, Err: fmt.Errorf("encode request body: %w", err)}
	}
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	op := method + " " + path
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Method: method, URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	c.logger.Debug("cascade request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
			Body:       data,
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(data) {
		return nil, &Error{Op: op, Err: errors.New("response body is not valid JSON")}
	}

	return data, nil
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

func getOne[T any, P model.Holder[T]](ctx context.Context, c *Client, path string) (*T, error) {
	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeOne[T, P](raw, http.MethodGet+" "+path)
}

func getList[T any, P model.Holder[T]](ctx context.Context, c *Client, path string) ([]*T, error) {
	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[T, P](raw, http.MethodGet+" "+path)
}

func decodeOne[T any, P model.Holder[T]](raw json.RawMessage, op string) (*T, error) {
	v, err := model.Decode[T, P](raw)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return v, nil
}

func decodeList[T any, P model.Holder[T]](raw json.RawMessage, op string) ([]*T, error) {
	v, err := model.DecodeList[T, P](raw)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return v, nil
}

// control posts body and reports the "success" flag of the reply.
func (c *Client) control(ctx context.Context, path string, body any) (bool, error) {
	raw, err := c.post(ctx, path, body)
	if err != nil {
		return false, err
	}
	return model.Success(raw), nil
}
