package client

import (
	"errors"
	"fmt"
)

// ErrCascade matches every error returned by the client:
//
//	if errors.Is(err, client.ErrCascade) { ... }
//
// Use errors.As with *APIError or *ConnectionError to narrow it down.
var ErrCascade = errors.New("cascade client error")

// Error is a failure that is neither a transport failure nor an HTTP status,
// such as a malformed response body.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cascade: %s: request failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrCascade }

// ConnectionError is a transport failure before a response was read:
// DNS, refused connection, timeout, TLS handshake or cancellation.
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cascade: %s %s: connection failed: %v", e.Method, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrCascade }

// APIError means the server answered with a non-2xx status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Reason     string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cascade: %s %s: API error: %d %s", e.Method, e.Path, e.StatusCode, e.Reason)
}

func (e *APIError) Is(target error) bool { return target == ErrCascade }

// IsAPIError reports whether err carries an HTTP status failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsConnectionError reports whether err is a transport failure.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// StatusCode returns the HTTP status carried by an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
