//go:build !linux && !windows

package temps

import (
	"context"
	"errors"
)

// UnsupportedReader is a fallback for unsupported platforms
type UnsupportedReader struct{}

func newPlatformReader() Reader {
	return &UnsupportedReader{}
}

func (r *UnsupportedReader) GetInfo(ctx context.Context) (*Info, error) {
	return nil, errors.New("temperature monitoring not supported on this platform")
}
