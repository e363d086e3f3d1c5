//go:build !linux && !windows

package fan

import "context"

// UnsupportedReader reports no fans.
type UnsupportedReader struct{}

func newPlatformReader() Reader {
	return &UnsupportedReader{}
}

func (r *UnsupportedReader) GetFans(ctx context.Context) (*Overview, error) {
	return &Overview{Controllers: []*Controller{}}, nil
}
