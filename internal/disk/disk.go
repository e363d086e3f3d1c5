package disk

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// Info is one element of the /disks payload. Sizes are in bytes.
type Info struct {
	Name       string  `json:"name"`
	Mount      string  `json:"mount"`
	Type       string  `json:"type"`
	Size       uint64  `json:"size"`
	Used       uint64  `json:"used"`
	UsePercent float64 `json:"usePercent"`
}

// Reader interface for disk monitoring
type Reader interface {
	GetInfo(ctx context.Context) ([]*Info, error)
}

// NewReader creates a disk reader over physical partitions.
func NewReader() Reader {
	return &reader{}
}

type reader struct{}

// GetInfo returns disks in the order the OS lists their partitions.
func (r *reader) GetInfo(ctx context.Context) ([]*Info, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	disks := make([]*Info, 0, len(partitions))
	for _, partition := range partitions {
		usage, err := disk.UsageWithContext(ctx, partition.Mountpoint)
		if err != nil {
			continue // Skip partitions we can't read
		}

		disks = append(disks, &Info{
			Name:       partition.Device,
			Mount:      partition.Mountpoint,
			Type:       partition.Fstype,
			Size:       usage.Total,
			Used:       usage.Used,
			UsePercent: usage.UsedPercent,
		})
	}

	return disks, nil
}
