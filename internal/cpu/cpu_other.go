//go:build !linux

package cpu

import (
	"context"
	"errors"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// GenericReader relies on gopsutil alone for platforms without /proc.
type GenericReader struct{}

func newPlatformReader() Reader {
	return &GenericReader{}
}

func (r *GenericReader) GetInfo(ctx context.Context) (*Info, error) {
	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(cpuInfo) == 0 {
		return nil, errors.New("no CPU reported by the OS")
	}

	usage, err := r.GetUsage(ctx)
	if err != nil {
		usage = 0
	}

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil || logical == 0 {
		logical = len(cpuInfo)
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil || physical == 0 {
		physical = int(cpuInfo[0].Cores)
	}

	return &Info{
		Manufacturer:  manufacturer(cpuInfo[0].VendorID),
		Brand:         strings.TrimSpace(cpuInfo[0].ModelName),
		Speed:         cpuInfo[0].Mhz / 1000,
		Cores:         logical,
		PhysicalCores: physical,
		Load:          usage,
	}, nil
}

func (r *GenericReader) GetUsage(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) == 0 {
		return 0, nil
	}
	return percentages[0], nil
}
