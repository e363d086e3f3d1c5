//go:build linux

package cpu

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// LinuxReader implements CPU monitoring for Linux
type LinuxReader struct {
	cpuinfoPath string
}

func newPlatformReader() Reader {
	return &LinuxReader{cpuinfoPath: "/proc/cpuinfo"}
}

// GetInfo returns CPU information
func (r *LinuxReader) GetInfo(ctx context.Context) (*Info, error) {
	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(cpuInfo) == 0 {
		return nil, errors.New("no CPU reported by the kernel")
	}

	usage, err := r.GetUsage(ctx)
	if err != nil {
		usage = 0
	}

	logical := len(cpuInfo)
	physical := r.physicalCoreCount()
	if physical == 0 {
		physical = int(cpuInfo[0].Cores)
	}
	if physical == 0 || physical > logical {
		physical = logical
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

// GetUsage returns load since the previous call, without blocking.
func (r *LinuxReader) GetUsage(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) == 0 {
		return 0, nil
	}
	return percentages[0], nil
}

// physicalCoreCount counts distinct (physical id, core id) pairs in /proc/cpuinfo.
func (r *LinuxReader) physicalCoreCount() int {
	content, err := os.ReadFile(r.cpuinfoPath)
	if err != nil {
		return 0
	}
	return countPhysicalCores(string(content))
}

func countPhysicalCores(cpuinfo string) int {
	cores := make(map[string]bool)
	var physicalID, coreID string

	flush := func() {
		if physicalID != "" && coreID != "" {
			cores[physicalID+":"+coreID] = true
		}
		physicalID, coreID = "", ""
	}

	for _, line := range strings.Split(cpuinfo, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "physical id":
			physicalID = strings.TrimSpace(value)
		case "core id":
			coreID = strings.TrimSpace(value)
		}
	}
	flush()

	return len(cores)
}
