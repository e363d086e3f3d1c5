package memory

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// Info is the /memory payload. Values are in bytes.
type Info struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
	SwapTotal   uint64  `json:"swapTotal"`
	SwapUsed    uint64  `json:"swapUsed"`
}

// Reader interface for memory monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a memory reader. gopsutil covers every supported OS.
func NewReader() Reader {
	return &reader{}
}

type reader struct{}

func (r *reader) GetInfo(ctx context.Context) (*Info, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Total:       vm.Total,
		Used:        vm.Used,
		Free:        vm.Available,
		UsedPercent: vm.UsedPercent,
	}

	// Swap is optional; some containers hide it.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		info.SwapTotal = swap.Total
		info.SwapUsed = swap.Used
	}

	return info, nil
}
