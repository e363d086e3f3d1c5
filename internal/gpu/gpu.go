package gpu

import (
	"context"
	"strings"
)

// Vendor represents GPU vendor
type Vendor string

const (
	NVIDIA  Vendor = "nvidia"
	AMD     Vendor = "amd"
	Intel   Vendor = "intel"
	Unknown Vendor = "unknown"
)

// Info is one adapter in the /gpu/all payload. Memory is in bytes.
type Info struct {
	Name              string   `json:"name"`
	Vendor            Vendor   `json:"vendor,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	UtilizationGPU    *float64 `json:"utilizationGpu,omitempty"`
	UtilizationMemory *float64 `json:"utilizationMemory,omitempty"`
	MemoryTotal       *int64   `json:"memoryTotal,omitempty"`
	MemoryUsed        *int64   `json:"memoryUsed,omitempty"`
	PowerDraw         *float64 `json:"powerDraw,omitempty"`
	FanSpeed          *int     `json:"fanSpeed,omitempty"`
}

// Process is a process holding GPU memory.
type Process struct {
	PID        int    `json:"pid"`
	Name       string `json:"name"`
	UsedMemory *int64 `json:"usedMemory,omitempty"`
}

// Reader interface for GPU monitoring. No adapters is not an error.
type Reader interface {
	GetInfo(ctx context.Context) ([]*Info, error)
	GetProcesses(ctx context.Context) ([]*Process, error)
}

// NewReader creates a new GPU reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}

func vendorOf(name string) Vendor {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvidia"), strings.Contains(lower, "geforce"), strings.Contains(lower, "quadro"):
		return NVIDIA
	case strings.Contains(lower, "amd"), strings.Contains(lower, "radeon"):
		return AMD
	case strings.Contains(lower, "intel"):
		return Intel
	default:
		return Unknown
	}
}
