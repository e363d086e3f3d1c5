package cpu

import "context"

// Info is the /cpu payload. Speed is in GHz, Load in percent.
type Info struct {
	Manufacturer  string   `json:"manufacturer"`
	Brand         string   `json:"brand"`
	Speed         float64  `json:"speed"`
	Cores         int      `json:"cores"`
	PhysicalCores int      `json:"physicalCores"`
	Load          float64  `json:"load"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// Reader interface for CPU monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
	GetUsage(ctx context.Context) (float64, error)
}

// NewReader creates a new CPU reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}

// manufacturer maps a CPUID vendor string to a display name.
func manufacturer(vendorID string) string {
	switch vendorID {
	case "GenuineIntel":
		return "Intel"
	case "AuthenticAMD":
		return "AMD"
	case "":
		return "Unknown"
	default:
		return vendorID
	}
}
