package model

// GPU describes one graphics adapter. Memory values are in bytes.
type GPU struct {
	Payload `json:"-"`

	Name              string   `json:"name"`
	Vendor            string   `json:"vendor,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	UtilizationGPU    *float64 `json:"utilizationGpu,omitempty"`
	UtilizationMemory *float64 `json:"utilizationMemory,omitempty"`
	MemoryTotal       *int64   `json:"memoryTotal,omitempty"`
	MemoryUsed        *int64   `json:"memoryUsed,omitempty"`
	PowerDraw         *float64 `json:"powerDraw,omitempty"`
	FanSpeed          *int     `json:"fanSpeed,omitempty"`
}

// GPUProcess is a process holding GPU memory.
type GPUProcess struct {
	Payload `json:"-"`

	PID        int    `json:"pid"`
	Name       string `json:"name"`
	UsedMemory *int64 `json:"usedMemory,omitempty"`
}
