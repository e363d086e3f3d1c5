package model

// HealthStatus is returned by /health.
type HealthStatus struct {
	Payload `json:"-"`

	Status    string  `json:"status"`
	Timestamp int64   `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Version   string  `json:"version"`
}

// Snapshot is a full point-in-time aggregation of every sensor category.
type Snapshot struct {
	Payload `json:"-"`

	Timestamp int64    `json:"timestamp"`
	CPU       CPU      `json:"cpu"`
	GPU       *GPU     `json:"gpu,omitempty"`
	Memory    Memory   `json:"memory"`
	Disks     []Disk   `json:"disks,omitempty"`
	Network   *Network `json:"network,omitempty"`
}
