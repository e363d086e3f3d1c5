package model

// Disk is one mounted filesystem. Sizes are in bytes.
type Disk struct {
	Payload `json:"-"`

	Name        string   `json:"name"`
	Mount       string   `json:"mount"`
	Type        string   `json:"type"`
	Size        int64    `json:"size"`
	Used        int64    `json:"used"`
	UsePercent  float64  `json:"usePercent"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// SMARTData is the disk self-monitoring report.
type SMARTData struct {
	Payload `json:"-"`

	Available      bool          `json:"available"`
	Disks          []SMARTDisk   `json:"disks"`
	HealthySummary HealthSummary `json:"healthySummary"`
}

type SMARTDisk struct {
	Payload `json:"-"`

	Device       string   `json:"device"`
	Model        string   `json:"model"`
	HealthStatus string   `json:"healthStatus"`
	Temperature  *float64 `json:"temperature,omitempty"`
	PowerOnHours *int64   `json:"powerOnHours,omitempty"`
}

type HealthSummary struct {
	Total   int `json:"total"`
	Healthy int `json:"healthy"`
	Warning int `json:"warning"`
	Failing int `json:"failing"`
}
