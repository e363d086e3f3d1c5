package model

// InferredMetrics are values the server derives rather than reads from a sensor.
type InferredMetrics struct {
	Payload `json:"-"`

	ThermalHeadroom  ThermalHeadroom `json:"thermalHeadroom"`
	EfficiencyScore  EfficiencyScore `json:"efficiencyScore"`
	Bottleneck       Bottleneck      `json:"bottleneck"`
	WorkloadProfile  WorkloadProfile `json:"workloadProfile"`
	SystemBalance    map[string]any  `json:"systemBalance,omitempty"`
	HealthPrediction map[string]any  `json:"healthPrediction,omitempty"`
}

// ThermalHeadroom is how far each component is from throttling.
type ThermalHeadroom struct {
	Payload `json:"-"`

	CPU ThermalComponent   `json:"cpu"`
	GPU []ThermalComponent `json:"gpu"`
}

type ThermalComponent struct {
	Current         float64 `json:"current"`
	Max             float64 `json:"max"`
	Headroom        float64 `json:"headroom"`
	HeadroomPercent float64 `json:"headroomPercent"`
	Throttling      bool    `json:"throttling"`
}

type EfficiencyScore struct {
	Payload `json:"-"`

	Overall int                  `json:"overall"`
	CPU     ComponentEfficiency  `json:"cpu"`
	GPU     *ComponentEfficiency `json:"gpu,omitempty"`
}

type ComponentEfficiency struct {
	Score              int      `json:"score"`
	PerformancePerWatt *float64 `json:"performancePerWatt,omitempty"`
}

// Bottleneck names the component limiting the current workload.
type Bottleneck struct {
	Payload `json:"-"`

	PrimaryBottleneck string   `json:"primaryBottleneck"`
	Severity          string   `json:"severity"`
	Confidence        int      `json:"confidence"`
	Recommendations   []string `json:"recommendations"`
}

type WorkloadProfile struct {
	Payload `json:"-"`

	Type               string   `json:"type"`
	Confidence         int      `json:"confidence"`
	EstimatedPowerDraw *float64 `json:"estimatedPowerDraw,omitempty"`
}

// Monitors is the unified view over every sensor source the server reads.
type Monitors struct {
	Payload `json:"-"`

	Sources      MonitorSources `json:"sources"`
	Sensors      []Sensor       `json:"sensors"`
	Temperatures []Sensor       `json:"temperatures"`
}

type MonitorSources struct {
	Payload `json:"-"`

	LibreHardwareMonitor bool `json:"libreHardwareMonitor"`
	LMSensors            bool `json:"lmSensors"`
	IPMI                 bool `json:"ipmi"`
	HWiNFO               bool `json:"hwinfo"`
	SMART                bool `json:"smart"`
}

// Sensor is a reading from any source. Status is "normal", "warning" or "critical".
type Sensor struct {
	Payload `json:"-"`

	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Source string  `json:"source"`
	Status string  `json:"status"`
}
