package model

// CPU is the summary returned by /cpu.
type CPU struct {
	Payload `json:"-"`

	Manufacturer  string   `json:"manufacturer"`
	Brand         string   `json:"brand"`
	Speed         float64  `json:"speed"`
	Cores         int      `json:"cores"`
	PhysicalCores int      `json:"physicalCores"`
	Load          float64  `json:"load"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// CPUSensors is the detailed sensor view returned by /cpu/sensors.
type CPUSensors struct {
	Payload `json:"-"`

	Manufacturer     string     `json:"manufacturer"`
	Brand            string     `json:"brand"`
	PhysicalCores    int        `json:"physicalCores"`
	LogicalCores     int        `json:"logicalCores"`
	BaseFrequency    float64    `json:"baseFrequency"`
	MaxFrequency     float64    `json:"maxFrequency"`
	CurrentFrequency float64    `json:"currentFrequency"`
	AverageLoad      float64    `json:"averageLoad"`
	Package          CPUPackage `json:"package"`
	Cores            []CoreData `json:"cores"`
	Throttling       Throttling `json:"throttling"`
	Power            CPUPower   `json:"power"`
}

type CPUPackage struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	TemperatureMax   *float64 `json:"temperatureMax,omitempty"`
	TemperatureTjMax *float64 `json:"temperatureTjMax,omitempty"`
	Power            *float64 `json:"power,omitempty"`
	Voltage          *float64 `json:"voltage,omitempty"`
}

// CoreData is one logical core.
type CoreData struct {
	Payload `json:"-"`

	Core        int      `json:"core"`
	Temperature *float64 `json:"temperature,omitempty"`
	Load        float64  `json:"load"`
	Frequency   float64  `json:"frequency"`
	Voltage     *float64 `json:"voltage,omitempty"`
	Throttling  bool     `json:"throttling"`
}

type CoreTemperature struct {
	Payload `json:"-"`

	Core        int      `json:"core"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type CoreFrequency struct {
	Payload `json:"-"`

	Core      int     `json:"core"`
	Frequency float64 `json:"frequency"`
}

// Throttling reports whether and why the CPU is being held back.
type Throttling struct {
	Payload `json:"-"`

	ThermalThrottling bool   `json:"thermalThrottling"`
	PowerThrottling   bool   `json:"powerThrottling"`
	CurrentThrottling bool   `json:"currentThrottling"`
	ThrottleCount     *int64 `json:"throttleCount,omitempty"`
}

// CPUPower values are in watts.
type CPUPower struct {
	Payload `json:"-"`

	PackagePower *float64 `json:"packagePower,omitempty"`
	CoresPower   *float64 `json:"coresPower,omitempty"`
	UncorePower  *float64 `json:"uncorePower,omitempty"`
	DRAMPower    *float64 `json:"dramPower,omitempty"`
	TDP          *float64 `json:"tdp,omitempty"`
}
