package model

// Mainboard groups the board-level sensors.
type Mainboard struct {
	Payload `json:"-"`

	Manufacturer string              `json:"manufacturer"`
	Model        string              `json:"model"`
	BIOSVersion  string              `json:"biosVersion"`
	Voltages     []VoltageSensor     `json:"voltages"`
	Temperatures []TemperatureSensor `json:"temperatures"`
	Fans         []FanSensor         `json:"fans"`
	VRM          *VRM                `json:"vrm,omitempty"`
	Chipset      *Chipset            `json:"chipset,omitempty"`
}

type VoltageSensor struct {
	Payload `json:"-"`

	Name    string   `json:"name"`
	Value   float64  `json:"value"`
	Nominal *float64 `json:"nominal,omitempty"`
	Status  string   `json:"status"`
}

type TemperatureSensor struct {
	Name   string   `json:"name"`
	Value  float64  `json:"value"`
	Max    *float64 `json:"max,omitempty"`
	Status string   `json:"status"`
}

type FanSensor struct {
	Name string `json:"name"`
	RPM  int    `json:"rpm"`
	PWM  *int   `json:"pwm,omitempty"`
}

// VRM is the voltage regulator module feeding the CPU.
type VRM struct {
	Payload `json:"-"`

	Temperature *float64 `json:"temperature,omitempty"`
	Voltage     *float64 `json:"voltage,omitempty"`
	Power       *float64 `json:"power,omitempty"`
}

type Chipset struct {
	Payload `json:"-"`

	Name           string   `json:"name"`
	PCHTemperature *float64 `json:"pchTemperature,omitempty"`
}

// Fans is the /fans overview of every controllable fan header.
type Fans struct {
	Payload `json:"-"`

	Available     bool            `json:"available"`
	Controllers   []FanController `json:"controllers"`
	TotalChannels int             `json:"totalChannels"`
}

type FanController struct {
	Payload `json:"-"`

	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Channels []FanChannel `json:"channels"`
}

// FanChannel is one header on a controller. Mode is "auto" or "manual".
type FanChannel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SpeedPercent int    `json:"speedPercent"`
	RPM          *int   `json:"rpm,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Controllable bool   `json:"controllable"`
}

// Advanced holds the less common board data: VRM, chipset, PCIe links, thermal zones.
type Advanced struct {
	Payload `json:"-"`

	VRM           *VRM          `json:"vrm,omitempty"`
	Chipset       *Chipset      `json:"chipset,omitempty"`
	PCIeBandwidth []PCIeLink    `json:"pcieBandwidth"`
	ThermalZones  []ThermalZone `json:"thermalZones"`
}

type PCIeLink struct {
	Payload `json:"-"`

	Slot          string  `json:"slot"`
	Device        string  `json:"device"`
	CurrentSpeed  string  `json:"currentSpeed"`
	Lanes         int     `json:"lanes"`
	BandwidthGBps float64 `json:"bandwidthGBps"`
}

type ThermalZone struct {
	Payload `json:"-"`

	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
}
