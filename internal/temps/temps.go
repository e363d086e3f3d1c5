package temps

import (
	"context"
	"strings"
)

// Sensor represents a temperature sensor. Thresholds of 0 mean unknown.
type Sensor struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature"`
	Critical    float64 `json:"critical"`
	Max         float64 `json:"max"`
}

const (
	StatusNormal   = "normal"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// Status grades the reading against its thresholds.
func (s *Sensor) Status() string {
	switch {
	case s.Critical > 0 && s.Temperature >= s.Critical:
		return StatusCritical
	case s.Max > 0 && s.Temperature >= s.Max:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// Info represents temperature information grouped by component.
type Info struct {
	Source string    `json:"source"`
	CPU    []*Sensor `json:"cpu"`
	GPU    []*Sensor `json:"gpu"`
	System []*Sensor `json:"system"`
	Drives []*Sensor `json:"drives"`
}

// Unified is a reading in the /monitors sensor shape.
type Unified struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Source string  `json:"source"`
	Status string  `json:"status"`
}

// Unified flattens every group into /monitors sensors, CPU first.
func (i *Info) Unified() []*Unified {
	groups := []struct {
		prefix  string
		sensors []*Sensor
	}{
		{"cpu", i.CPU},
		{"gpu", i.GPU},
		{"system", i.System},
		{"drive", i.Drives},
	}

	var out []*Unified
	for _, group := range groups {
		for _, s := range group.sensors {
			out = append(out, &Unified{
				ID:     group.prefix + "/" + s.Name,
				Name:   s.Label,
				Type:   "temperature",
				Value:  s.Temperature,
				Unit:   "°C",
				Source: i.Source,
				Status: s.Status(),
			})
		}
	}
	return out
}

// CPUPackage returns the hottest CPU reading, or nil without CPU sensors.
func (i *Info) CPUPackage() *float64 {
	var hottest *float64
	for _, s := range i.CPU {
		if hottest == nil || s.Temperature > *hottest {
			t := s.Temperature
			hottest = &t
		}
	}
	return hottest
}

func (i *Info) add(s *Sensor) {
	switch classify(s.Name) {
	case "cpu":
		i.CPU = append(i.CPU, s)
	case "gpu":
		i.GPU = append(i.GPU, s)
	case "drive":
		i.Drives = append(i.Drives, s)
	default:
		i.System = append(i.System, s)
	}
}

func classify(name string) string {
	name = strings.ToLower(name)
	switch {
	case containsAny(name, "cpu", "core", "processor", "k10temp", "package"):
		return "cpu"
	case containsAny(name, "gpu", "nvidia", "amdgpu", "radeon", "video"):
		return "gpu"
	case containsAny(name, "drive", "disk", "nvme", "sda", "sdb", "storage"):
		return "drive"
	default:
		return "system"
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Reader interface for temperature monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a new temperature reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}
