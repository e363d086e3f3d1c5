//go:build windows

package temps

import (
	"context"
	"fmt"

	"github.com/StackExchange/wmi"
)

// WindowsReader reads ACPI thermal zones through WMI.
type WindowsReader struct{}

func newPlatformReader() Reader {
	return &WindowsReader{}
}

// Win32_PerfRawData_Counters_ThermalZoneInformation represents thermal zone data
type Win32_PerfRawData_Counters_ThermalZoneInformation struct {
	Name        string
	Temperature uint64
}

// Win32_TemperatureProbe represents WMI temperature probe data
type Win32_TemperatureProbe struct {
	DeviceID        string
	Name            string
	Description     string
	CurrentReading  *uint32
	NominalReading  *uint32
	MaxReadableHigh *uint32
}

func (r *WindowsReader) GetInfo(ctx context.Context) (*Info, error) {
	info := &Info{Source: "wmi"}

	probeErr := r.readProbes(info)
	zoneErr := r.readThermalZones(info)
	if probeErr != nil && zoneErr != nil {
		return nil, fmt.Errorf("no WMI temperature source: %w", zoneErr)
	}

	return info, nil
}

func (r *WindowsReader) readProbes(info *Info) error {
	var probes []Win32_TemperatureProbe
	if err := wmi.Query("SELECT * FROM Win32_TemperatureProbe", &probes); err != nil {
		return err
	}

	for _, probe := range probes {
		if probe.CurrentReading == nil {
			continue
		}

		sensor := &Sensor{
			Name:        probe.DeviceID,
			Label:       probe.Name,
			Temperature: deciKelvin(uint64(*probe.CurrentReading)),
		}
		if probe.Description != "" {
			sensor.Label = probe.Description
		}
		if probe.MaxReadableHigh != nil {
			sensor.Critical = deciKelvin(uint64(*probe.MaxReadableHigh))
		}
		if probe.NominalReading != nil {
			sensor.Max = deciKelvin(uint64(*probe.NominalReading))
		}
		info.add(sensor)
	}

	return nil
}

func (r *WindowsReader) readThermalZones(info *Info) error {
	var zones []Win32_PerfRawData_Counters_ThermalZoneInformation
	if err := wmi.Query("SELECT * FROM Win32_PerfRawData_Counters_ThermalZoneInformation", &zones); err != nil {
		return err
	}

	for _, zone := range zones {
		celsius := deciKelvin(zone.Temperature)
		if celsius < -50 || celsius > 150 {
			continue
		}

		info.System = append(info.System, &Sensor{
			Name:        zone.Name,
			Label:       fmt.Sprintf("Thermal Zone %s", zone.Name),
			Temperature: celsius,
			Critical:    85.0,
			Max:         70.0,
		})
	}

	return nil
}

// deciKelvin converts WMI tenths of Kelvin to Celsius.
func deciKelvin(v uint64) float64 {
	return float64(v)/10.0 - 273.15
}
