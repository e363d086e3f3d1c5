//go:build linux

package temps

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
)

// LinuxReader reads hwmon sensors through gopsutil.
type LinuxReader struct{}

func newPlatformReader() Reader {
	return &LinuxReader{}
}

// GetInfo returns temperature information. A partial read (some hwmon
// entries failing) still returns what was readable.
func (r *LinuxReader) GetInfo(ctx context.Context) (*Info, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil && len(temps) == 0 {
		return nil, err
	}

	info := &Info{Source: "lmSensors"}
	for _, temp := range temps {
		info.add(&Sensor{
			Name:        temp.SensorKey,
			Label:       temp.SensorKey,
			Temperature: temp.Temperature,
			Critical:    temp.Critical,
			Max:         temp.High,
		})
	}

	return info, nil
}
