package temps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorStatus(t *testing.T) {
	cases := []struct {
		name   string
		sensor Sensor
		want   string
	}{
		{"below max", Sensor{Temperature: 50, Max: 80, Critical: 95}, "normal"},
		{"at max", Sensor{Temperature: 80, Max: 80, Critical: 95}, "warning"},
		{"at critical", Sensor{Temperature: 96, Max: 80, Critical: 95}, "critical"},
		{"no thresholds", Sensor{Temperature: 120}, "normal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sensor.Status())
		})
	}
}

func TestInfoGroupsAndFlattens(t *testing.T) {
	info := &Info{Source: "lmSensors"}
	info.add(&Sensor{Name: "coretemp_core_0", Label: "Core 0", Temperature: 55})
	info.add(&Sensor{Name: "coretemp_package_id_0", Label: "Package", Temperature: 61})
	info.add(&Sensor{Name: "nvme_composite", Label: "NVMe", Temperature: 40})
	info.add(&Sensor{Name: "acpitz", Label: "ACPI", Temperature: 30})

	require.Len(t, info.CPU, 2)
	require.Len(t, info.Drives, 1)
	require.Len(t, info.System, 1)

	unified := info.Unified()
	require.Len(t, unified, 4)
	assert.Equal(t, "cpu/coretemp_core_0", unified[0].ID)
	assert.Equal(t, "temperature", unified[0].Type)
	assert.Equal(t, "lmSensors", unified[0].Source)
	assert.Equal(t, "drive/nvme_composite", unified[2].ID)

	hottest := info.CPUPackage()
	require.NotNil(t, hottest)
	assert.Equal(t, 61.0, *hottest)
}

func TestCPUPackageWithoutSensors(t *testing.T) {
	assert.Nil(t, (&Info{}).CPUPackage())
}
