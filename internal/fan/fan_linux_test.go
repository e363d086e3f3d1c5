//go:build linux

package fan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLinuxReaderGetFans(t *testing.T) {
	root := t.TempDir()
	chip := filepath.Join(root, "hwmon2")
	writeFile(t, filepath.Join(chip, "name"), "nct6798\n")
	writeFile(t, filepath.Join(chip, "fan1_input"), "1200\n")
	writeFile(t, filepath.Join(chip, "fan1_label"), "CPU_FAN\n")
	writeFile(t, filepath.Join(chip, "pwm1"), "255\n")
	writeFile(t, filepath.Join(chip, "pwm1_enable"), "1\n")
	writeFile(t, filepath.Join(chip, "fan2_input"), "800\n")

	// A chip without fans is not a controller.
	writeFile(t, filepath.Join(root, "hwmon0", "name"), "acpitz\n")

	reader := &LinuxReader{root: root}
	overview, err := reader.GetFans(context.Background())
	require.NoError(t, err)

	assert.True(t, overview.Available)
	assert.Equal(t, 2, overview.TotalChannels)
	require.Len(t, overview.Controllers, 1)

	ctrl := overview.Controllers[0]
	assert.Equal(t, "hwmon2", ctrl.ID)
	assert.Equal(t, "nct6798", ctrl.Name)
	require.Len(t, ctrl.Channels, 2)

	cpuFan := overview.Channel("hwmon2", "1")
	require.NotNil(t, cpuFan)
	assert.Equal(t, "CPU_FAN", cpuFan.Name)
	assert.Equal(t, 100, cpuFan.SpeedPercent)
	assert.Equal(t, ModeManual, cpuFan.Mode)
	assert.True(t, cpuFan.Controllable)
	require.NotNil(t, cpuFan.RPM)
	assert.Equal(t, 1200, *cpuFan.RPM)

	caseFan := overview.Channel("hwmon2", "2")
	require.NotNil(t, caseFan)
	assert.Equal(t, "fan2", caseFan.Name)
	assert.False(t, caseFan.Controllable)
	assert.Equal(t, ModeAuto, caseFan.Mode)
}

func TestLinuxReaderWithoutHwmon(t *testing.T) {
	reader := &LinuxReader{root: t.TempDir()}
	overview, err := reader.GetFans(context.Background())
	require.NoError(t, err)
	assert.False(t, overview.Available)
	assert.Empty(t, overview.Controllers)
}

func TestChannelIndex(t *testing.T) {
	assert.Equal(t, 3, channelIndex("/sys/class/hwmon/hwmon1/fan3_input"))
	assert.Equal(t, -1, channelIndex("/sys/class/hwmon/hwmon1/fanX_input"))
}
