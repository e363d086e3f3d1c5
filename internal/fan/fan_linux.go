//go:build linux

package fan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LinuxReader walks /sys/class/hwmon: one controller per hwmon chip, one
// channel per fanN_input, controllable when a matching pwmN exists.
type LinuxReader struct {
	root string
}

func newPlatformReader() Reader {
	return &LinuxReader{root: "/sys/class/hwmon"}
}

func (r *LinuxReader) GetFans(ctx context.Context) (*Overview, error) {
	chips, err := filepath.Glob(filepath.Join(r.root, "hwmon*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(chips)

	overview := &Overview{Controllers: []*Controller{}}
	for _, chip := range chips {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ctrl := r.readController(chip)
		if len(ctrl.Channels) > 0 {
			overview.Controllers = append(overview.Controllers, ctrl)
		}
	}
	overview.recount()

	return overview, nil
}

func (r *LinuxReader) readController(chip string) *Controller {
	id := filepath.Base(chip)
	name := id
	if data, err := os.ReadFile(filepath.Join(chip, "name")); err == nil {
		name = strings.TrimSpace(string(data))
	}

	ctrl := &Controller{ID: id, Name: name, Channels: []*Channel{}}

	inputs, _ := filepath.Glob(filepath.Join(chip, "fan*_input"))
	sort.Slice(inputs, func(i, j int) bool {
		return channelIndex(inputs[i]) < channelIndex(inputs[j])
	})

	for _, input := range inputs {
		index := channelIndex(input)
		if index < 0 {
			continue
		}
		n := strconv.Itoa(index)

		ch := &Channel{ID: n, Name: "fan" + n, Mode: ModeAuto}
		if label, err := os.ReadFile(filepath.Join(chip, "fan"+n+"_label")); err == nil {
			ch.Name = strings.TrimSpace(string(label))
		}
		if rpm, ok := readInt(input); ok {
			ch.RPM = &rpm
		}

		pwmPath := filepath.Join(chip, "pwm"+n)
		if pwm, ok := readInt(pwmPath); ok {
			ch.Controllable = true
			ch.SpeedPercent = pwmPercent(pwm)
		}
		// pwmN_enable: 1 is manual, 2 and above are chip-driven.
		if enable, ok := readInt(pwmPath + "_enable"); ok && enable == 1 {
			ch.Mode = ModeManual
		}

		ctrl.Channels = append(ctrl.Channels, ch)
	}

	return ctrl
}

// channelIndex extracts N from ".../fanN_input", or -1.
func channelIndex(path string) int {
	base := strings.TrimPrefix(filepath.Base(path), "fan")
	digits, _, ok := strings.Cut(base, "_")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n
}

func readInt(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return v, true
}
