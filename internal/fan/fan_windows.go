//go:build windows

package fan

import (
	"context"
	"fmt"

	"github.com/StackExchange/wmi"
)

// WindowsReader reports the fans WMI knows about. Most boards expose none.
type WindowsReader struct{}

// Win32_Fan represents WMI Win32_Fan class
type Win32_Fan struct {
	DeviceID      string
	Name          string
	DesiredSpeed  uint64
	VariableSpeed bool
}

func newPlatformReader() Reader {
	return &WindowsReader{}
}

func (r *WindowsReader) GetFans(ctx context.Context) (*Overview, error) {
	var fans []Win32_Fan
	if err := wmi.Query("SELECT DeviceID, Name, DesiredSpeed, VariableSpeed FROM Win32_Fan", &fans); err != nil {
		return nil, err
	}

	ctrl := &Controller{ID: "wmi", Name: "Windows Management Instrumentation", Channels: []*Channel{}}
	for i, f := range fans {
		rpm := int(f.DesiredSpeed)
		ch := &Channel{
			ID:           fmt.Sprintf("%d", i+1),
			Name:         f.Name,
			RPM:          &rpm,
			Mode:         ModeAuto,
			Controllable: f.VariableSpeed,
		}
		if ch.Name == "" {
			ch.Name = fmt.Sprintf("Fan %s", f.DeviceID)
		}
		ctrl.Channels = append(ctrl.Channels, ch)
	}

	overview := &Overview{Controllers: []*Controller{}}
	if len(ctrl.Channels) > 0 {
		overview.Controllers = append(overview.Controllers, ctrl)
	}
	overview.recount()

	return overview, nil
}
