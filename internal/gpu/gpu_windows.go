//go:build windows

package gpu

import (
	"context"
	"strings"

	"github.com/StackExchange/wmi"
)

// WindowsReader prefers nvidia-smi and adds whatever else WMI lists.
type WindowsReader struct{}

// Win32_VideoController represents WMI video controller
type Win32_VideoController struct {
	Name       string
	AdapterRAM uint32
}

func newPlatformReader() Reader {
	return &WindowsReader{}
}

func (r *WindowsReader) GetInfo(ctx context.Context) ([]*Info, error) {
	gpus := []*Info{}
	if log, err := querySMI(ctx); err == nil {
		gpus = append(gpus, log.adapters()...)
	}

	var controllers []Win32_VideoController
	if err := wmi.Query("SELECT Name, AdapterRAM FROM Win32_VideoController", &controllers); err != nil {
		return gpus, nil
	}

	for _, vc := range controllers {
		if vc.Name == "" || r.known(gpus, vc.Name) {
			continue
		}
		ram := int64(vc.AdapterRAM)
		gpus = append(gpus, &Info{
			Name:        vc.Name,
			Vendor:      vendorOf(vc.Name),
			MemoryTotal: &ram,
		})
	}

	return gpus, nil
}

func (r *WindowsReader) GetProcesses(ctx context.Context) ([]*Process, error) {
	log, err := querySMI(ctx)
	if err != nil {
		return []*Process{}, nil
	}
	return log.processes(), nil
}

func (r *WindowsReader) known(gpus []*Info, name string) bool {
	for _, g := range gpus {
		if strings.Contains(strings.ToLower(name), strings.ToLower(g.Name)) {
			return true
		}
	}
	return false
}
