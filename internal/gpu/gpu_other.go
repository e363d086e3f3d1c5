//go:build !windows

package gpu

import "context"

// SMIReader reads NVIDIA adapters through nvidia-smi.
type SMIReader struct{}

func newPlatformReader() Reader {
	return &SMIReader{}
}

func (r *SMIReader) GetInfo(ctx context.Context) ([]*Info, error) {
	log, err := querySMI(ctx)
	if err != nil {
		return []*Info{}, nil
	}
	return log.adapters(), nil
}

func (r *SMIReader) GetProcesses(ctx context.Context) ([]*Process, error) {
	log, err := querySMI(ctx)
	if err != nil {
		return []*Process{}, nil
	}
	return log.processes(), nil
}
