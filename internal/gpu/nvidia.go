package gpu

import (
	"context"
	"encoding/xml"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const mib = 1024 * 1024

// smiLog is the subset of `nvidia-smi -q -x` we read.
type smiLog struct {
	GPUs []struct {
		ProductName string `xml:"product_name"`
		FanSpeed    string `xml:"fan_speed"`
		MemoryInfo  struct {
			Total string `xml:"total"`
			Used  string `xml:"used"`
		} `xml:"fb_memory_usage"`
		Utilization struct {
			GPU    string `xml:"gpu_util"`
			Memory string `xml:"memory_util"`
		} `xml:"utilization"`
		Temperature struct {
			Current string `xml:"gpu_temp"`
		} `xml:"temperature"`
		PowerReadings struct {
			PowerDraw string `xml:"power_draw"`
		} `xml:"power_readings"`
		Processes struct {
			Items []struct {
				PID        string `xml:"pid"`
				Name       string `xml:"process_name"`
				UsedMemory string `xml:"used_memory"`
			} `xml:"process_info"`
		} `xml:"processes"`
	} `xml:"gpu"`
}

func querySMI(ctx context.Context) (*smiLog, error) {
	output, err := exec.CommandContext(ctx, "nvidia-smi", "-q", "-x").Output()
	if err != nil {
		return nil, fmt.Errorf("nvidia-smi not available: %w", err)
	}
	return parseSMI(output)
}

func parseSMI(data []byte) (*smiLog, error) {
	var log smiLog
	if err := xml.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse nvidia-smi output: %w", err)
	}
	return &log, nil
}

func (l *smiLog) adapters() []*Info {
	gpus := make([]*Info, 0, len(l.GPUs))
	for _, g := range l.GPUs {
		info := &Info{
			Name:              g.ProductName,
			Vendor:            NVIDIA,
			Temperature:       unitFloat(g.Temperature.Current, "C"),
			UtilizationGPU:    unitFloat(g.Utilization.GPU, "%"),
			UtilizationMemory: unitFloat(g.Utilization.Memory, "%"),
			MemoryTotal:       mibBytes(g.MemoryInfo.Total),
			MemoryUsed:        mibBytes(g.MemoryInfo.Used),
			PowerDraw:         unitFloat(g.PowerReadings.PowerDraw, "W"),
		}
		if fan := unitFloat(g.FanSpeed, "%"); fan != nil {
			v := int(*fan)
			info.FanSpeed = &v
		}
		gpus = append(gpus, info)
	}
	return gpus
}

func (l *smiLog) processes() []*Process {
	procs := []*Process{}
	for _, g := range l.GPUs {
		for _, p := range g.Processes.Items {
			pid, err := strconv.Atoi(strings.TrimSpace(p.PID))
			if err != nil {
				continue
			}
			procs = append(procs, &Process{
				PID:        pid,
				Name:       strings.TrimSpace(p.Name),
				UsedMemory: mibBytes(p.UsedMemory),
			})
		}
	}
	return procs
}

// unitFloat parses values like "61 C" or "N/A".
func unitFloat(s, unit string) *float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), unit))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func mibBytes(s string) *int64 {
	v := unitFloat(s, "MiB")
	if v == nil {
		return nil
	}
	b := int64(*v) * mib
	return &b
}
