package network

import (
	"context"
	"slices"
	"sync"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Interface is one NIC in the /network payload. Speeds are bytes per second.
type Interface struct {
	Name      string   `json:"name"`
	MAC       string   `json:"mac,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	Up        bool     `json:"up"`
	RxBytes   uint64   `json:"rxBytes"`
	TxBytes   uint64   `json:"txBytes"`
	RxSpeed   float64  `json:"rxSpeed"`
	TxSpeed   float64  `json:"txSpeed"`
}

// Info is the /network payload.
type Info struct {
	Interfaces []*Interface `json:"interfaces"`
	RxBytes    uint64       `json:"rxBytes"`
	TxBytes    uint64       `json:"txBytes"`
	RxSpeed    float64      `json:"rxSpeed"`
	TxSpeed    float64      `json:"txSpeed"`
}

// Reader interface for network monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

type counters struct {
	rx, tx uint64
}

// RateReader derives speeds from the counter delta between two calls.
// The first call reports zero speeds.
type RateReader struct {
	mu       sync.Mutex
	last     map[string]counters
	lastTime time.Time
	now      func() time.Time
}

// NewReader creates a network reader
func NewReader() Reader {
	return &RateReader{now: time.Now}
}

func (r *RateReader) GetInfo(ctx context.Context) (*Info, error) {
	stats, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]psnet.InterfaceStat)
	if ifaces, err := psnet.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			meta[iface.Name] = iface
		}
	}

	current := make(map[string]counters, len(stats))
	for _, s := range stats {
		current[s.Name] = counters{rx: s.BytesRecv, tx: s.BytesSent}
	}

	r.mu.Lock()
	now := r.now()
	elapsed := 0.0
	if !r.lastTime.IsZero() {
		elapsed = now.Sub(r.lastTime).Seconds()
	}
	previous := r.last
	r.last = current
	r.lastTime = now
	r.mu.Unlock()

	info := &Info{Interfaces: make([]*Interface, 0, len(stats))}
	for _, s := range stats {
		iface := &Interface{
			Name:    s.Name,
			RxBytes: s.BytesRecv,
			TxBytes: s.BytesSent,
		}
		if prev, ok := previous[s.Name]; ok {
			iface.RxSpeed = rate(prev.rx, s.BytesRecv, elapsed)
			iface.TxSpeed = rate(prev.tx, s.BytesSent, elapsed)
		}
		if m, ok := meta[s.Name]; ok {
			iface.MAC = m.HardwareAddr
			iface.Up = slices.Contains(m.Flags, "up")
			for _, addr := range m.Addrs {
				iface.Addresses = append(iface.Addresses, addr.Addr)
			}
		}

		info.Interfaces = append(info.Interfaces, iface)
		info.RxBytes += iface.RxBytes
		info.TxBytes += iface.TxBytes
		info.RxSpeed += iface.RxSpeed
		info.TxSpeed += iface.TxSpeed
	}

	return info, nil
}

// rate returns bytes per second, or 0 when the counter wrapped or no time passed.
func rate(prev, cur uint64, elapsed float64) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed
}
