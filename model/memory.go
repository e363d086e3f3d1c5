package model

// Memory values are in bytes.
type Memory struct {
	Payload `json:"-"`

	Total       int64   `json:"total"`
	Used        int64   `json:"used"`
	Free        int64   `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
	SwapTotal   int64   `json:"swapTotal"`
	SwapUsed    int64   `json:"swapUsed"`
}

// Network aggregates every interface. Speeds are bytes per second.
type Network struct {
	Payload `json:"-"`

	Interfaces []NetworkInterface `json:"interfaces"`
	RxBytes    int64              `json:"rxBytes"`
	TxBytes    int64              `json:"txBytes"`
	RxSpeed    float64            `json:"rxSpeed"`
	TxSpeed    float64            `json:"txSpeed"`
}

type NetworkInterface struct {
	Name      string   `json:"name"`
	MAC       string   `json:"mac,omitempty"`
	Addresses []string `json:"addresses,omitempty"`
	Up        bool     `json:"up"`
	RxBytes   int64    `json:"rxBytes"`
	TxBytes   int64    `json:"txBytes"`
	RxSpeed   float64  `json:"rxSpeed"`
	TxSpeed   float64  `json:"txSpeed"`
}
