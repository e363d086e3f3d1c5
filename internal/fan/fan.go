package fan

import (
	"context"
	"fmt"
)

// Mode is how a channel's speed is decided.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// ParseMode validates a mode sent by a client.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeManual:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unsupported fan mode %q (want auto or manual)", s)
	}
}

// Channel is one fan header.
type Channel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SpeedPercent int    `json:"speedPercent"`
	RPM          *int   `json:"rpm,omitempty"`
	Mode         Mode   `json:"mode,omitempty"`
	Controllable bool   `json:"controllable"`
}

// Controller groups the channels of one chip.
type Controller struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Channels []*Channel `json:"channels"`
}

// Overview is the /fans payload.
type Overview struct {
	Available     bool          `json:"available"`
	Controllers   []*Controller `json:"controllers"`
	TotalChannels int           `json:"totalChannels"`
}

// Channel finds a channel by controller and channel id.
func (o *Overview) Channel(controllerID, channelID string) *Channel {
	for _, ctrl := range o.Controllers {
		if ctrl.ID != controllerID {
			continue
		}
		for _, ch := range ctrl.Channels {
			if ch.ID == channelID {
				return ch
			}
		}
	}
	return nil
}

func (o *Overview) recount() {
	o.TotalChannels = 0
	for _, ctrl := range o.Controllers {
		o.TotalChannels += len(ctrl.Channels)
	}
	o.Available = o.TotalChannels > 0
}

// Reader reads fan state. It never changes fan speeds.
type Reader interface {
	GetFans(ctx context.Context) (*Overview, error)
}

// NewReader creates a new fan reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}

// pwmPercent converts a 0-255 PWM duty value to percent.
func pwmPercent(pwm int) int {
	if pwm < 0 {
		return 0
	}
	if pwm > 255 {
		pwm = 255
	}
	return (pwm * 100) / 255
}
