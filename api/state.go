package api

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/CristiGvl/cascade-hwmon/internal/fan"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

type powerProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// channelSetting is a fan change requested through the API.
type channelSetting struct {
	speed *int
	mode  fan.Mode
}

// state holds everything the control endpoints can change.
type state struct {
	mu         sync.Mutex
	alerts     []map[string]any
	profiles   []*powerProfile
	brightness int
	fans       map[string]channelSetting
}

func newState(fixtures map[string]json.RawMessage) (*state, error) {
	st := &state{
		alerts:   []map[string]any{},
		profiles: []*powerProfile{},
		fans:     make(map[string]channelSetting),
	}

	if raw, ok := fixtures["/alerts"]; ok {
		if err := json.Unmarshal(raw, &st.alerts); err != nil {
			return nil, fmt.Errorf("invalid /alerts fixture: %w", err)
		}
	}
	if raw, ok := fixtures["/ai/control/power-profiles"]; ok {
		if err := json.Unmarshal(raw, &st.profiles); err != nil {
			return nil, fmt.Errorf("invalid power profile fixture: %w", err)
		}
	}
	if raw, ok := fixtures["/ai/control/brightness"]; ok {
		st.brightness = int(gjson.GetBytes(raw, "brightness").Int())
	}

	return st, nil
}

func (st *state) listAlerts() []map[string]any {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]map[string]any, len(st.alerts))
	for i, a := range st.alerts {
		out[i] = maps.Clone(a)
	}
	return out
}

// addAlert stores a new rule, keeping any extra fields the client sent.
func (st *state) addAlert(fields map[string]any) map[string]any {
	alert := maps.Clone(fields)
	alert["id"] = uuid.NewString()
	if _, ok := alert["enabled"]; !ok {
		alert["enabled"] = true
	}

	st.mu.Lock()
	st.alerts = append(st.alerts, alert)
	st.mu.Unlock()

	return maps.Clone(alert)
}

func (st *state) enabledAlerts() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for _, a := range st.alerts {
		if enabled, ok := a["enabled"].(bool); ok && enabled {
			n++
		}
	}
	return n
}

func (st *state) listProfiles() []powerProfile {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]powerProfile, len(st.profiles))
	for i, p := range st.profiles {
		out[i] = *p
	}
	return out
}

// activateProfile makes id the only active profile.
func (st *state) activateProfile(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	found := false
	for _, p := range st.profiles {
		if p.ID == id {
			found = true
		}
	}
	if !found {
		return false
	}
	for _, p := range st.profiles {
		p.Active = p.ID == id
	}
	return true
}

func (st *state) getBrightness() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.brightness
}

func (st *state) setBrightness(level int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.brightness = level
}

func fanKey(controllerID, channelID string) string {
	return controllerID + "/" + channelID
}

func (st *state) updateFan(controllerID, channelID string, update func(*channelSetting)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := fanKey(controllerID, channelID)
	setting := st.fans[key]
	update(&setting)
	st.fans[key] = setting
}

// applyFans overlays requested changes on a freshly read overview.
func (st *state) applyFans(o *fan.Overview) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, ctrl := range o.Controllers {
		for _, ch := range ctrl.Channels {
			setting, ok := st.fans[fanKey(ctrl.ID, ch.ID)]
			if !ok {
				continue
			}
			if setting.speed != nil {
				ch.SpeedPercent = *setting.speed
			}
			if setting.mode != "" {
				ch.Mode = setting.mode
			}
		}
	}
}
