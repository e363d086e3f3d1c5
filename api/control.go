package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/CristiGvl/cascade-hwmon/internal/fan"
	"github.com/CristiGvl/cascade-hwmon/internal/temps"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Fan control endpoints. Changes are kept in memory and overlaid on reads.
func (s *Server) setFanSpeed(c *fiber.Ctx) error {
	speed := gjson.GetBytes(c.Body(), "speed")
	if speed.Type != gjson.Number {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "speed must be a number"})
	}
	value, err := cast.ToIntE(speed.Value())
	if err != nil || value < 0 || value > 100 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "speed must be between 0 and 100"})
	}

	return s.updateFan(c, func(set *channelSetting) {
		set.speed = &value
		set.mode = fan.ModeManual
	})
}

func (s *Server) setFanMode(c *fiber.Ctx) error {
	mode, err := fan.ParseMode(gjson.GetBytes(c.Body(), "mode").String())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return s.updateFan(c, func(set *channelSetting) {
		set.mode = mode
	})
}

func (s *Server) updateFan(c *fiber.Ctx, update func(*channelSetting)) error {
	controllerID, channelID := c.Params("controller"), c.Params("channel")

	overview, err := s.fanOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	ch := overview.Channel(controllerID, channelID)
	if ch == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "fan channel not found"})
	}
	if !ch.Controllable {
		return c.JSON(fiber.Map{"success": false, "message": "channel is not controllable"})
	}

	s.state.updateFan(controllerID, channelID, update)
	s.logger.Debug("fan channel updated",
		zap.String("controller", controllerID),
		zap.String("channel", channelID))

	return c.JSON(fiber.Map{"success": true})
}

// Alert endpoints
func (s *Server) getAlerts(c *fiber.Ctx) error {
	return c.JSON(s.state.listAlerts())
}

func (s *Server) createAlert(c *fiber.Ctx) error {
	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil || fields == nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	for _, key := range []string{"name", "sensorPath", "condition"} {
		if cast.ToString(fields[key]) == "" {
			return c.Status(400).JSON(fiber.Map{"error": key + " is required"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(s.state.addAlert(fields))
}

// AI endpoints
func (s *Server) getAIStatus(c *fiber.Ctx) error {
	sensors, err := s.sensors("sensors")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	criticalCount := 0
	for _, u := range sensors {
		if u.Status == temps.StatusCritical {
			criticalCount++
		}
	}

	return c.JSON(fiber.Map{
		"timestamp": time.Now().UnixMilli(),
		"system": fiber.Map{
			"healthy":    criticalCount == 0,
			"alertCount": s.state.enabledAlerts(),
		},
		"summary": fiber.Map{
			"cpuLoad":           gjson.GetBytes(s.fixtures["/cpu"], "load").Float(),
			"memoryUsedPercent": gjson.GetBytes(s.fixtures["/memory"], "usedPercent").Float(),
			"criticalSensors":   criticalCount,
		},
		"capabilities": fiber.Map{
			"fanControl":     true,
			"powerProfiles":  true,
			"brightness":     true,
			"processControl": true,
		},
		"actions": s.fixtureField("/ai/actions", "actions", "[]"),
	})
}

func (s *Server) executeAction(c *fiber.Ctx) error {
	body := c.Body()
	action := gjson.GetBytes(body, "action").String()
	params := gjson.GetBytes(body, "params")

	switch action {
	case "set_power_profile":
		id := params.Get("profile").String()
		if !s.state.activateProfile(id) {
			return c.JSON(fiber.Map{"success": false, "message": "unknown power profile " + strconv.Quote(id)})
		}
		return c.JSON(fiber.Map{"success": true, "message": "power profile set to " + id})

	case "set_brightness":
		level, ok := brightnessLevel(params.Get("level"))
		if !ok {
			return c.JSON(fiber.Map{"success": false, "message": "level must be between 0 and 100"})
		}
		s.state.setBrightness(level)
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("brightness set to %d", level)})

	case "kill_process":
		pid, err := cast.ToIntE(params.Get("pid").Value())
		if err != nil || pid <= 0 {
			return c.JSON(fiber.Map{"success": false, "message": "pid must be a positive integer"})
		}
		return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("process %d terminated (simulated)", pid)})

	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "unknown action " + strconv.Quote(action)})
	}
}

// Control endpoints
func (s *Server) getPowerProfiles(c *fiber.Ctx) error {
	return c.JSON(s.state.listProfiles())
}

func (s *Server) setPowerProfile(c *fiber.Ctx) error {
	if !s.state.activateProfile(c.Params("id")) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "unknown power profile"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) getBrightness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"brightness": s.state.getBrightness()})
}

func (s *Server) setBrightness(c *fiber.Ctx) error {
	level, ok := brightnessLevel(gjson.GetBytes(c.Body(), "level"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "level must be between 0 and 100"})
	}

	s.state.setBrightness(level)
	return c.JSON(fiber.Map{"success": true, "brightness": level})
}

func brightnessLevel(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	level, err := cast.ToIntE(v.Value())
	if err != nil || level < 0 || level > 100 {
		return 0, false
	}
	return level, true
}

// killProcess never signals anything; the stub only acknowledges the request.
func (s *Server) killProcess(c *fiber.Ctx) error {
	pid, err := strconv.Atoi(c.Params("pid"))
	if err != nil || pid <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "invalid pid"})
	}
	force := gjson.GetBytes(c.Body(), "force").Bool()

	s.logger.Debug("process kill requested", zap.Int("pid", pid), zap.Bool("force", force))
	return c.JSON(fiber.Map{"success": true, "pid": pid, "force": force})
}
