package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CristiGvl/cascade-hwmon/internal/fan"
	"github.com/CristiGvl/cascade-hwmon/internal/gpu"
	"github.com/CristiGvl/cascade-hwmon/internal/temps"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

func readContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func (s *Server) fixture(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return s.sendFixture(c, path)
	}
}

func (s *Server) sendFixture(c *fiber.Ctx, path string) error {
	raw, ok := s.fixtures[path]
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "no data for " + path})
	}
	return sendRaw(c, raw)
}

func sendRaw(c *fiber.Ctx, raw []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (s *Server) rawFixture(path, fallback string) json.RawMessage {
	if raw, ok := s.fixtures[path]; ok {
		return raw
	}
	return json.RawMessage(fallback)
}

// fixtureField returns a nested fixture value, or fallback when it is missing.
func (s *Server) fixtureField(path, field, fallback string) json.RawMessage {
	res := gjson.GetBytes(s.fixtures[path], field)
	if !res.Exists() {
		return json.RawMessage(fallback)
	}
	return json.RawMessage(res.Raw)
}

// CPU endpoint
func (s *Server) getCPU(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/cpu")
	}

	ctx, cancel := readContext()
	defer cancel()

	info, err := s.readers.cpu.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if info.Temperature == nil {
		if t, err := s.readers.temps.GetInfo(ctx); err == nil {
			info.Temperature = t.CPUPackage()
		}
	}

	return c.JSON(info)
}

// GPU endpoints. /gpu is null when the machine has no adapter.
func (s *Server) getGPU(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/gpu")
	}

	gpus, err := s.liveGPUs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if len(gpus) == 0 {
		return sendRaw(c, []byte("null"))
	}

	return c.JSON(gpus[0])
}

func (s *Server) getAllGPUs(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/gpu/all")
	}

	gpus, err := s.liveGPUs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(gpus)
}

func (s *Server) liveGPUs() ([]*gpu.Info, error) {
	ctx, cancel := readContext()
	defer cancel()
	return s.readers.gpu.GetInfo(ctx)
}

func (s *Server) getGPUProcesses(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/gpu/processes")
	}

	ctx, cancel := readContext()
	defer cancel()

	procs, err := s.readers.gpu.GetProcesses(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(procs)
}

// Memory endpoint
func (s *Server) getMemory(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/memory")
	}

	ctx, cancel := readContext()
	defer cancel()

	info, err := s.readers.memory.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(info)
}

// Disk endpoint
func (s *Server) getDisks(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/disks")
	}

	ctx, cancel := readContext()
	defer cancel()

	disks, err := s.readers.disk.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(disks)
}

func (s *Server) getFailingDisks(c *fiber.Ctx) error {
	disks := gjson.GetBytes(s.fixtures["/smart"], "disks").Array()
	failing := lo.FilterMap(disks, func(d gjson.Result, _ int) (json.RawMessage, bool) {
		return json.RawMessage(d.Raw), d.Get("healthStatus").String() == "failing"
	})

	return c.JSON(failing)
}

// Network endpoint
func (s *Server) getNetwork(c *fiber.Ctx) error {
	if !s.live {
		return s.sendFixture(c, "/network")
	}

	ctx, cancel := readContext()
	defer cancel()

	info, err := s.readers.network.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(info)
}

// getSnapshot serves both /snapshot and /snapshot/live. The stub has no
// poll cache, so the two are always equally fresh.
func (s *Server) getSnapshot(c *fiber.Ctx) error {
	if !s.live {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().UnixMilli(),
			"cpu":       s.rawFixture("/cpu", "null"),
			"gpu":       s.rawFixture("/gpu", "null"),
			"memory":    s.rawFixture("/memory", "null"),
			"disks":     s.rawFixture("/disks", "[]"),
			"network":   s.rawFixture("/network", "null"),
		})
	}

	ctx, cancel := readContext()
	defer cancel()

	cpuInfo, err := s.readers.cpu.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	memInfo, err := s.readers.memory.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	snapshot := fiber.Map{
		"timestamp": time.Now().UnixMilli(),
		"cpu":       cpuInfo,
		"memory":    memInfo,
	}
	// Optional sections are left out rather than failing the whole snapshot.
	if gpus, err := s.readers.gpu.GetInfo(ctx); err == nil && len(gpus) > 0 {
		snapshot["gpu"] = gpus[0]
	}
	if disks, err := s.readers.disk.GetInfo(ctx); err == nil {
		snapshot["disks"] = disks
	}
	if netInfo, err := s.readers.network.GetInfo(ctx); err == nil {
		snapshot["network"] = netInfo
	}

	return c.JSON(snapshot)
}

// Fan endpoints
func (s *Server) fanOverview() (*fan.Overview, error) {
	overview := &fan.Overview{}
	if s.live {
		ctx, cancel := readContext()
		defer cancel()

		var err error
		if overview, err = s.readers.fan.GetFans(ctx); err != nil {
			return nil, err
		}
	} else if raw, ok := s.fixtures["/fans"]; ok {
		if err := json.Unmarshal(raw, overview); err != nil {
			return nil, err
		}
	}
	if overview.Controllers == nil {
		overview.Controllers = []*fan.Controller{}
	}

	s.state.applyFans(overview)
	return overview, nil
}

func (s *Server) getFans(c *fiber.Ctx) error {
	overview, err := s.fanOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(overview)
}

func (s *Server) getFanControllers(c *fiber.Ctx) error {
	overview, err := s.fanOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(overview.Controllers)
}

// Temperature endpoints
func (s *Server) sensors(field string) ([]*temps.Unified, error) {
	if s.live {
		ctx, cancel := readContext()
		defer cancel()

		info, err := s.readers.temps.GetInfo(ctx)
		if err != nil {
			return nil, err
		}
		return info.Unified(), nil
	}

	var out []*temps.Unified
	if err := json.Unmarshal(s.fixtureField("/monitors", field, "[]"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Server) getTemperatures(c *fiber.Ctx) error {
	list, err := s.sensors("temperatures")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if list == nil {
		list = []*temps.Unified{}
	}

	return c.JSON(list)
}

func (s *Server) sensorsWithStatus(status string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.sensors("sensors")
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(lo.Filter(list, func(u *temps.Unified, _ int) bool {
			return u.Status == status
		}))
	}
}
