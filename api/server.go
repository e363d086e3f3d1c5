package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/CristiGvl/cascade-hwmon/internal/cpu"
	"github.com/CristiGvl/cascade-hwmon/internal/disk"
	"github.com/CristiGvl/cascade-hwmon/internal/fan"
	"github.com/CristiGvl/cascade-hwmon/internal/gpu"
	"github.com/CristiGvl/cascade-hwmon/internal/memory"
	"github.com/CristiGvl/cascade-hwmon/internal/network"
	"github.com/CristiGvl/cascade-hwmon/internal/platform"
	"github.com/CristiGvl/cascade-hwmon/internal/temps"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Prefix is where the Cascade API is mounted.
const Prefix = "/api/v1"

// Version is reported by /health.
const Version = "1.0.0"

//go:embed fixtures/default.json
var defaultFixtures []byte

// Options configures a stub server.
type Options struct {
	// Live serves sensor endpoints from this machine instead of fixtures.
	Live bool
	// Fixtures replaces the embedded fixture document (path -> payload).
	Fixtures []byte
	// AccessLog enables fiber's request logger.
	AccessLog bool
	Logger    *zap.Logger
}

// Request is one request the server received.
type Request struct {
	Method      string
	Path        string
	Accept      string
	ContentType string
	Body        []byte
}

type override struct {
	status int
	body   []byte
}

type readers struct {
	cpu     cpu.Reader
	gpu     gpu.Reader
	memory  memory.Reader
	disk    disk.Reader
	network network.Reader
	temps   temps.Reader
	fan     fan.Reader
}

// Server is a Cascade-compatible API server for development and tests.
// It never touches hardware: control endpoints only change in-memory state.
type Server struct {
	app      *fiber.App
	logger   *zap.Logger
	live     bool
	started  time.Time
	fixtures map[string]json.RawMessage
	readers  readers
	state    *state

	mu        sync.Mutex
	overrides map[string]override
	requests  []Request
}

// NewServer creates a new API server
func NewServer(opts Options) (*Server, error) {
	if opts.Live {
		if err := platform.ValidateSupport(); err != nil {
			return nil, err
		}
	}

	raw := opts.Fixtures
	if raw == nil {
		raw = defaultFixtures
	}
	var fixtures map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	st, err := newState(fixtures)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ServerHeader:          "cascade-stub",
		AppName:               "Cascade stub " + Version,
	})

	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	server := &Server{
		app:       app,
		logger:    log,
		live:      opts.Live,
		started:   time.Now(),
		fixtures:  fixtures,
		state:     st,
		overrides: make(map[string]override),
	}
	if opts.Live {
		server.readers = readers{
			cpu:     cpu.NewReader(),
			gpu:     gpu.NewReader(),
			memory:  memory.NewReader(),
			disk:    disk.NewReader(),
			network: network.NewReader(),
			temps:   temps.NewReader(),
			fan:     fan.NewReader(),
		}
	}

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group(Prefix, s.record, s.applyOverride)

	api.Get("/health", s.healthCheck)
	api.Get("/status", s.fixture("/status"))
	api.Get("/snapshot", s.getSnapshot)
	api.Get("/snapshot/live", s.getSnapshot)

	api.Get("/cpu", s.getCPU)
	api.Get("/cpu/sensors", s.fixture("/cpu/sensors"))
	api.Get("/cpu/sensors/cores", s.fixture("/cpu/sensors/cores"))
	api.Get("/cpu/sensors/temperatures", s.fixture("/cpu/sensors/temperatures"))
	api.Get("/cpu/sensors/frequencies", s.fixture("/cpu/sensors/frequencies"))
	api.Get("/cpu/sensors/power", s.fixture("/cpu/sensors/power"))
	api.Get("/cpu/sensors/throttling", s.fixture("/cpu/sensors/throttling"))

	api.Get("/gpu", s.getGPU)
	api.Get("/gpu/all", s.getAllGPUs)
	api.Get("/gpu/processes", s.getGPUProcesses)

	api.Get("/memory", s.getMemory)
	api.Get("/disks", s.getDisks)
	api.Get("/smart", s.fixture("/smart"))
	api.Get("/smart/failing", s.getFailingDisks)
	api.Get("/network", s.getNetwork)

	api.Get("/mainboard", s.fixture("/mainboard"))
	api.Get("/mainboard/voltages", s.fixture("/mainboard/voltages"))
	api.Get("/mainboard/vrm", s.fixture("/mainboard/vrm"))
	api.Get("/mainboard/chipset", s.fixture("/mainboard/chipset"))

	api.Get("/fans", s.getFans)
	api.Get("/fans/controllers", s.getFanControllers)
	api.Post("/fans/controllers/:controller/channels/:channel/speed", s.setFanSpeed)
	api.Post("/fans/controllers/:controller/channels/:channel/mode", s.setFanMode)

	api.Get("/advanced", s.fixture("/advanced"))
	api.Get("/advanced/pcie", s.fixture("/advanced/pcie"))
	api.Get("/advanced/thermal-zones", s.fixture("/advanced/thermal-zones"))

	api.Get("/inferred", s.fixture("/inferred"))
	api.Get("/inferred/thermal-headroom", s.fixture("/inferred/thermal-headroom"))
	api.Get("/inferred/efficiency", s.fixture("/inferred/efficiency"))
	api.Get("/inferred/bottleneck", s.fixture("/inferred/bottleneck"))
	api.Get("/inferred/workload", s.fixture("/inferred/workload"))
	api.Get("/inferred/health", s.fixture("/inferred/health"))

	api.Get("/monitors", s.fixture("/monitors"))
	api.Get("/monitors/sources", s.fixture("/monitors/sources"))
	api.Get("/monitors/temperatures", s.getTemperatures)
	api.Get("/monitors/critical", s.sensorsWithStatus(temps.StatusCritical))
	api.Get("/monitors/warnings", s.sensorsWithStatus(temps.StatusWarning))

	api.Get("/alerts", s.getAlerts)
	api.Post("/alerts", s.createAlert)

	api.Get("/ai/status", s.getAIStatus)
	api.Get("/ai/analysis", s.fixture("/ai/analysis"))
	api.Get("/ai/actions", s.fixture("/ai/actions"))
	api.Post("/ai/action", s.executeAction)

	api.Get("/ai/control/power-profiles", s.getPowerProfiles)
	api.Post("/ai/control/power-profiles/:id", s.setPowerProfile)
	api.Get("/ai/control/brightness", s.getBrightness)
	api.Post("/ai/control/brightness", s.setBrightness)
	api.Post("/ai/control/process/:pid", s.killProcess)
}

// Start starts the API server
func (s *Server) Start(address string) error {
	s.logger.Info("stub server listening", zap.String("address", address), zap.Bool("live", s.live))
	return s.app.Listen(address)
}

// Serve serves on an existing listener, typically 127.0.0.1:0 in tests.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("stub server listening", zap.Stringer("address", ln.Addr()), zap.Bool("live", s.live))
	return s.app.Listener(ln)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Override forces the response for method and path (relative to Prefix).
// A nil body sends an empty response.
func (s *Server) Override(method, path string, status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[routeKey(method, path)] = override{status: status, body: body}
}

// ClearOverrides removes every forced response.
func (s *Server) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]override)
}

// Requests returns the requests received so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (s *Server) record(c *fiber.Ctx) error {
	// fiber reuses request buffers after the handler returns.
	req := Request{
		Method:      utils.CopyString(c.Method()),
		Path:        utils.CopyString(c.Path()),
		Accept:      utils.CopyString(c.Get(fiber.HeaderAccept)),
		ContentType: utils.CopyString(c.Get(fiber.HeaderContentType)),
		Body:        append([]byte(nil), c.Body()...),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	return c.Next()
}

func (s *Server) applyOverride(c *fiber.Ctx) error {
	key := routeKey(c.Method(), strings.TrimPrefix(c.Path(), Prefix))

	s.mu.Lock()
	o, ok := s.overrides[key]
	s.mu.Unlock()

	if !ok {
		return c.Next()
	}

	c.Status(o.status)
	if len(o.body) == 0 {
		return nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(o.body)
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"uptime":    time.Since(s.started).Seconds(),
		"version":   Version,
		"platform":  platform.Describe(),
		"live":      s.live,
	})
}
