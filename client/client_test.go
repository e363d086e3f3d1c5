package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/CristiGvl/cascade-hwmon/api"
	"github.com/CristiGvl/cascade-hwmon/client"
	"github.com/CristiGvl/cascade-hwmon/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startStub(t *testing.T) (*api.Server, *client.Client) {
	t.Helper()

	srv, err := api.NewServer(api.Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	c := client.New(client.Config{
		Host:    "127.0.0.1",
		Port:    ln.Addr().(*net.TCPAddr).Port,
		Timeout: 5 * time.Second,
	}, client.WithLogger(zaptest.NewLogger(t)))

	return srv, c
}

func lastRequest(t *testing.T, srv *api.Server) api.Request {
	t.Helper()
	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1]
}

func TestCPU(t *testing.T) {
	srv, c := startStub(t)

	cpu, err := c.CPU(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cpu)

	assert.Equal(t, 42.5, cpu.Load)
	require.NotNil(t, cpu.Temperature)
	assert.Equal(t, 61.0, *cpu.Temperature)
	assert.Equal(t, 8, cpu.Cores)

	// The same values are reachable through the raw payload.
	assert.Equal(t, json.Number("42.5"), cpu.Get("load"))
	assert.True(t, cpu.Has("brand"))
	assert.Equal(t, "Ryzen 7 5800X", cpu.Lookup("brand").String())
	assert.Contains(t, cpu.Keys(), "physicalCores")

	req := lastRequest(t, srv)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/api/v1/cpu", req.Path)
	assert.Equal(t, "application/json", req.Accept)
	assert.Empty(t, req.ContentType)
}

func TestStatusServiceUnavailable(t *testing.T) {
	srv, c := startStub(t)
	srv.Override("GET", "/status", 503, []byte(`{"error":"poller stopped"}`))

	doc, err := c.Status(context.Background())
	require.Error(t, err)
	assert.Nil(t, doc)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, "Service Unavailable", apiErr.Reason)
	assert.Equal(t, "/status", apiErr.Path)
	assert.JSONEq(t, `{"error":"poller stopped"}`, string(apiErr.Body))

	assert.True(t, errors.Is(err, client.ErrCascade))
	assert.True(t, client.IsAPIError(err))
	assert.False(t, client.IsConnectionError(err))
	assert.Equal(t, 503, client.StatusCode(err))
}

func TestStatusDocument(t *testing.T) {
	_, c := startStub(t)

	doc, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, doc.Get("running"))
	assert.Equal(t, "smart", doc.Lookup("sources.1").String())
}

func TestSetFanSpeed(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	ok, err := c.SetFanSpeed(ctx, "1", "2", 75)
	require.NoError(t, err)
	assert.True(t, ok)

	req := lastRequest(t, srv)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/v1/fans/controllers/1/channels/2/speed", req.Path)
	assert.Equal(t, "application/json", req.ContentType)
	assert.Equal(t, "application/json", req.Accept)
	assert.JSONEq(t, `{"speed":75}`, string(req.Body))

	fans, err := c.Fans(ctx)
	require.NoError(t, err)
	require.Len(t, fans.Controllers, 1)
	ch := fans.Controllers[0].Channels[1]
	assert.Equal(t, "2", ch.ID)
	assert.Equal(t, 75, ch.SpeedPercent)
	assert.Equal(t, "manual", ch.Mode)
	assert.Equal(t, 3, fans.TotalChannels)
}

func TestSetFanSpeedRejected(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	// The pump channel is read-only: 200 with success false.
	ok, err := c.SetFanSpeed(ctx, "1", "3", 50)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.SetFanSpeed(ctx, "9", "1", 50)
	assert.Equal(t, 404, client.StatusCode(err))

	_, err = c.SetFanSpeed(ctx, "1", "1", 150)
	assert.Equal(t, 400, client.StatusCode(err))
}

func TestSetFanMode(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	ok, err := c.SetFanMode(ctx, "1", "1", "manual")
	require.NoError(t, err)
	assert.True(t, ok)

	controllers, err := c.FanControllers(ctx)
	require.NoError(t, err)
	require.Len(t, controllers, 1)
	assert.Equal(t, "manual", controllers[0].Channels[0].Mode)
	assert.Equal(t, "Nuvoton NCT6798D", controllers[0].Name)

	_, err = c.SetFanMode(ctx, "1", "1", "turbo")
	assert.True(t, client.IsAPIError(err))
}

func TestConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	c := client.New(client.Config{Host: "127.0.0.1", Port: port, Timeout: time.Second})

	_, err = c.Health(context.Background())
	require.Error(t, err)

	var connErr *client.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "GET", connErr.Method)
	assert.False(t, client.IsAPIError(err))
	assert.True(t, errors.Is(err, client.ErrCascade))
	assert.Equal(t, 0, client.StatusCode(err))

	_, err = c.SetBrightness(context.Background(), 10)
	assert.True(t, client.IsConnectionError(err))
}

func TestHealth(t *testing.T) {
	_, c := startStub(t)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, api.Version, health.Version)
	assert.NotZero(t, health.Timestamp)
	assert.True(t, health.Has("platform"))
}

func TestListsKeepServerOrder(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	disks, err := c.Disks(ctx)
	require.NoError(t, err)
	require.Len(t, disks, 2)
	assert.Equal(t, "/dev/nvme0n1p2", disks[0].Name)
	assert.Equal(t, "/dev/sda1", disks[1].Name)
	require.NotNil(t, disks[0].Temperature)
	assert.Nil(t, disks[1].Temperature)

	alerts, err := c.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "CPU hot", alerts[0].Name)
	assert.Equal(t, "Disk hot", alerts[1].Name)
	assert.False(t, alerts[1].Enabled)
}

func TestCreateAlert(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	alert, err := c.CreateAlert(ctx, client.AlertRequest{
		Name:       "GPU hot",
		SensorPath: "gpu/edge",
		Condition:  "> 80",
		Extra:      map[string]any{"threshold": 80, "name": "ignored"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, "GPU hot", alert.Name)
	assert.True(t, alert.Enabled)
	assert.Equal(t, json.Number("80"), alert.Get("threshold"))

	req := lastRequest(t, srv)
	assert.JSONEq(t, `{"name":"GPU hot","sensorPath":"gpu/edge","condition":"> 80","threshold":80}`, string(req.Body))

	alerts, err := c.Alerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, alert.ID, alerts[2].ID)

	_, err = c.CreateAlert(ctx, client.AlertRequest{Name: "incomplete"})
	assert.Equal(t, 400, client.StatusCode(err))
}

func TestSnapshot(t *testing.T) {
	_, c := startStub(t)

	for _, get := range []func(context.Context) (*model.Snapshot, error){c.Snapshot, c.LiveSnapshot} {
		snap, err := get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42.5, snap.CPU.Load)
		require.NotNil(t, snap.GPU)
		assert.Equal(t, "NVIDIA GeForce RTX 3080", snap.GPU.Name)
		assert.Len(t, snap.Disks, 2)
		require.NotNil(t, snap.Network)
		assert.Len(t, snap.Network.Interfaces, 2)
		assert.NotZero(t, snap.Timestamp)
	}
}

func TestCPUSensors(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	sensors, err := c.CPUSensors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, sensors.LogicalCores)
	require.Len(t, sensors.Cores, 2)
	assert.Equal(t, 4.1, sensors.Cores[1].Frequency)
	require.NotNil(t, sensors.Package.TemperatureTjMax)
	assert.Equal(t, 90.0, *sensors.Package.TemperatureTjMax)
	assert.Equal(t, 62.5, sensors.Lookup("cores.1.temperature").Float())

	cores, err := c.CPUCores(ctx)
	require.NoError(t, err)
	assert.Len(t, cores, 2)

	temps, err := c.CPUTemperatures(ctx)
	require.NoError(t, err)
	require.Len(t, temps, 2)
	assert.Equal(t, 1, temps[1].Core)

	freqs, err := c.CPUFrequencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.45, freqs[0].Frequency)

	power, err := c.CPUPower(ctx)
	require.NoError(t, err)
	require.NotNil(t, power.TDP)
	assert.Equal(t, 105.0, *power.TDP)
	assert.Nil(t, power.DRAMPower)

	throttling, err := c.CPUThrottling(ctx)
	require.NoError(t, err)
	assert.False(t, throttling.ThermalThrottling)
	require.NotNil(t, throttling.ThrottleCount)
}

func TestDevices(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	gpu, err := c.GPU(ctx)
	require.NoError(t, err)
	require.NotNil(t, gpu.MemoryTotal)
	assert.Equal(t, int64(10737418240), *gpu.MemoryTotal)

	gpus, err := c.AllGPUs(ctx)
	require.NoError(t, err)
	assert.Len(t, gpus, 1)

	procs, err := c.GPUProcesses(ctx)
	require.NoError(t, err)
	require.Len(t, procs, 2)
	assert.Equal(t, 4242, procs[0].PID)

	mem, err := c.Memory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 37.5, mem.UsedPercent)

	smart, err := c.SMART(ctx)
	require.NoError(t, err)
	assert.True(t, smart.Available)
	assert.Equal(t, 1, smart.HealthySummary.Failing)

	failing, err := c.FailingDisks(ctx)
	require.NoError(t, err)
	require.Len(t, failing, 1)
	assert.Equal(t, "/dev/sda", failing[0].Device)

	network, err := c.Network(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eth0", network.Interfaces[0].Name)
	assert.Equal(t, 125000.0, network.RxSpeed)
}

func TestMainboard(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	board, err := c.Mainboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2803", board.BIOSVersion)
	require.Len(t, board.Fans, 2)
	assert.Nil(t, board.Fans[1].PWM)

	volts, err := c.Voltages(ctx)
	require.NoError(t, err)
	require.Len(t, volts, 3)
	assert.Nil(t, volts[0].Nominal)

	vrm, err := c.VRM(ctx)
	require.NoError(t, err)
	require.NotNil(t, vrm)

	chipset, err := c.Chipset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AMD B550", chipset.Name)

	srv.Override("GET", "/mainboard/vrm", 200, []byte("null"))
	vrm, err = c.VRM(ctx)
	require.NoError(t, err)
	assert.Nil(t, vrm)

	advanced, err := c.Advanced(ctx)
	require.NoError(t, err)
	assert.Len(t, advanced.PCIeBandwidth, 2)

	links, err := c.PCIeBandwidth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, links[0].Lanes)

	zones, err := c.ThermalZones(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acpitz", zones[0].Name)
}

func TestInferredAndMonitors(t *testing.T) {
	_, c := startStub(t)
	ctx := context.Background()

	inferred, err := c.Inferred(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78, inferred.EfficiencyScore.Overall)
	assert.Equal(t, "good", inferred.HealthPrediction["overall"])

	headroom, err := c.ThermalHeadroom(ctx)
	require.NoError(t, err)
	assert.Equal(t, 29.0, headroom.CPU.Headroom)
	require.Len(t, headroom.GPU, 1)

	efficiency, err := c.Efficiency(ctx)
	require.NoError(t, err)
	require.NotNil(t, efficiency.GPU)

	bottleneck, err := c.Bottleneck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gpu", bottleneck.PrimaryBottleneck)

	workload, err := c.WorkloadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rendering", workload.Type)

	prediction, err := c.HealthPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "degraded", prediction.Lookup("components.storage").String())

	monitors, err := c.Monitors(ctx)
	require.NoError(t, err)
	assert.True(t, monitors.Sources.LMSensors)
	assert.Len(t, monitors.Sensors, 5)

	sources, err := c.MonitorSources(ctx)
	require.NoError(t, err)
	assert.True(t, sources.SMART)

	all, err := c.AllTemperatures(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	critical, err := c.CriticalSensors(ctx)
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, "board/vrm", critical[0].ID)

	warnings, err := c.WarningSensors(ctx)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "drive/sda", warnings[0].ID)
}

func TestControl(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	ok, err := c.SetPowerProfile(ctx, "performance")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{}`, string(lastRequest(t, srv).Body))

	profiles, err := c.PowerProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.False(t, profiles[0].Active)
	assert.True(t, profiles[1].Active)

	_, err = c.SetPowerProfile(ctx, "turbo")
	assert.Equal(t, 404, client.StatusCode(err))

	level, err := c.Brightness(ctx)
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, 70, *level)

	ok, err = c.SetBrightness(ctx, 30)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"level":30}`, string(lastRequest(t, srv).Body))

	level, err = c.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, *level)

	srv.Override("GET", "/ai/control/brightness", 200, []byte(`{}`))
	level, err = c.Brightness(ctx)
	require.NoError(t, err)
	assert.Nil(t, level)

	ok, err = c.KillProcess(ctx, 4242, true)
	require.NoError(t, err)
	assert.True(t, ok)
	req := lastRequest(t, srv)
	assert.Equal(t, "/api/v1/ai/control/process/4242", req.Path)
	assert.JSONEq(t, `{"force":true}`, string(req.Body))
}

func TestControlSuccessNeedsTrue(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	for _, body := range []string{`{"success":"true"}`, `{"success":1}`, `{}`, `[]`, ``} {
		srv.Override("POST", "/ai/control/brightness", 200, []byte(body))
		ok, err := c.SetBrightness(ctx, 10)
		require.NoError(t, err, body)
		assert.False(t, ok, body)
	}
}

func TestAI(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	status, err := c.AI.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.System.Healthy)
	assert.Equal(t, 1, status.System.AlertCount)
	assert.True(t, status.Capabilities["fanControl"])
	assert.Len(t, status.Actions, 3)

	analysis, err := c.AI.Analysis(ctx)
	require.NoError(t, err)
	assert.Len(t, analysis.Recommendations, 1)

	actions, err := c.AI.Actions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 3)
	assert.Equal(t, "set_power_profile", actions[0].ID)
	assert.Equal(t, "kill_process", actions[2].ID)

	result, err := c.AI.ExecuteAction(ctx, "set_brightness", map[string]any{"level": 55})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Message)

	level, err := c.Brightness(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55, *level)

	result, err = c.AI.ExecuteAction(ctx, "set_power_profile", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.JSONEq(t, `{"action":"set_power_profile","params":{}}`, string(lastRequest(t, srv).Body))

	_, err = c.AI.ExecuteAction(ctx, "reboot", nil)
	assert.Equal(t, 400, client.StatusCode(err))

	srv.Override("GET", "/ai/actions", 200, []byte(`{"items":[]}`))
	_, err = c.AI.Actions(ctx)
	require.Error(t, err)
	assert.False(t, client.IsAPIError(err))
	assert.True(t, errors.Is(err, client.ErrCascade))
}

func TestMalformedResponses(t *testing.T) {
	srv, c := startStub(t)
	ctx := context.Background()

	srv.Override("GET", "/cpu", 200, []byte(`not json`))
	_, err := c.CPU(ctx)
	require.Error(t, err)
	var plain *client.Error
	require.ErrorAs(t, err, &plain)
	assert.False(t, client.IsAPIError(err))
	assert.False(t, client.IsConnectionError(err))

	srv.Override("GET", "/cpu", 200, []byte(`[1, 2]`))
	_, err = c.CPU(ctx)
	require.ErrorAs(t, err, &plain)

	srv.Override("GET", "/disks", 200, []byte(`{"name":"sda"}`))
	_, err = c.Disks(ctx)
	require.ErrorAs(t, err, &plain)

	srv.Override("GET", "/disks", 200, []byte(`[{"name":"/dev/sda1"},null]`))
	_, err = c.Disks(ctx)
	require.ErrorAs(t, err, &plain)
	assert.Contains(t, err.Error(), "element 1")

	// A field of the wrong type does not fail the call.
	srv.Override("GET", "/cpu", 200, []byte(`{"load":"n/a","cores":8}`))
	cpu, err := c.CPU(ctx)
	require.NoError(t, err)
	assert.Zero(t, cpu.Load)
	assert.Equal(t, 8, cpu.Cores)
	assert.Equal(t, "n/a", cpu.Get("load"))

	srv.Override("GET", "/cpu", 200, nil)
	cpu, err = c.CPU(ctx)
	require.NoError(t, err)
	assert.Nil(t, cpu)

	srv.Override("GET", "/disks", 200, []byte(`null`))
	disks, err := c.Disks(ctx)
	require.NoError(t, err)
	assert.Empty(t, disks)
	assert.NotNil(t, disks)
}
