package main

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/CristiGvl/cascade-hwmon/client"
	"github.com/CristiGvl/cascade-hwmon/model"
	"github.com/samber/lo"
)

var sensorColumns = []string{"id", "name", "type", "value", "unit", "source", "status"}

func (c *cli) register() {
	app := c.app

	c.add(app.Command("health", "Server health"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Health(ctx)
		return one(v), err
	})
	c.add(app.Command("status", "Server status document"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Status(ctx)
		return one(v), err
	})
	snapshot := app.Command("snapshot", "Full sensor snapshot")
	live := snapshot.Flag("live", "Bypass the server's poll cache").Bool()
	c.add(snapshot, func(ctx context.Context, cc *client.Client) (output, error) {
		if *live {
			v, err := cc.LiveSnapshot(ctx)
			return one(v), err
		}
		v, err := cc.Snapshot(ctx)
		return one(v), err
	})
	c.add(app.Command("urls", "Print the API and stream URLs"), func(ctx context.Context, cc *client.Client) (output, error) {
		cfg := cc.Config()
		raw, _ := json.Marshal(map[string]string{"api": cfg.BaseURL(), "stream": cfg.WebSocketURL()})
		return output{
			raw:    raw,
			header: []string{"API", "STREAM"},
			rows:   [][]string{{cfg.BaseURL(), cfg.WebSocketURL()}},
		}, nil
	})

	c.registerCPU()
	c.registerDevices()
	c.registerBoard()
	c.registerInferred()
	c.registerControl()
	c.registerAI()
}

func (c *cli) registerCPU() {
	cpu := c.app.Command("cpu", "CPU data")
	c.add(cpu.Command("summary", "CPU summary").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPU(ctx)
		return one(v), err
	})
	c.add(cpu.Command("sensors", "Detailed CPU sensors"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUSensors(ctx)
		return one(v), err
	})
	c.add(cpu.Command("cores", "Per-core data"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUCores(ctx)
		return many(v, "core", "temperature", "load", "frequency", "voltage", "throttling"), err
	})
	c.add(cpu.Command("temperatures", "Per-core temperatures"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUTemperatures(ctx)
		return many(v, "core", "temperature"), err
	})
	c.add(cpu.Command("frequencies", "Per-core frequencies"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUFrequencies(ctx)
		return many(v, "core", "frequency"), err
	})
	c.add(cpu.Command("power", "CPU power draw"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUPower(ctx)
		return one(v), err
	})
	c.add(cpu.Command("throttling", "CPU throttling state"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CPUThrottling(ctx)
		return one(v), err
	})
}

func (c *cli) registerDevices() {
	gpu := c.app.Command("gpu", "GPU data")
	c.add(gpu.Command("summary", "Primary GPU").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.GPU(ctx)
		return one(v), err
	})
	c.add(gpu.Command("all", "Every GPU"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AllGPUs(ctx)
		return many(v, "name", "vendor", "temperature", "utilizationGpu", "memoryUsed", "memoryTotal", "powerDraw"), err
	})
	c.add(gpu.Command("processes", "Processes using the GPU"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.GPUProcesses(ctx)
		return many(v, "pid", "name", "usedMemory"), err
	})

	c.add(c.app.Command("memory", "Memory usage"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Memory(ctx)
		return one(v), err
	})
	c.add(c.app.Command("network", "Network interfaces"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Network(ctx)
		return one(v), err
	})
	c.add(c.app.Command("disks", "Mounted filesystems"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Disks(ctx)
		return many(v, "name", "mount", "type", "size", "used", "usePercent"), err
	})

	smart := c.app.Command("smart", "Disk SMART health")
	c.add(smart.Command("summary", "SMART report").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.SMART(ctx)
		return one(v), err
	})
	c.add(smart.Command("failing", "Disks failing SMART checks"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.FailingDisks(ctx)
		return many(v, "device", "model", "healthStatus", "temperature", "powerOnHours"), err
	})
}

func (c *cli) registerBoard() {
	board := c.app.Command("mainboard", "Mainboard sensors")
	c.add(board.Command("summary", "Mainboard overview").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Mainboard(ctx)
		return one(v), err
	})
	c.add(board.Command("voltages", "Voltage rails"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Voltages(ctx)
		return many(v, "name", "value", "nominal", "status"), err
	})
	c.add(board.Command("vrm", "Voltage regulator"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.VRM(ctx)
		return one(v), err
	})
	c.add(board.Command("chipset", "Chipset"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Chipset(ctx)
		return one(v), err
	})

	fans := c.app.Command("fans", "Fan headers")
	c.add(fans.Command("list", "Every fan channel").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Fans(ctx)
		if err != nil || v == nil {
			return nullOutput, err
		}
		return fanChannels(v), nil
	})
	c.add(fans.Command("controllers", "Fan controllers"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.FanControllers(ctx)
		return many(v, "id", "name"), err
	})
	speed := fans.Command("speed", "Set a channel's speed")
	speedCtrl := speed.Arg("controller", "Controller id").Required().String()
	speedCh := speed.Arg("channel", "Channel id").Required().String()
	speedPct := speed.Arg("percent", "Speed 0-100").Required().Int()
	c.add(speed, func(ctx context.Context, cc *client.Client) (output, error) {
		ok, err := cc.SetFanSpeed(ctx, *speedCtrl, *speedCh, *speedPct)
		return success(ok), err
	})
	mode := fans.Command("mode", "Set a channel's mode")
	modeCtrl := mode.Arg("controller", "Controller id").Required().String()
	modeCh := mode.Arg("channel", "Channel id").Required().String()
	modeName := mode.Arg("mode", "auto or manual").Required().Enum("auto", "manual")
	c.add(mode, func(ctx context.Context, cc *client.Client) (output, error) {
		ok, err := cc.SetFanMode(ctx, *modeCtrl, *modeCh, *modeName)
		return success(ok), err
	})

	advanced := c.app.Command("advanced", "PCIe and thermal zones")
	c.add(advanced.Command("summary", "Advanced overview").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Advanced(ctx)
		return one(v), err
	})
	c.add(advanced.Command("pcie", "PCIe links"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.PCIeBandwidth(ctx)
		return many(v, "slot", "device", "currentSpeed", "lanes", "bandwidthGBps"), err
	})
	c.add(advanced.Command("thermal-zones", "ACPI thermal zones"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.ThermalZones(ctx)
		return many(v, "name", "temperature"), err
	})
}

// fanChannels flattens /fans into one row per channel.
func fanChannels(f *model.Fans) output {
	type row struct {
		controller string
		ch         model.FanChannel
	}
	rows := lo.FlatMap(f.Controllers, func(ctrl model.FanController, _ int) []row {
		return lo.Map(ctrl.Channels, func(ch model.FanChannel, _ int) row {
			return row{controller: ctrl.ID, ch: ch}
		})
	})

	return output{
		raw:    f.JSON(),
		header: []string{"CONTROLLER", "CHANNEL", "NAME", "SPEED %", "RPM", "MODE", "CONTROLLABLE"},
		rows: lo.Map(rows, func(r row, _ int) []string {
			rpm := "-"
			if r.ch.RPM != nil {
				rpm = strconv.Itoa(*r.ch.RPM)
			}
			return []string{
				r.controller, r.ch.ID, r.ch.Name, strconv.Itoa(r.ch.SpeedPercent),
				rpm, r.ch.Mode, strconv.FormatBool(r.ch.Controllable),
			}
		}),
	}
}

func (c *cli) registerInferred() {
	inferred := c.app.Command("inferred", "Derived metrics")
	c.add(inferred.Command("summary", "Every derived metric").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Inferred(ctx)
		return one(v), err
	})
	c.add(inferred.Command("thermal-headroom", "Distance to throttling"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.ThermalHeadroom(ctx)
		return one(v), err
	})
	c.add(inferred.Command("efficiency", "Efficiency score"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Efficiency(ctx)
		return one(v), err
	})
	c.add(inferred.Command("bottleneck", "Limiting component"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Bottleneck(ctx)
		return one(v), err
	})
	c.add(inferred.Command("workload", "Workload profile"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.WorkloadProfile(ctx)
		return one(v), err
	})
	c.add(inferred.Command("health", "Health prediction"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.HealthPrediction(ctx)
		return one(v), err
	})

	monitors := c.app.Command("monitors", "Unified sensor view")
	c.add(monitors.Command("summary", "Sources and sensors").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Monitors(ctx)
		return one(v), err
	})
	c.add(monitors.Command("sources", "Active sensor sources"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.MonitorSources(ctx)
		return one(v), err
	})
	c.add(monitors.Command("temperatures", "Every temperature sensor"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AllTemperatures(ctx)
		return many(v, sensorColumns...), err
	})
	c.add(monitors.Command("critical", "Sensors in critical state"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CriticalSensors(ctx)
		return many(v, sensorColumns...), err
	})
	c.add(monitors.Command("warnings", "Sensors in warning state"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.WarningSensors(ctx)
		return many(v, sensorColumns...), err
	})
}

func (c *cli) registerControl() {
	alerts := c.app.Command("alerts", "Alert rules")
	c.add(alerts.Command("list", "Configured alerts").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.Alerts(ctx)
		return many(v, "id", "name", "sensorPath", "condition", "enabled"), err
	})
	create := alerts.Command("create", "Create an alert")
	name := create.Flag("name", "Alert name").Required().String()
	sensor := create.Flag("sensor", "Sensor path, e.g. cpu/k10temp").Required().String()
	condition := create.Flag("condition", "Condition, e.g. '> 85'").Required().String()
	extra := create.Flag("set", "Extra field as key=value (repeatable)").StringMap()
	c.add(create, func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.CreateAlert(ctx, client.AlertRequest{
			Name:       *name,
			SensorPath: *sensor,
			Condition:  *condition,
			Extra:      parseValues(*extra),
		})
		return one(v), err
	})

	power := c.app.Command("power", "OS power profiles")
	c.add(power.Command("list", "Available profiles").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.PowerProfiles(ctx)
		return many(v, "id", "name", "active"), err
	})
	setPower := power.Command("set", "Activate a profile")
	profile := setPower.Arg("id", "Profile id").Required().String()
	c.add(setPower, func(ctx context.Context, cc *client.Client) (output, error) {
		ok, err := cc.SetPowerProfile(ctx, *profile)
		return success(ok), err
	})

	brightness := c.app.Command("brightness", "Display brightness")
	c.add(brightness.Command("get", "Current level").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		level, err := cc.Brightness(ctx)
		if err != nil || level == nil {
			return nullOutput, err
		}
		raw, _ := json.Marshal(map[string]int{"brightness": *level})
		return output{raw: raw, header: []string{"BRIGHTNESS"}, rows: [][]string{{strconv.Itoa(*level)}}}, nil
	})
	setBrightness := brightness.Command("set", "Set the level")
	level := setBrightness.Arg("level", "0-100").Required().Int()
	c.add(setBrightness, func(ctx context.Context, cc *client.Client) (output, error) {
		ok, err := cc.SetBrightness(ctx, *level)
		return success(ok), err
	})

	kill := c.app.Command("kill", "Terminate a process on the monitored host")
	pid := kill.Arg("pid", "Process id").Required().Int()
	force := kill.Flag("force", "Hard kill").Bool()
	c.add(kill, func(ctx context.Context, cc *client.Client) (output, error) {
		ok, err := cc.KillProcess(ctx, *pid, *force)
		return success(ok), err
	})
}

func (c *cli) registerAI() {
	ai := c.app.Command("ai", "Automation endpoints")
	c.add(ai.Command("status", "Machine-readable status").Default(), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AI.Status(ctx)
		return one(v), err
	})
	c.add(ai.Command("analysis", "Recommendations and warnings"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AI.Analysis(ctx)
		return one(v), err
	})
	c.add(ai.Command("actions", "Executable actions"), func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AI.Actions(ctx)
		return many(v, "id", "name", "description"), err
	})
	exec := ai.Command("exec", "Execute an action")
	action := exec.Arg("action", "Action id").Required().String()
	params := exec.Flag("param", "Action parameter as key=value (repeatable)").Short('p').StringMap()
	c.add(exec, func(ctx context.Context, cc *client.Client) (output, error) {
		v, err := cc.AI.ExecuteAction(ctx, *action, parseValues(*params))
		return one(v), err
	})
}

// parseValues reads each value as JSON when it parses, so numbers and
// booleans keep their type, and as a plain string otherwise.
func parseValues(in map[string]string) map[string]any {
	if len(in) == 0 {
		return nil
	}
	return lo.MapValues(in, func(v string, _ string) any {
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return v
		}
		return parsed
	})
}
