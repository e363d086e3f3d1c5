package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/CristiGvl/cascade-hwmon/client"
	"github.com/CristiGvl/cascade-hwmon/internal/config"
	"github.com/CristiGvl/cascade-hwmon/internal/logging"
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

type runFunc func(ctx context.Context, c *client.Client) (output, error)

type cli struct {
	app      *kingpin.Application
	commands map[string]runFunc

	configFile *string
	envFile    *string
	host       *string
	port       *int
	timeout    *float64
	insecure   *bool
	secure     *bool
	output     *string
	logLevel   *string
}

func newCLI(stdout, stderr io.Writer) *cli {
	app := kingpin.New("cascadectl", "Command line client for the Cascade Hardware Monitor API.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	c := &cli{
		app:      app,
		commands: make(map[string]runFunc),

		configFile: app.Flag("config", "TOML config file").Default("cascade.toml").Envar("CASCADE_CONFIG").String(),
		envFile:    app.Flag("env-file", ".env file with CASCADE_* variables").Default(".env").String(),
		host:       app.Flag("host", "Cascade server host").String(),
		port:       app.Flag("port", "Cascade server port").Int(),
		timeout:    app.Flag("timeout", "Request timeout in seconds").Float64(),
		insecure:   app.Flag("insecure", "Skip TLS certificate verification").Bool(),
		secure:     app.Flag("secure", "Use https").Bool(),
		output:     app.Flag("output", "Output format: table or json").Short('o').Enum(config.OutputTable, config.OutputJSON),
		logLevel:   app.Flag("log-level", "debug, info, warn or error").String(),
	}
	c.register()
	return c
}

func (c *cli) add(clause *kingpin.CmdClause, run runFunc) {
	c.commands[clause.FullCommand()] = run
}

// settings layers the flags over the loaded configuration.
func (c *cli) settings() (*config.Config, error) {
	cfg, err := config.Load(*c.configFile, *c.envFile)
	if err != nil {
		return nil, err
	}

	if *c.host != "" {
		cfg.Host = *c.host
	}
	if *c.port != 0 {
		cfg.Port = *c.port
	}
	if *c.timeout != 0 {
		cfg.TimeoutSeconds = *c.timeout
	}
	if *c.insecure {
		cfg.TLSSkipVerify = true
	}
	if *c.secure {
		cfg.Secure = true
	}
	if *c.output != "" {
		cfg.Output = *c.output
	}
	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run executes args and returns the process exit code.
func (c *cli) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	cfg, err := c.settings()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	logger, err := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	defer logger.Sync()

	cc := client.New(cfg.ClientConfig(), client.WithLogger(logger))
	logger.Debug("running command", zap.String("command", command), zap.String("base_url", cc.BaseURL()))

	run, ok := c.commands[command]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n", command)
		return 2
	}

	out, err := run(ctx, cc)
	if err != nil {
		return reportError(stderr, err)
	}

	if err := out.write(stdout, cfg.Output); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) int {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(w, "error: server returned %d %s\n", apiErr.StatusCode, apiErr.Reason)
		if len(apiErr.Body) > 0 {
			fmt.Fprintf(w, "%s\n", apiErr.Body)
		}
		return 1
	case client.IsConnectionError(err):
		fmt.Fprintln(w, "error: cannot reach server:", err)
		return 3
	default:
		fmt.Fprintln(w, "error:", err)
		return 1
	}
}
