package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/CristiGvl/cascade-hwmon/api"
	"github.com/CristiGvl/cascade-hwmon/internal/logging"
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

func main() {
	app := kingpin.New("cascade-stub", "Cascade-compatible hardware monitor API for development and tests.")
	port := app.Flag("port", "Port to run the server on").Default("8085").Envar("CASCADE_STUB_PORT").Int()
	bind := app.Flag("bind", "IP address to bind the server to").Default("127.0.0.1").Envar("CASCADE_STUB_BIND").String()
	live := app.Flag("live", "Serve sensor endpoints from this machine instead of fixtures").Envar("CASCADE_STUB_LIVE").Bool()
	fixtures := app.Flag("fixtures", "JSON file mapping endpoint paths to payloads").ExistingFile()
	logLevel := app.Flag("log-level", "debug, info, warn or error").Default("info").Envar("CASCADE_LOG_LEVEL").String()
	logFormat := app.Flag("log-format", "console or json").Default("console").Envar("CASCADE_LOG_FORMAT").String()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := logging.New(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	opts := api.Options{
		Live:      *live,
		AccessLog: true,
		Logger:    logger,
	}
	if *fixtures != "" {
		if opts.Fixtures, err = os.ReadFile(*fixtures); err != nil {
			logger.Fatal("failed to read fixtures", zap.Error(err))
		}
	}

	server, err := api.NewServer(opts)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan

		logger.Info("shutting down", zap.Stringer("signal", sig))
		if err := server.Shutdown(); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	}()

	if err := server.Start(net.JoinHostPort(*bind, strconv.Itoa(*port))); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
