package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/equity-cli/internal/server"
)

type CLI struct {
	Config string `short:"c" default:"equity-server.hcl" help:"Path to HCL configuration file"`
	Addr   string `help:"Override the configured listen address (host:port)"`
	Debug  bool   `help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logLevel := log.InfoLevel
	if cli.Debug {
		logLevel = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           logLevel,
		ReportTimestamp: true,
	})

	config, err := server.LoadConfig(cli.Config)
	if err != nil {
		logger.Error("failed to load config", "path", cli.Config, "error", err)
		ctx.Exit(1)
	}
	if cli.Debug {
		config.Server.LogLevel = "debug"
	}
	if cli.Addr != "" {
		host, portStr, err := net.SplitHostPort(cli.Addr)
		if err != nil {
			logger.Error("invalid --addr", "addr", cli.Addr, "error", err)
			ctx.Exit(1)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid --addr port", "addr", cli.Addr, "error", err)
			ctx.Exit(1)
		}
		config.Server.Address = host
		config.Server.Port = port
	}
	if err := config.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		ctx.Exit(1)
	}

	srv := server.New(config, logger)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			ctx.Exit(1)
		}
	case <-sigCtx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			ctx.Exit(1)
		}
	}
}
