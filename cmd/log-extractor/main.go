// Package main implements the log extractor: a process that follows a
// Bitcoin Core debug.log (or reads stdin), classifies each line, and
// publishes the typed log events on the NATS event bus.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/peer-observer/peer-observer/config"
	"github.com/peer-observer/peer-observer/extractor/logtail"
	"github.com/peer-observer/peer-observer/extractor/watch"
	"github.com/peer-observer/peer-observer/metric"
	"github.com/peer-observer/peer-observer/natsclient"
	"github.com/peer-observer/peer-observer/pkg/retry"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "log-extractor"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Extractor failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, o := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg, err := loadConfig(cliCfg, o)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	slog.Info("Starting log extractor",
		"version", Version,
		"build_time", BuildTime,
		"log_path", cfg.Log.Path,
		"lines_per_second", cfg.Log.LinesPerSecond)

	registry := metric.NewMetricsRegistry()
	metrics := registry.CoreMetrics()

	source, reader, closeSource, err := openSource(cfg)
	if err != nil {
		return fmt.Errorf("open log source: %w", err)
	}
	defer closeSource()

	ctx := context.Background()
	natsClient, err := connectNATS(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx) //nolint:errcheck

	tailer, err := logtail.New(source, reader, natsClient, newLimiter(cfg), logger, metrics)
	if err != nil {
		return fmt.Errorf("create tailer: %w", err)
	}

	return runUntilSignal(ctx, cfg, registry, closeSource, tailer)
}

// loadConfig layers defaults, the optional config file, environment
// variables, and explicit flags, then validates the result.
func loadConfig(cliCfg *CLIConfig, o *overrides) (*config.Config, error) {
	cfg := config.Default()

	if cliCfg.ConfigPath != "" {
		loaded, err := config.Load(cliCfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	applyEnv(cfg)
	applyFlags(cfg, o)

	if err := cfg.Validate(false); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// openSource returns the log source: a follower over the configured file,
// or stdin when no path is set.
func openSource(cfg *config.Config) (string, io.Reader, func(), error) {
	if cfg.Log.Path == "" {
		return "stdin", os.Stdin, func() {}, nil
	}

	follower, err := logtail.NewFollower(cfg.Log.Path, cfg.Log.FromEnd, cfg.Log.PollInterval)
	if err != nil {
		return "", nil, nil, err
	}
	return cfg.Log.Path, follower, func() { _ = follower.Close() }, nil
}

func newLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.Log.LinesPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.Log.LinesPerSecond), cfg.Log.Burst)
}

// connectNATS creates the bus client and establishes the connection,
// retrying briefly. An unreachable bus at startup is fatal.
func connectNATS(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	metrics *metric.Metrics,
) (*natsclient.Client, error) {
	opts := []natsclient.ClientOption{
		natsclient.WithName(fmt.Sprintf("%s-%s", appName, uuid.NewString()[:8])),
		natsclient.WithLogger(logger),
		natsclient.WithMetrics(metrics),
		natsclient.WithTimeout(cfg.NATS.ConnectTimeout),
	}
	if cfg.NATS.Username != "" {
		opts = append(opts, natsclient.WithCredentials(cfg.NATS.Username, cfg.NATS.Password))
	}
	if cfg.NATS.Token != "" {
		opts = append(opts, natsclient.WithToken(cfg.NATS.Token))
	}

	natsClient, err := natsclient.NewClient(cfg.NATS.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	slog.Info("Connecting to NATS", "address", cfg.NATS.Address)
	err = retry.Do(ctx, retry.Quick(), func() error {
		return natsClient.Connect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, cfg.NATS.ConnectTimeout)
	defer cancel()
	if err := natsClient.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("NATS connection timeout: %w", err)
	}

	return natsClient, nil
}

// runUntilSignal runs the tailer and the metrics server until SIGINT or
// SIGTERM, then stops both cooperatively. Closing the source unblocks a
// tailer waiting on a quiet log.
func runUntilSignal(
	ctx context.Context,
	cfg *config.Config,
	registry *metric.MetricsRegistry,
	closeSource func(),
	tailer *logtail.Tailer,
) error {
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	sender, receiver := watch.NewPair()
	defer sender.Drop()

	var metricsServer *metric.Server
	if addr := cfg.MetricsAddress(); addr != "" {
		metricsServer = metric.NewServer(addr, "/metrics", registry)
		slog.Info("Metrics server starting", "url", metricsServer.Address())
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Cancelling on return covers the source-ended case, where the
		// tailer finishes without any signal arriving.
		defer signalCancel()
		return tailer.Run(gCtx, receiver)
	})

	if metricsServer != nil {
		g.Go(metricsServer.Start)
	}

	g.Go(func() error {
		select {
		case <-signalCtx.Done():
			slog.Info("Received shutdown signal")
		case <-gCtx.Done():
		}
		sender.Stop()
		closeSource()
		if metricsServer != nil {
			return metricsServer.Stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("extractor stopped: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}
