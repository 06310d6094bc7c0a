// Package main implements the RPC extractor: a process that periodically
// queries a Bitcoin Core node over JSON-RPC and publishes the typed results
// on the NATS event bus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/peer-observer/peer-observer/config"
	"github.com/peer-observer/peer-observer/extractor"
	"github.com/peer-observer/peer-observer/extractor/rpc"
	"github.com/peer-observer/peer-observer/extractor/watch"
	"github.com/peer-observer/peer-observer/metric"
	"github.com/peer-observer/peer-observer/natsclient"
	"github.com/peer-observer/peer-observer/pkg/retry"
	"github.com/peer-observer/peer-observer/rpcclient"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "rpc-extractor"
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

	slog.Info("Starting RPC extractor",
		"version", Version,
		"build_time", BuildTime,
		"rpc_host", cfg.RPC.Host,
		"rpc_port", cfg.RPC.Port,
		"query_interval", cfg.RPC.QueryInterval)

	registry := metric.NewMetricsRegistry()
	metrics := registry.CoreMetrics()

	rpcClient, err := newRPCClient(cfg)
	if err != nil {
		return fmt.Errorf("create RPC client: %w", err)
	}

	ctx := context.Background()
	natsClient, err := connectNATS(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx) //nolint:errcheck

	queries := rpc.Queries(rpcClient, rpc.Disable{
		PeerInfo:     cfg.RPC.Disable.PeerInfo,
		MempoolInfo:  cfg.RPC.Disable.MempoolInfo,
		Uptime:       cfg.RPC.Disable.Uptime,
		NetTotals:    cfg.RPC.Disable.NetTotals,
		MemoryInfo:   cfg.RPC.Disable.MemoryInfo,
		AddrmanInfo:  cfg.RPC.Disable.AddrmanInfo,
		ChainTxStats: cfg.RPC.Disable.ChainTxStats,
	})

	loop, err := extractor.NewLoop(rpc.Name, cfg.RPC.QueryInterval, queries, natsClient, logger, metrics)
	if err != nil {
		return fmt.Errorf("create extraction loop: %w", err)
	}

	return runUntilSignal(ctx, cfg, registry, func(runCtx context.Context, shutdown *watch.Receiver) error {
		return loop.Run(runCtx, shutdown)
	})
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

	if err := cfg.Validate(true); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newRPCClient(cfg *config.Config) (*rpcclient.Client, error) {
	auth := rpcclient.Auth{
		CookieFile: cfg.RPC.CookieFile,
		User:       cfg.RPC.User,
		Password:   cfg.RPC.Password,
	}
	return rpcclient.New(cfg.RPC.Host, cfg.RPC.Port, auth)
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

// runUntilSignal runs the extraction loop and the metrics server until
// SIGINT or SIGTERM, then stops both cooperatively. The loop observes
// shutdown between passes only; a pass in flight completes first.
func runUntilSignal(
	ctx context.Context,
	cfg *config.Config,
	registry *metric.MetricsRegistry,
	runLoop func(context.Context, *watch.Receiver) error,
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
		defer signalCancel()
		return runLoop(gCtx, receiver)
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
