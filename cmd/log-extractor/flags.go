package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/peer-observer/peer-observer/config"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

// overrides are config fields settable from the command line. They only
// apply when the flag was given; otherwise file and environment values win.
type overrides struct {
	natsAddress    string
	logPath        string
	fromStart      bool
	pollInterval   time.Duration
	linesPerSecond float64
	burst          int
	metricsPort    int
}

func parseFlags() (*CLIConfig, *overrides) {
	cfg := &CLIConfig{}
	o := &overrides{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("PEEROBSERVER_CONFIG", ""),
		"Path to YAML configuration file, optional (env: PEEROBSERVER_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PEEROBSERVER_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: PEEROBSERVER_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PEEROBSERVER_LOG_FORMAT", "json"),
		"Log format: json, text (env: PEEROBSERVER_LOG_FORMAT)")

	flag.StringVar(&o.natsAddress, "nats-address", "", "NATS server address")
	flag.StringVar(&o.logPath, "log-path", "", "Path to the node debug.log; empty reads stdin")
	flag.BoolVar(&o.fromStart, "from-start", false, "Read the log file from the beginning instead of the end")
	flag.DurationVar(&o.pollInterval, "poll-interval", 0, "Poll interval when following the log file")
	flag.Float64Var(&o.linesPerSecond, "lines-per-second", -1, "Published log events per second, 0 disables limiting")
	flag.IntVar(&o.burst, "burst", 0, "Rate limiter burst size")
	flag.IntVar(&o.metricsPort, "metrics-port", -1, "Metrics server port, 0 to disable")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Usage = printDetailedHelp

	flag.Parse()

	return cfg, o
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

// applyEnv overlays environment variables on the loaded configuration.
// Precedence is file < environment < flags.
func applyEnv(cfg *config.Config) {
	cfg.NATS.Address = getEnv("PEEROBSERVER_NATS_ADDRESS", cfg.NATS.Address)
	cfg.Log.Path = getEnv("PEEROBSERVER_LOG_PATH", cfg.Log.Path)
	cfg.Metrics.Port = getEnvInt("PEEROBSERVER_METRICS_PORT", cfg.Metrics.Port)
}

// applyFlags overlays flags the user actually set on the configuration.
func applyFlags(cfg *config.Config, o *overrides) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nats-address":
			cfg.NATS.Address = o.natsAddress
		case "log-path":
			cfg.Log.Path = o.logPath
		case "from-start":
			cfg.Log.FromEnd = !o.fromStart
		case "poll-interval":
			cfg.Log.PollInterval = o.pollInterval
		case "lines-per-second":
			cfg.Log.LinesPerSecond = o.linesPerSecond
		case "burst":
			cfg.Log.Burst = o.burst
		case "metrics-port":
			cfg.Metrics.Port = o.metricsPort
		}
	})
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Bitcoin Core debug.log telemetry extractor

Follows a node debug.log (or reads stdin), classifies each line, and
publishes the typed log events on a NATS subject.

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Follow a local node's log
  %s --log-path=$HOME/.bitcoin/debug.log

  # Replay an old log from stdin
  cat debug.log.1 | %s --lines-per-second=0

  # Run with environment variables
  export PEEROBSERVER_NATS_ADDRESS=nats://10.0.0.5:4222
  export PEEROBSERVER_LOG_PATH=/var/log/bitcoind/debug.log
  %s

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
