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
	natsAddress   string
	rpcHost       string
	rpcPort       uint
	cookieFile    string
	rpcUser       string
	rpcPassword   string
	queryInterval time.Duration
	metricsPort   int

	disablePeerInfo     bool
	disableMempoolInfo  bool
	disableUptime       bool
	disableNetTotals    bool
	disableMemoryInfo   bool
	disableAddrmanInfo  bool
	disableChainTxStats bool
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
	flag.StringVar(&o.rpcHost, "rpc-host", "", "Bitcoin Core RPC host")
	flag.UintVar(&o.rpcPort, "rpc-port", 0, "Bitcoin Core RPC port")
	flag.StringVar(&o.cookieFile, "rpc-cookie-file", "", "Bitcoin Core RPC cookie file")
	flag.StringVar(&o.rpcUser, "rpc-user", "", "Bitcoin Core RPC user")
	flag.StringVar(&o.rpcPassword, "rpc-password", "", "Bitcoin Core RPC password")
	flag.DurationVar(&o.queryInterval, "query-interval", 0, "Interval between RPC query passes")
	flag.IntVar(&o.metricsPort, "metrics-port", -1, "Metrics server port, 0 to disable")

	flag.BoolVar(&o.disablePeerInfo, "disable-peerinfo", false, "Skip the getpeerinfo query")
	flag.BoolVar(&o.disableMempoolInfo, "disable-mempoolinfo", false, "Skip the getmempoolinfo query")
	flag.BoolVar(&o.disableUptime, "disable-uptime", false, "Skip the uptime query")
	flag.BoolVar(&o.disableNetTotals, "disable-nettotals", false, "Skip the getnettotals query")
	flag.BoolVar(&o.disableMemoryInfo, "disable-memoryinfo", false, "Skip the getmemoryinfo query")
	flag.BoolVar(&o.disableAddrmanInfo, "disable-addrmaninfo", false, "Skip the getaddrmaninfo query")
	flag.BoolVar(&o.disableChainTxStats, "disable-chaintxstats", false, "Skip the getchaintxstats query")

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
	cfg.RPC.Host = getEnv("PEEROBSERVER_RPC_HOST", cfg.RPC.Host)
	if v := os.Getenv("PEEROBSERVER_RPC_PORT"); v != "" {
		if port, err := strconv.ParseUint(v, 10, 16); err == nil {
			cfg.RPC.Port = uint16(port)
		}
	}
	cfg.RPC.CookieFile = getEnv("PEEROBSERVER_RPC_COOKIE_FILE", cfg.RPC.CookieFile)
	cfg.RPC.User = getEnv("PEEROBSERVER_RPC_USER", cfg.RPC.User)
	cfg.RPC.Password = getEnv("PEEROBSERVER_RPC_PASSWORD", cfg.RPC.Password)
	cfg.RPC.QueryInterval = getEnvDuration("PEEROBSERVER_QUERY_INTERVAL", cfg.RPC.QueryInterval)
	cfg.Metrics.Port = getEnvInt("PEEROBSERVER_METRICS_PORT", cfg.Metrics.Port)
}

// applyFlags overlays flags the user actually set on the configuration.
func applyFlags(cfg *config.Config, o *overrides) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nats-address":
			cfg.NATS.Address = o.natsAddress
		case "rpc-host":
			cfg.RPC.Host = o.rpcHost
		case "rpc-port":
			if o.rpcPort <= 65535 {
				cfg.RPC.Port = uint16(o.rpcPort)
			}
		case "rpc-cookie-file":
			cfg.RPC.CookieFile = o.cookieFile
			cfg.RPC.User = ""
			cfg.RPC.Password = ""
		case "rpc-user":
			cfg.RPC.User = o.rpcUser
			cfg.RPC.CookieFile = ""
		case "rpc-password":
			cfg.RPC.Password = o.rpcPassword
			cfg.RPC.CookieFile = ""
		case "query-interval":
			cfg.RPC.QueryInterval = o.queryInterval
		case "metrics-port":
			cfg.Metrics.Port = o.metricsPort
		case "disable-peerinfo":
			cfg.RPC.Disable.PeerInfo = o.disablePeerInfo
		case "disable-mempoolinfo":
			cfg.RPC.Disable.MempoolInfo = o.disableMempoolInfo
		case "disable-uptime":
			cfg.RPC.Disable.Uptime = o.disableUptime
		case "disable-nettotals":
			cfg.RPC.Disable.NetTotals = o.disableNetTotals
		case "disable-memoryinfo":
			cfg.RPC.Disable.MemoryInfo = o.disableMemoryInfo
		case "disable-addrmaninfo":
			cfg.RPC.Disable.AddrmanInfo = o.disableAddrmanInfo
		case "disable-chaintxstats":
			cfg.RPC.Disable.ChainTxStats = o.disableChainTxStats
		}
	})
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Bitcoin Core RPC telemetry extractor

Periodically queries a Bitcoin Core node over JSON-RPC and publishes the
results as events on a NATS subject.

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run against a local node with cookie auth
  %s --rpc-cookie-file=$HOME/.bitcoin/.cookie

  # Run with a config file and a faster schedule
  %s --config=/etc/peer-observer/config.yaml --query-interval=5s

  # Run with environment variables
  export PEEROBSERVER_NATS_ADDRESS=nats://10.0.0.5:4222
  export PEEROBSERVER_RPC_USER=observer
  export PEEROBSERVER_RPC_PASSWORD=hunter2
  %s

  # Validate configuration only
  %s --config=/etc/peer-observer/config.yaml --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
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
