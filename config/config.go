package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for an extractor process. Every
// field has a working default; a config file and CLI flags both override
// selectively.
type Config struct {
	NATS    NATSConfig    `yaml:"nats"`
	RPC     RPCConfig     `yaml:"rpc"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// NATSConfig configures the connection to the NATS server events are
// published on.
type NATSConfig struct {
	Address string `yaml:"address"`
	// Optional credentials. Leave empty for an unauthenticated server.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`

	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// RPCConfig configures the Bitcoin Core JSON-RPC connection and the
// periodic query schedule. Exactly one of CookieFile or the
// User/Password pair must be set.
type RPCConfig struct {
	Host string `yaml:"host"`
	Port uint16 `yaml:"port"`

	CookieFile string `yaml:"cookie_file,omitempty"`
	User       string `yaml:"user,omitempty"`
	Password   string `yaml:"password,omitempty"`

	QueryInterval time.Duration `yaml:"query_interval"`

	Disable DisableQueries `yaml:"disable"`
}

// DisableQueries toggles individual RPC queries off. All queries run by
// default.
type DisableQueries struct {
	PeerInfo     bool `yaml:"peerinfo"`
	MempoolInfo  bool `yaml:"mempoolinfo"`
	Uptime       bool `yaml:"uptime"`
	NetTotals    bool `yaml:"nettotals"`
	MemoryInfo   bool `yaml:"memoryinfo"`
	AddrmanInfo  bool `yaml:"addrmaninfo"`
	ChainTxStats bool `yaml:"chaintxstats"`
}

// LogConfig configures the debug.log follower. An empty Path means read
// from stdin instead of following a file.
type LogConfig struct {
	Path    string `yaml:"path,omitempty"`
	FromEnd bool   `yaml:"from_end"`

	PollInterval time.Duration `yaml:"poll_interval"`

	// Rate limit on published log events, protecting the bus from log
	// bursts. LinesPerSecond 0 disables limiting.
	LinesPerSecond float64 `yaml:"lines_per_second"`
	Burst          int     `yaml:"burst"`
}

// MetricsConfig configures the Prometheus metrics endpoint. Port 0
// disables the server.
type MetricsConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the configuration used when no file and no flags are
// given: local NATS, local node with cookie auth, 10s query interval.
func Default() *Config {
	return &Config{
		NATS: NATSConfig{
			Address:        "nats://127.0.0.1:4222",
			ConnectTimeout: 10 * time.Second,
		},
		RPC: RPCConfig{
			Host:          "127.0.0.1",
			Port:          8332,
			CookieFile:    defaultCookiePath(),
			QueryInterval: 10 * time.Second,
		},
		Log: LogConfig{
			FromEnd:        true,
			PollInterval:   250 * time.Millisecond,
			LinesPerSecond: 500,
			Burst:          1000,
		},
		Metrics: MetricsConfig{
			Host: "127.0.0.1",
			Port: 9090,
		},
	}
}

func defaultCookiePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.bitcoin/.cookie"
}

// Load reads a YAML config file over the defaults. Unknown keys are an
// error so typos surface at startup instead of silently using defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path) // #nosec G304 -- path comes from operator flag
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for an extractor process. The RPC
// section is only validated when forRPC is set, so the log extractor does
// not require node credentials.
func (c *Config) Validate(forRPC bool) error {
	if c.NATS.Address == "" {
		return fmt.Errorf("nats.address is required")
	}
	if c.NATS.ConnectTimeout <= 0 {
		return fmt.Errorf("nats.connect_timeout must be positive, got %s", c.NATS.ConnectTimeout)
	}

	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port out of range: %d", c.Metrics.Port)
	}

	if forRPC {
		if err := c.validateRPC(); err != nil {
			return err
		}
	} else {
		if err := c.validateLog(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateRPC() error {
	if c.RPC.Host == "" {
		return fmt.Errorf("rpc.host is required")
	}
	if c.RPC.Port == 0 {
		return fmt.Errorf("rpc.port is required")
	}
	if c.RPC.QueryInterval <= 0 {
		return fmt.Errorf("rpc.query_interval must be positive, got %s", c.RPC.QueryInterval)
	}

	// Exactly one auth mode: cookie file XOR user/password.
	hasCookie := c.RPC.CookieFile != ""
	hasUserPass := c.RPC.User != "" || c.RPC.Password != ""
	if hasCookie && hasUserPass {
		return fmt.Errorf("rpc: cookie_file and user/password are mutually exclusive")
	}
	if !hasCookie && !hasUserPass {
		return fmt.Errorf("rpc: either cookie_file or user/password is required")
	}
	if hasUserPass && (c.RPC.User == "" || c.RPC.Password == "") {
		return fmt.Errorf("rpc: user and password must both be set")
	}

	return nil
}

func (c *Config) validateLog() error {
	if c.Log.PollInterval <= 0 {
		return fmt.Errorf("log.poll_interval must be positive, got %s", c.Log.PollInterval)
	}
	if c.Log.LinesPerSecond < 0 {
		return fmt.Errorf("log.lines_per_second cannot be negative")
	}
	if c.Log.LinesPerSecond > 0 && c.Log.Burst < 1 {
		return fmt.Errorf("log.burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// MetricsAddress returns the listen address for the metrics server, or ""
// when the server is disabled.
func (c *Config) MetricsAddress() string {
	if c.Metrics.Port == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Metrics.Host, c.Metrics.Port)
}
