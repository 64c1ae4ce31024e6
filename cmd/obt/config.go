package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/secure-iot/obt-go/pkg/otm"
)

// Discovery backends.
const (
	DiscoverySim   = "sim"
	DiscoveryDNSSD = "dnssd"
)

// Config holds the tool configuration.
type Config struct {
	ConfigFile string `yaml:"-"`

	LogLevel    string `yaml:"log_level"`
	Journal     string `yaml:"journal"`
	MetricsAddr string `yaml:"metrics_addr"`
	Interactive bool   `yaml:"interactive"`

	// Backend settings
	Fleet     string        `yaml:"fleet"`
	Latency   time.Duration `yaml:"latency"`
	CredsDir  string        `yaml:"creds_dir"`
	Discovery string        `yaml:"discovery"`
	Interface string        `yaml:"interface"`

	OTMFailurePolicy string `yaml:"otm_failure_policy"`
}

func registerFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&c.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&c.Journal, "journal", "", "Write the operation journal to this file")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
	fs.BoolVar(&c.Interactive, "interactive", true, "Run the interactive menu")

	fs.StringVar(&c.Fleet, "fleet", "", "Simulated fleet description (YAML); built-in fleet if empty")
	fs.DurationVar(&c.Latency, "latency", -1, "Override the simulated response latency")
	fs.StringVar(&c.CredsDir, "creds-dir", "./onboarding_tool_creds/", "Directory for the tool's credentials")
	fs.StringVar(&c.Discovery, "discovery", DiscoverySim, "Discovery backend: sim, dnssd")
	fs.StringVar(&c.Interface, "iface", "", "Network interface for dnssd discovery")

	fs.StringVar(&c.OTMFailurePolicy, "otm-failure-policy", "leave-removed", "On failed ownership transfer: leave-removed, rollback")
}

// parseConfig parses args and merges the optional config file. Flags given
// on the command line take precedence over the file.
func parseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	var c Config
	registerFlags(fs, &c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.ConfigFile == "" {
		return &c, c.Validate()
	}

	explicit := make(map[string]string)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return nil, err
		}
	}
	return &c, c.Validate()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := otm.ParseFailurePolicy(c.OTMFailurePolicy); err != nil {
		return err
	}
	switch c.Discovery {
	case DiscoverySim, DiscoveryDNSSD:
	default:
		return fmt.Errorf("unknown discovery backend: %s (use: sim, dnssd)", c.Discovery)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}
