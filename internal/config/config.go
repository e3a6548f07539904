// Package config loads and validates semcache configuration.
//
// Configuration comes from an optional YAML file layered over Default().
// Validate normalizes the result and parses duration strings into their
// typed counterparts.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted by ResolveConfigPath.
const EnvConfigPath = "SEMCACHE_CONFIG"

// DefaultServiceType is the DNS-SD type semcache instances advertise.
const DefaultServiceType = "_semcache._tcp"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               53531,
			Group:              "224.0.0.251",
			ShutdownTimeoutRaw: "5s",
			RateLimit: RateLimitConfig{
				SourceQPS:   20,
				SourceBurst: 40,
				MaxSources:  4096,
			},
		},
		Discovery: DiscoveryConfig{
			ProbeMaxDelayRaw: "250ms",
			ProbeIntervalRaw: "250ms",
			ProbeCount:       3,
			BrowseWaitRaw:    "2s",
			PTRRetries:       1,
			ResolveWaitRaw:   "2s",
			ResolveRetries:   2,
			HostTTL:          120,
			ServiceTTL:       4500,
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
		},
		API: APIConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    8080,
		},
		Database: DatabaseConfig{Path: "semcache.db"},
	}
}

// ResolveConfigPath returns flagValue if set, otherwise $SEMCACHE_CONFIG.
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if cfg.Server.Group == "" {
		cfg.Server.Group = "224.0.0.251"
	}
	if g, err := netip.ParseAddr(cfg.Server.Group); err != nil || !g.Is4() || !g.IsMulticast() {
		return fmt.Errorf("server.group %q is not an IPv4 multicast address", cfg.Server.Group)
	}
	if cfg.Server.Hostname == "" {
		cfg.Server.Hostname = defaultHostname()
	}
	cfg.Server.Hostname = strings.TrimSuffix(cfg.Server.Hostname, ".")
	var err error
	if cfg.Server.ShutdownTimeout, err = parseDuration("server.shutdown_timeout", cfg.Server.ShutdownTimeoutRaw, 5*time.Second); err != nil {
		return err
	}

	rl := cfg.Server.RateLimit
	if rl.GlobalQPS < 0 || rl.GlobalBurst < 0 || rl.SourceQPS < 0 || rl.SourceBurst < 0 || rl.MaxSources < 0 {
		return errors.New("server.rate_limit values must not be negative")
	}

	if err := cfg.Discovery.validate(); err != nil {
		return err
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize management API
	if cfg.API.Host == "" {
		cfg.API.Host = "0.0.0.0"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "semcache.db"
	}

	for i := range cfg.Services {
		svc := &cfg.Services[i]
		svc.Name = strings.TrimSpace(svc.Name)
		if svc.Type == "" {
			svc.Type = DefaultServiceType
		}
		if svc.Port <= 0 || svc.Port > 65535 {
			return fmt.Errorf("services[%d].port must be 1..65535", i)
		}
	}
	return nil
}

func (d *DiscoveryConfig) validate() error {
	var err error
	if d.ProbeMaxDelay, err = parseDuration("discovery.probe_max_delay", d.ProbeMaxDelayRaw, 250*time.Millisecond); err != nil {
		return err
	}
	if d.ProbeInterval, err = parseDuration("discovery.probe_interval", d.ProbeIntervalRaw, 250*time.Millisecond); err != nil {
		return err
	}
	if d.BrowseWait, err = parseDuration("discovery.browse_wait", d.BrowseWaitRaw, 2*time.Second); err != nil {
		return err
	}
	if d.ResolveWait, err = parseDuration("discovery.resolve_wait", d.ResolveWaitRaw, 2*time.Second); err != nil {
		return err
	}
	if d.ProbeCount <= 0 {
		d.ProbeCount = 3
	}
	if d.PTRRetries < 0 || d.ResolveRetries < 0 {
		return errors.New("discovery retries must not be negative")
	}
	if d.HostTTL == 0 {
		d.HostTTL = 120
	}
	if d.ServiceTTL == 0 {
		d.ServiceTTL = 4500
	}
	return nil
}

func parseDuration(field, raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}

// defaultHostname derives "<short host>.local" from the OS host name.
func defaultHostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "semcache.local"
	}
	short, _, _ := strings.Cut(h, ".")
	return strings.ToLower(short) + ".local"
}
