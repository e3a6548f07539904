package config

import "time"

// ServerConfig contains the mDNS engine settings.
type ServerConfig struct {
	// Hostname is the .local host name advertised in A and SRV records.
	// Empty means the OS host name with a ".local" suffix.
	Hostname string `json:"hostname" yaml:"hostname"`
	Port     int    `json:"port" yaml:"port"`
	Group    string `json:"group" yaml:"group"`
	// Interfaces restricts the NICs used; empty means all.
	Interfaces         []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	ShutdownTimeoutRaw string          `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	ShutdownTimeout    time.Duration   `json:"-" yaml:"-"`
	RateLimit          RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`
}

// RateLimitConfig limits how many queries the engine answers. A zero rate
// or burst disables that level.
type RateLimitConfig struct {
	GlobalQPS   float64 `json:"global_qps" yaml:"global_qps"`
	GlobalBurst int     `json:"global_burst" yaml:"global_burst"`
	SourceQPS   float64 `json:"source_qps" yaml:"source_qps"`
	SourceBurst int     `json:"source_burst" yaml:"source_burst"`
	MaxSources  int     `json:"max_sources" yaml:"max_sources"`
}

// DiscoveryConfig contains protocol timings. Durations are strings such as
// "250ms"; Validate fills the parsed fields.
type DiscoveryConfig struct {
	ProbeMaxDelayRaw string `json:"probe_max_delay" yaml:"probe_max_delay"`
	ProbeIntervalRaw string `json:"probe_interval" yaml:"probe_interval"`
	ProbeCount       int    `json:"probe_count" yaml:"probe_count"`
	BrowseWaitRaw    string `json:"browse_wait" yaml:"browse_wait"`
	PTRRetries       int    `json:"ptr_retries" yaml:"ptr_retries"`
	ResolveWaitRaw   string `json:"resolve_wait" yaml:"resolve_wait"`
	ResolveRetries   int    `json:"resolve_retries" yaml:"resolve_retries"`
	HostTTL          uint32 `json:"host_ttl" yaml:"host_ttl"`
	ServiceTTL       uint32 `json:"service_ttl" yaml:"service_ttl"`

	ProbeMaxDelay time.Duration `json:"-" yaml:"-"`
	ProbeInterval time.Duration `json:"-" yaml:"-"`
	BrowseWait    time.Duration `json:"-" yaml:"-"`
	ResolveWait   time.Duration `json:"-" yaml:"-"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `json:"level" yaml:"level"`
	Structured       bool              `json:"structured" yaml:"structured"`
	StructuredFormat string            `json:"structured_format" yaml:"structured_format"`
	IncludePID       bool              `json:"include_pid" yaml:"include_pid"`
	ExtraFields      map[string]string `json:"extra_fields,omitempty" yaml:"extra_fields,omitempty"`
}

// APIConfig contains management API settings.
//
// Note: APIKey is treated as a secret and is never returned by API endpoints.
type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// PagesDir is served read-only under /pages when set.
	PagesDir string `json:"pages_dir,omitempty" yaml:"pages_dir,omitempty"`
}

// DatabaseConfig locates the settings database.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// ServiceConfig is a service advertised at startup. An empty Name uses the
// instance.name setting, falling back to the first label of the hostname.
type ServiceConfig struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Port int    `json:"port" yaml:"port"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	API       APIConfig       `json:"api" yaml:"api"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Services  []ServiceConfig `json:"services,omitempty" yaml:"services,omitempty"`
}
