package models

import "github.com/jroosing/semcache/internal/config"

// APIConfigResponse is a redacted version of APIConfig (no api_key exposed).
type APIConfigResponse struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	PagesDir string `json:"pages_dir,omitempty"`
}

// ServerConfigResponse is the mDNS engine configuration.
type ServerConfigResponse struct {
	Hostname   string   `json:"hostname"`
	Port       int      `json:"port"`
	Group      string   `json:"group"`
	Interfaces []string `json:"interfaces,omitempty"`
}

// DiscoveryConfigResponse reports protocol timings as duration strings.
type DiscoveryConfigResponse struct {
	ProbeMaxDelay  string `json:"probe_max_delay"`
	ProbeInterval  string `json:"probe_interval"`
	ProbeCount     int    `json:"probe_count"`
	BrowseWait     string `json:"browse_wait"`
	PTRRetries     int    `json:"ptr_retries"`
	ResolveWait    string `json:"resolve_wait"`
	ResolveRetries int    `json:"resolve_retries"`
	HostTTL        uint32 `json:"host_ttl"`
	ServiceTTL     uint32 `json:"service_ttl"`
}

// ConfigResponse is the API response for GET /config.
type ConfigResponse struct {
	Server    ServerConfigResponse    `json:"server"`
	Discovery DiscoveryConfigResponse `json:"discovery"`
	Logging   config.LoggingConfig    `json:"logging"`
	API       APIConfigResponse       `json:"api"`
	Services  []config.ServiceConfig  `json:"services,omitempty"`
}
