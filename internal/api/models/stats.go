package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string             `json:"uptime"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	StartTime     time.Time          `json:"start_time"`
	GoRoutines    int                `json:"goroutines"`
	MemoryAllocMB float64            `json:"memory_alloc_mb"`
	NumCPU        int                `json:"num_cpu"`
	MDNS          *MDNSStatsResponse `json:"mdns,omitempty"`
}

// MDNSStatsResponse contains mDNS engine statistics.
type MDNSStatsResponse struct {
	State           string              `json:"state"`
	Received        uint64              `json:"received"`
	DecodeErrors    uint64              `json:"decode_errors"`
	QueriesSeen     uint64              `json:"queries_seen"`
	QueriesAnswered uint64              `json:"queries_answered"`
	Sent            uint64              `json:"sent"`
	SendErrors      uint64              `json:"send_errors"`
	RateLimited     uint64              `json:"rate_limited"`
	LocalRecords    int                 `json:"local_records"`
	Interfaces      []InterfaceResponse `json:"interfaces"`
}

// InterfaceResponse is one IPv4 address the engine advertises.
type InterfaceResponse struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	PrefixLength int    `json:"prefix_length"`
}
