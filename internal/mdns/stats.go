package mdns

import (
	"sync/atomic"
)

// Stats collects controller traffic counters.
// All methods are safe for concurrent use.
type Stats struct {
	received        atomic.Uint64
	decodeErrors    atomic.Uint64
	queriesSeen     atomic.Uint64
	queriesAnswered atomic.Uint64
	sent            atomic.Uint64
	sendErrors      atomic.Uint64
	rateLimited     atomic.Uint64
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{}
}

// RecordReceived records one datagram read from the socket.
func (s *Stats) RecordReceived() {
	s.received.Add(1)
}

// RecordDecodeError records a datagram that failed to decode.
func (s *Stats) RecordDecodeError() {
	s.decodeErrors.Add(1)
}

// RecordQuery records a decoded query. answered is true when at least one
// response was sent for it.
func (s *Stats) RecordQuery(answered bool) {
	s.queriesSeen.Add(1)
	if answered {
		s.queriesAnswered.Add(1)
	}
}

// RecordRateLimited records a query left unanswered by the rate limiter.
func (s *Stats) RecordRateLimited() {
	s.rateLimited.Add(1)
}

// RecordSend records the outcome of one outgoing datagram.
func (s *Stats) RecordSend(err error) {
	if err != nil {
		s.sendErrors.Add(1)
		return
	}
	s.sent.Add(1)
}

// StatsSnapshot is a point-in-time snapshot of controller statistics.
type StatsSnapshot struct {
	Received        uint64 `json:"received"`
	DecodeErrors    uint64 `json:"decode_errors"`
	QueriesSeen     uint64 `json:"queries_seen"`
	QueriesAnswered uint64 `json:"queries_answered"`
	Sent            uint64 `json:"sent"`
	SendErrors      uint64 `json:"send_errors"`
	RateLimited     uint64 `json:"rate_limited"`
}

// Snapshot returns the current statistics.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Received:        s.received.Load(),
		DecodeErrors:    s.decodeErrors.Load(),
		QueriesSeen:     s.queriesSeen.Load(),
		QueriesAnswered: s.queriesAnswered.Load(),
		Sent:            s.sent.Load(),
		SendErrors:      s.sendErrors.Load(),
		RateLimited:     s.rateLimited.Load(),
	}
}
