// Package discovery implements DNS-SD registration and browsing on top of an
// mDNS controller: probing for name conflicts, announcing records and
// resolving PTR, SRV and A chains advertised by peers.
package discovery

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/mdns"
)

// Engine is the part of the mDNS controller the client drives.
// *mdns.Controller satisfies it.
type Engine interface {
	Subscribe(fn mdns.Listener) func()
	SendPacket(ctx context.Context, pkt *dns.Packet, dest *net.UDPAddr) error
	MulticastAddr() *net.UDPAddr
	AddRecord(name string, rr dns.Record)
	Records() map[string][]dns.Record
	ClearAllRecords()
	Interfaces() []mdns.Interface
	Stop() error
}

// Options tunes protocol timing.
type Options struct {
	ProbeMaxDelay  time.Duration // upper bound of the random delay before the first probe
	ProbeInterval  time.Duration
	ProbeCount     int
	BrowseWait     time.Duration // PTR collection window
	PTRRetries     int
	ResolveWait    time.Duration // SRV and A wait window
	ResolveRetries int
	HostTTL        uint32 // A and SRV
	ServiceTTL     uint32 // PTR
}

// DefaultOptions returns the standard timings.
func DefaultOptions() Options {
	return Options{
		ProbeMaxDelay:  250 * time.Millisecond,
		ProbeInterval:  250 * time.Millisecond,
		ProbeCount:     3,
		BrowseWait:     2000 * time.Millisecond,
		PTRRetries:     1,
		ResolveWait:    2000 * time.Millisecond,
		ResolveRetries: 2,
		HostTTL:        120,
		ServiceTTL:     4500,
	}
}

// Config configures a Client. Zero values pick the defaults.
type Config struct {
	Clock   clockwork.Clock
	Logger  *slog.Logger
	Options *Options
	// RandomDelay returns the pre-probe delay in [0, max].
	RandomDelay func(max time.Duration) time.Duration
}

// Client runs the discovery protocol over an Engine.
type Client struct {
	engine      Engine
	clock       clockwork.Clock
	logger      *slog.Logger
	opts        Options
	randomDelay func(time.Duration) time.Duration
}

// NewClient creates a client on engine.
func NewClient(engine Engine, cfg Config) *Client {
	c := &Client{
		engine:      engine,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		opts:        DefaultOptions(),
		randomDelay: cfg.RandomDelay,
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if cfg.Options != nil {
		c.opts = *cfg.Options
	}
	if c.randomDelay == nil {
		c.randomDelay = uniformDelay
	}
	return c
}

func uniformDelay(maxDelay time.Duration) time.Duration {
	if maxDelay <= 0 {
		return 0
	}
	return rand.N(maxDelay + 1) //nolint:gosec // timing jitter
}

// Options returns the client's timing options.
func (c *Client) Options() Options { return c.opts }

// Stop stops the underlying engine.
func (c *Client) Stop() error { return c.engine.Stop() }

// ClearAllRecords drops every record this host advertises.
func (c *Client) ClearAllRecords() { c.engine.ClearAllRecords() }

// sleep waits d on the client clock. It returns early with stopErr when
// stop closes, or with the context error.
func (c *Client) sleep(ctx context.Context, d time.Duration, stop <-chan struct{}, stopErr error) error {
	if d <= 0 {
		select {
		case <-stop:
			return stopErr
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	t := c.clock.NewTimer(d)
	defer t.Stop()
	select {
	case <-stop:
		return stopErr
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}

func (c *Client) sendQuery(ctx context.Context, q dns.Question) error {
	return c.engine.SendPacket(ctx, dns.NewQueryPacket(q), c.engine.MulticastAddr())
}
