// Package mdns runs the multicast DNS socket: it keeps the records this host
// answers for, replies to matching queries, and fans every decoded packet out
// to subscribers.
package mdns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroosing/semcache/internal/dns"
	"github.com/jroosing/semcache/internal/pool"
)

var (
	// ErrNotStarted is returned when sending on a stopped controller.
	ErrNotStarted = errors.New("mdns: controller not started")
	// ErrStarting is returned by Start while another Start is in progress.
	ErrStarting = errors.New("mdns: controller is starting")
)

// State is the controller lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateStarted
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	}
	return "unknown"
}

// Listener observes every packet decoded by the controller.
type Listener func(pkt *dns.Packet, from *net.UDPAddr)

// Config holds controller settings. Zero values pick the defaults.
type Config struct {
	Port   int
	Group  string
	Logger *slog.Logger
	// Limiter, when set, gates which queries get answered.
	Limiter *RateLimiter
}

var bufferPool = pool.NewBuffers(dns.MaxIncomingDNSMessageSize)

// Read failures other than a closed socket are retried after a delay that
// doubles from minReadBackoff up to maxReadBackoff.
const (
	minReadBackoff = 5 * time.Millisecond
	maxReadBackoff = time.Second
)

// Controller owns the mDNS socket, the local record store and the observer
// list. Create one per process and share it.
type Controller struct {
	transport Transport
	logger    *slog.Logger
	port      int
	group     netip.Addr

	store   *Store
	stats   *Stats
	limiter *RateLimiter

	nextID atomic.Uint32

	mu     sync.Mutex
	state  State
	conn   Conn
	ifaces []Interface
	stop   chan struct{}
	done   chan struct{}

	subMu  sync.Mutex
	subSeq uint64
	subs   map[uint64]Listener
}

// NewController creates a stopped controller on transport.
func NewController(transport Transport, cfg Config) (*Controller, error) {
	if transport == nil {
		return nil, errors.New("mdns: nil transport")
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("mdns: invalid port %d", port)
	}
	groupStr := cfg.Group
	if groupStr == "" {
		groupStr = DefaultGroup
	}
	group, err := netip.ParseAddr(groupStr)
	if err != nil || !group.Is4() || !group.IsMulticast() {
		return nil, fmt.Errorf("mdns: invalid multicast group %q", groupStr)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		transport: transport,
		logger:    logger,
		port:      port,
		group:     group,
		store:     NewStore(),
		stats:     NewStats(),
		limiter:   cfg.Limiter,
		subs:      map[uint64]Listener{},
	}, nil
}

// Start opens the socket, caches the host interfaces and starts the read
// loop. Calling Start on a started controller is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateStarted:
		c.mu.Unlock()
		return nil
	case StateStarting:
		c.mu.Unlock()
		return ErrStarting
	}
	c.state = StateStarting
	c.mu.Unlock()

	conn, ifaces, err := c.open(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateStopped
		c.mu.Unlock()
		return err
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	c.mu.Lock()
	c.conn = conn
	c.ifaces = ifaces
	c.stop = stop
	c.done = done
	c.state = StateStarted
	c.mu.Unlock()

	go c.readLoop(conn, stop, done)

	c.logger.Info("mdns controller started",
		"port", c.port,
		"group", c.group.String(),
		"interfaces", len(ifaces),
	)
	return nil
}

func (c *Controller) open(ctx context.Context) (Conn, []Interface, error) {
	conn, err := c.transport.Listen(ctx, ListenConfig{Port: c.port, Group: c.group})
	if err != nil {
		return nil, nil, fmt.Errorf("mdns: listen: %w", err)
	}
	ifaces, err := c.transport.Interfaces(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("mdns: interfaces: %w", err)
	}
	return conn, ifaces, nil
}

// Stop closes the socket and waits for the read loop to exit. Records and
// subscribers are kept.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateStarted {
		c.mu.Unlock()
		return nil
	}
	conn, stop, done := c.conn, c.stop, c.done
	c.conn = nil
	c.stop = nil
	c.done = nil
	c.state = StateStopped
	c.mu.Unlock()

	close(stop)
	err := conn.Close()
	<-done
	c.logger.Info("mdns controller stopped")
	return err
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) currentConn() Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// readLoop reads datagrams from conn until it is closed or stop fires.
// Datagrams that arrive after conn stopped being the active socket are
// dropped.
func (c *Controller) readLoop(conn Conn, stop <-chan struct{}, done chan struct{}) {
	defer close(done)
	backoff := minReadBackoff
	failures := 0
	for {
		bufPtr := bufferPool.Get()
		buf := *bufPtr
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			bufferPool.Put(bufPtr)
			if errors.Is(err, net.ErrClosed) || c.currentConn() != conn {
				return
			}
			failures++
			if failures == 1 || failures%100 == 0 {
				c.logger.Warn("mdns read failed", "err", err, "consecutive", failures, "retry_in", backoff)
			}
			t := time.NewTimer(backoff)
			select {
			case <-stop:
				t.Stop()
				return
			case <-t.C:
			}
			backoff = min(2*backoff, maxReadBackoff)
			continue
		}
		backoff = minReadBackoff
		failures = 0
		data := make([]byte, n)
		copy(data, buf[:n])
		bufferPool.Put(bufPtr)

		if c.currentConn() != conn {
			continue
		}
		c.stats.RecordReceived()

		pkt, err := dns.ParsePacket(data)
		if err != nil {
			c.stats.RecordDecodeError()
			c.logger.Debug("mdns dropped undecodable datagram", "from", from.String(), "err", err)
			continue
		}
		c.HandleIncomingPacket(context.Background(), pkt, from)
	}
}

// HandleIncomingPacket notifies every subscriber of pkt and, if it is a
// query, answers each question that matches stored records. Answers go
// unicast to from when the question's QU bit is set, otherwise to the group.
func (c *Controller) HandleIncomingPacket(ctx context.Context, pkt *dns.Packet, from *net.UDPAddr) {
	for _, fn := range c.listeners() {
		fn(pkt, from)
	}

	if !pkt.IsQuery() || len(pkt.Questions) == 0 {
		return
	}
	if from != nil && c.limiter != nil {
		if src, ok := netip.AddrFromSlice(from.IP); ok && !c.limiter.Allow(src) {
			c.stats.RecordRateLimited()
			c.logger.Debug("mdns query rate limited", "from", from.String())
			return
		}
	}

	answered := false
	for _, q := range pkt.Questions {
		matches := c.store.Match(q)
		if len(matches) == 0 {
			continue
		}
		resp := dns.NewResponsePacket()
		resp.Answers = matches

		dest := c.MulticastAddr()
		if q.UnicastResponse() && from != nil {
			dest = from
		}
		if err := c.SendPacket(ctx, resp, dest); err != nil {
			c.logger.Warn("mdns response failed", "question", q.Name, "to", dest.String(), "err", err)
			continue
		}
		answered = true
	}
	c.stats.RecordQuery(answered)
}

func (c *Controller) listeners() []Listener {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	out := make([]Listener, 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

// Subscribe registers fn for every decoded packet and returns a function
// that removes it. Calling the returned function more than once is safe.
func (c *Controller) Subscribe(fn Listener) func() {
	c.subMu.Lock()
	c.subSeq++
	id := c.subSeq
	c.subs[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

// SendPacket stamps pkt with the next packet id, encodes it and writes one
// datagram to dest. Ids wrap from 65535 to 0.
func (c *Controller) SendPacket(_ context.Context, pkt *dns.Packet, dest *net.UDPAddr) error {
	conn := c.currentConn()
	if conn == nil {
		return ErrNotStarted
	}
	pkt.ID = uint16(c.nextID.Add(1) - 1) //nolint:gosec // 16-bit id space
	data, err := pkt.Marshal()
	if err != nil {
		return fmt.Errorf("mdns: encode: %w", err)
	}
	_, err = conn.WriteTo(data, dest)
	c.stats.RecordSend(err)
	if err != nil {
		return fmt.Errorf("mdns: send to %s: %w", dest, err)
	}
	return nil
}

// MulticastAddr returns the group address and port packets are sent to.
func (c *Controller) MulticastAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IP(c.group.AsSlice()), Port: c.port}
}

// Port returns the mDNS port in use.
func (c *Controller) Port() int { return c.port }

// AddRecord stores rr under name.
func (c *Controller) AddRecord(name string, rr dns.Record) {
	c.store.Add(name, rr)
}

// Records returns a copy of the local store keyed by normalized name.
func (c *Controller) Records() map[string][]dns.Record {
	return c.store.Records()
}

// AllRecords returns every local record in insertion order.
func (c *Controller) AllRecords() []dns.Record {
	return c.store.All()
}

// ClearAllRecords empties the local store.
func (c *Controller) ClearAllRecords() {
	c.store.Clear()
}

// Interfaces returns the addresses cached at the last Start.
func (c *Controller) Interfaces() []Interface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Interface(nil), c.ifaces...)
}

// Stats returns the controller counters.
func (c *Controller) Stats() *Stats { return c.stats }
