package mdns

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync"
)

// MemoryNetwork is an in-process stand-in for a LAN segment. Datagrams sent
// to a multicast group reach every connection joined to it on the same
// port, the sender included; unicast datagrams reach the connection bound
// to the destination address. It backs tests and local simulations.
type MemoryNetwork struct {
	mu    sync.Mutex
	conns map[*memoryConn]struct{}
	taps  []func(Datagram)
}

// Datagram is one packet observed on a MemoryNetwork.
type Datagram struct {
	From *net.UDPAddr
	To   *net.UDPAddr
	Data []byte
}

// NewMemoryNetwork returns an empty network.
func NewMemoryNetwork() *MemoryNetwork {
	return &MemoryNetwork{conns: map[*memoryConn]struct{}{}}
}

// Tap registers fn to observe every datagram sent on the network.
// fn runs on the sender's goroutine after delivery.
func (n *MemoryNetwork) Tap(fn func(Datagram)) {
	n.mu.Lock()
	n.taps = append(n.taps, fn)
	n.mu.Unlock()
}

// Transport returns a transport for a host with address ip. ifaces is what
// the host reports from Interfaces; when empty it reports ip itself.
func (n *MemoryNetwork) Transport(ip string, ifaces ...Interface) *MemoryTransport {
	if len(ifaces) == 0 {
		ifaces = []Interface{{Name: "mem0", Address: ip, PrefixLength: 24}}
	}
	return &MemoryTransport{network: n, ip: netip.MustParseAddr(ip), ifaces: ifaces}
}

// Send injects a raw datagram as if sent by from.
func (n *MemoryNetwork) Send(from, to *net.UDPAddr, b []byte) {
	n.deliver(Datagram{From: from, To: to, Data: append([]byte(nil), b...)})
}

func (n *MemoryNetwork) deliver(d Datagram) {
	n.mu.Lock()
	var targets []*memoryConn
	for c := range n.conns {
		if c.port != d.To.Port {
			continue
		}
		if c.group.IsValid() && d.To.IP.Equal(net.IP(c.group.AsSlice())) {
			targets = append(targets, c)
			continue
		}
		if d.To.IP.Equal(net.IP(c.ip.AsSlice())) {
			targets = append(targets, c)
		}
	}
	taps := append([]func(Datagram){}, n.taps...)
	n.mu.Unlock()

	for _, c := range targets {
		c.push(d)
	}
	for _, fn := range taps {
		fn(d)
	}
}

func (n *MemoryNetwork) remove(c *memoryConn) {
	n.mu.Lock()
	delete(n.conns, c)
	n.mu.Unlock()
}

// MemoryTransport is a Transport on a MemoryNetwork.
type MemoryTransport struct {
	network *MemoryNetwork
	ip      netip.Addr
	ifaces  []Interface

	mu sync.Mutex
	// ListenErr, when set, makes the next Listen calls fail with it.
	ListenErr error
	// InterfacesErr, when set, makes Interfaces fail with it.
	InterfacesErr error
	opened        int
}

// Opened reports how many connections were successfully created.
func (t *MemoryTransport) Opened() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened
}

// Listen implements Transport.
func (t *MemoryTransport) Listen(_ context.Context, cfg ListenConfig) (Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ListenErr != nil {
		return nil, t.ListenErr
	}
	c := &memoryConn{
		network: t.network,
		ip:      t.ip,
		port:    cfg.Port,
		group:   cfg.Group,
		inbox:   make(chan Datagram, 256),
		closed:  make(chan struct{}),
	}
	t.network.mu.Lock()
	t.network.conns[c] = struct{}{}
	t.network.mu.Unlock()
	t.opened++
	return c, nil
}

// Interfaces implements Transport.
func (t *MemoryTransport) Interfaces(context.Context) ([]Interface, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.InterfacesErr != nil {
		return nil, t.InterfacesErr
	}
	return append([]Interface(nil), t.ifaces...), nil
}

type memoryConn struct {
	network *MemoryNetwork
	ip      netip.Addr
	port    int
	group   netip.Addr

	inbox     chan Datagram
	closed    chan struct{}
	closeOnce sync.Once
}

func (c *memoryConn) addr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IP(c.ip.AsSlice()), Port: c.port}
}

func (c *memoryConn) push(d Datagram) {
	select {
	case <-c.closed:
	case c.inbox <- d:
	default:
		// Full inbox drops, like a socket buffer overflow.
	}
}

func (c *memoryConn) ReadFrom(b []byte) (int, *net.UDPAddr, error) {
	select {
	case <-c.closed:
		return 0, nil, net.ErrClosed
	case d := <-c.inbox:
		return copy(b, d.Data), d.From, nil
	}
}

func (c *memoryConn) WriteTo(b []byte, to *net.UDPAddr) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}
	if to == nil {
		return 0, errors.New("memory transport: nil destination")
	}
	c.network.deliver(Datagram{From: c.addr(), To: to, Data: append([]byte(nil), b...)})
	return len(b), nil
}

func (c *memoryConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.network.remove(c)
	})
	return nil
}
