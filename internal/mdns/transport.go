package mdns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"slices"
	"strconv"
	"syscall"

	psnet "github.com/shirou/gopsutil/v3/net"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// Ports and group address for multicast DNS.
const (
	// StandardPort is the IANA-assigned mDNS port (RFC 6762).
	StandardPort = 5353
	// DefaultPort keeps the engine isolated from the host's system
	// responder (Avahi, Bonjour) that normally owns 5353.
	DefaultPort = 53531
	// DefaultGroup is the IPv4 mDNS multicast group.
	DefaultGroup = "224.0.0.251"
)

// Interface is a non-loopback IPv4 address of the host.
type Interface struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	PrefixLength int    `json:"prefix_length"`
}

// ListenConfig describes the socket a Transport should open.
type ListenConfig struct {
	Port  int
	Group netip.Addr
}

// Conn is an open mDNS socket: bound, joined to the group.
type Conn interface {
	ReadFrom(b []byte) (n int, from *net.UDPAddr, err error)
	WriteTo(b []byte, to *net.UDPAddr) (int, error)
	Close() error
}

// Transport is the host socket facility the Controller runs on.
type Transport interface {
	// Listen creates a socket bound to 0.0.0.0:cfg.Port and joined to
	// cfg.Group. On failure no socket is left open.
	Listen(ctx context.Context, cfg ListenConfig) (Conn, error)

	// Interfaces lists the host's non-loopback IPv4 addresses.
	Interfaces(ctx context.Context) ([]Interface, error)
}

// UDPTransport is the production Transport backed by real sockets.
type UDPTransport struct {
	Logger *slog.Logger
	// InterfaceNames restricts group membership and advertised addresses.
	// Empty means every multicast-capable interface.
	InterfaceNames []string
}

// Listen implements Transport.
func (t *UDPTransport) Listen(ctx context.Context, cfg ListenConfig) (Conn, error) {
	lc := net.ListenConfig{Control: reuseAddrControl}
	addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Port))
	pc, err := lc.ListenPacket(ctx, "udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	udp, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, fmt.Errorf("bind %s: unexpected connection type %T", addr, pc)
	}

	p := ipv4.NewPacketConn(udp)
	group := &net.UDPAddr{IP: net.IP(cfg.Group.AsSlice())}
	if err := t.joinGroup(p, group); err != nil {
		_ = udp.Close()
		return nil, fmt.Errorf("join %s: %w", cfg.Group, err)
	}
	// Loopback lets several engines on one host see each other.
	if err := p.SetMulticastLoopback(true); err != nil && t.Logger != nil {
		t.Logger.Warn("mdns: multicast loopback unavailable", "err", err)
	}
	// RFC 6762 Section 11: mDNS packets are sent with IP TTL 255.
	_ = p.SetMulticastTTL(255)

	return &udpConn{conn: udp}, nil
}

// joinGroup joins group on every selected multicast interface and succeeds
// if at least one join worked.
func (t *UDPTransport) joinGroup(p *ipv4.PacketConn, group *net.UDPAddr) error {
	ifis, err := net.Interfaces()
	if err != nil {
		return err
	}
	var errs []error
	joined := 0
	for i := range ifis {
		ifi := &ifis[i]
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		if len(t.InterfaceNames) > 0 && !slices.Contains(t.InterfaceNames, ifi.Name) {
			continue
		}
		if err := p.JoinGroup(ifi, group); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ifi.Name, err))
			continue
		}
		joined++
	}
	if joined > 0 {
		return nil
	}
	// Fall back to the system default interface.
	if err := p.JoinGroup(nil, group); err != nil {
		errs = append(errs, err)
		return errors.Join(errs...)
	}
	return nil
}

// Interfaces implements Transport using gopsutil's interface listing.
func (t *UDPTransport) Interfaces(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	out := make([]Interface, 0, len(stats))
	for _, s := range stats {
		if slices.Contains(s.Flags, "loopback") || !slices.Contains(s.Flags, "up") {
			continue
		}
		if len(t.InterfaceNames) > 0 && !slices.Contains(t.InterfaceNames, s.Name) {
			continue
		}
		for _, a := range s.Addrs {
			prefix, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			ip := prefix.Addr()
			if !ip.Is4() || ip.IsLoopback() {
				continue
			}
			out = append(out, Interface{Name: s.Name, Address: ip.String(), PrefixLength: prefix.Bits()})
		}
	}
	return out, nil
}

// reuseAddrControl sets SO_REUSEADDR and SO_REUSEPORT so the engine can
// share the port with other mDNS listeners on the host.
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		if opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); opErr != nil {
			return
		}
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}
	return opErr
}

type udpConn struct {
	conn *net.UDPConn
}

func (c *udpConn) ReadFrom(b []byte) (int, *net.UDPAddr, error) {
	return c.conn.ReadFromUDP(b)
}

func (c *udpConn) WriteTo(b []byte, to *net.UDPAddr) (int, error) {
	return c.conn.WriteToUDP(b, to)
}

func (c *udpConn) Close() error {
	return c.conn.Close()
}
