package dns

import (
	"fmt"
	"net/netip"
)

// ARecord is an IPv4 address record. IP holds the dotted-quad form.
type ARecord struct {
	H  RRHeader
	IP string
}

// NewARecord creates an A record for ip in class IN.
func NewARecord(name, ip string, ttl uint32) *ARecord {
	return &ARecord{H: NewRRHeader(name, ClassIN, ttl), IP: ip}
}

// Type returns TypeA.
func (r *ARecord) Type() RecordType { return TypeA }

// Header returns the record header.
func (r *ARecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *ARecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData writes one raw byte per octet.
func (r *ARecord) MarshalRData() ([]byte, error) {
	addr, err := netip.ParseAddr(r.IP)
	if err != nil || !addr.Is4() {
		return nil, fmt.Errorf("%w: invalid IPv4 address %q", ErrDNSError, r.IP)
	}
	b := addr.As4()
	return b[:], nil
}

// ParseARecord parses an A record (RFC 1035 §3.4.1) from r.
func ParseARecord(r *Reader) (*ARecord, error) {
	p, err := readTypedPreamble(r, TypeA)
	if err != nil {
		return nil, err
	}
	if p.rdlen != 4 {
		return nil, fmt.Errorf("%w: A record must be 4 bytes (RFC 1035 §3.4.1), got %d", ErrDNSError, p.rdlen)
	}
	raw := r.ReadBytes(4).Bytes()
	ip := netip.AddrFrom4([4]byte{raw[0], raw[1], raw[2], raw[3]})
	return &ARecord{H: p.header, IP: ip.String()}, nil
}
