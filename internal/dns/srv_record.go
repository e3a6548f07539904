package dns

import "fmt"

// SRVRecord locates a service instance (RFC 2782). The record name is the
// full instance name, e.g. "My Cache._semcache._tcp.local".
type SRVRecord struct {
	H        RRHeader
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

// NewSRVRecord creates an SRV record in class IN.
func NewSRVRecord(instance string, priority, weight, port uint16, target string, ttl uint32) *SRVRecord {
	return &SRVRecord{
		H:        NewRRHeader(instance, ClassIN, ttl),
		Priority: priority,
		Weight:   weight,
		Port:     port,
		Target:   target,
	}
}

// Type returns TypeSRV.
func (r *SRVRecord) Type() RecordType { return TypeSRV }

// Header returns the record header.
func (r *SRVRecord) Header() RRHeader { return r.H }

// SetHeader sets the record header.
func (r *SRVRecord) SetHeader(h RRHeader) { r.H = h }

// MarshalRData writes priority, weight, port and the target name.
func (r *SRVRecord) MarshalRData() ([]byte, error) {
	b := NewBuffer(6 + len(r.Target) + 2)
	b.PushUint16(r.Priority)
	b.PushUint16(r.Weight)
	b.PushUint16(r.Port)
	if err := WriteName(b, r.Target); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ParseSRVRecord parses an SRV record from r.
func ParseSRVRecord(r *Reader) (*SRVRecord, error) {
	p, err := readTypedPreamble(r, TypeSRV)
	if err != nil {
		return nil, err
	}
	if p.rdlen < 7 {
		return nil, fmt.Errorf("%w: SRV RDATA too short (%d bytes)", ErrDNSError, p.rdlen)
	}
	start := r.Offset()
	rec := &SRVRecord{H: p.header}
	rec.Priority, _ = r.ReadUint16("srv priority")
	rec.Weight, _ = r.ReadUint16("srv weight")
	rec.Port, _ = r.ReadUint16("srv port")
	if rec.Target, err = DecodeName(r); err != nil {
		return nil, err
	}
	if err := checkRDataConsumed(r, start, p); err != nil {
		return nil, err
	}
	return rec, nil
}
