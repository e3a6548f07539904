package dns

import (
	"fmt"

	"github.com/jroosing/semcache/internal/helpers"
)

// RRHeader contains common metadata for DNS resource records.
// This is distinct from Header which is the DNS message header.
type RRHeader struct {
	Name  string
	Class uint16
	TTL   uint32
}

// NewRRHeader creates a new resource record header.
func NewRRHeader(name string, class RecordClass, ttl uint32) RRHeader {
	return RRHeader{Name: name, Class: uint16(class), TTL: ttl}
}

// Record is the interface for DNS resource records.
// All DNS records implement this interface for type-safe handling.
type Record interface {
	// Type returns the DNS record type.
	Type() RecordType

	// Header returns the record's metadata.
	Header() RRHeader

	// SetHeader sets the record's metadata.
	SetHeader(h RRHeader)

	// MarshalRData marshals the record-specific data (RDATA) to wire format.
	MarshalRData() ([]byte, error)
}

// rrFixedLen is the size of TYPE, CLASS, TTL and RDLENGTH.
const rrFixedLen = 10

// MarshalRecord converts a Record to wire-format bytes:
// name, type(2), class(2), ttl(4), rdlength(2), rdata.
func MarshalRecord(r Record) ([]byte, error) {
	b := NewBuffer(64)
	if err := writeRecord(b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func writeRecord(b *Buffer, r Record) error {
	rdata, err := r.MarshalRData()
	if err != nil {
		return err
	}
	if len(rdata) > 65535 {
		return fmt.Errorf("%w: rdata too large: %d bytes (max 65535)", ErrDNSError, len(rdata))
	}
	h := r.Header()
	if err := WriteName(b, h.Name); err != nil {
		return err
	}
	b.PushUint16(uint16(r.Type()))
	b.PushUint16(h.Class)
	b.PushUint32(h.TTL)
	b.PushUint16(helpers.ClampIntToUint16(len(rdata)))
	b.AppendBytes(rdata)
	return nil
}

// rrPreamble is the decoded common part of a resource record.
type rrPreamble struct {
	header RRHeader
	rtype  RecordType
	rdlen  int
}

// readPreamble reads name, type, class, ttl and rdlength, and checks that
// the declared rdata is present.
func readPreamble(r *Reader) (rrPreamble, error) {
	name, err := DecodeName(r)
	if err != nil {
		return rrPreamble{}, err
	}
	if r.Remaining() < rrFixedLen {
		return rrPreamble{}, fmt.Errorf("%w: unexpected EOF while reading DNS record", ErrDNSError)
	}
	rt, _ := r.ReadUint16("type")
	class, _ := r.ReadUint16("class")
	ttl, _ := r.ReadUint32("ttl")
	rdlen, _ := r.ReadUint16("rdlength")
	if r.Remaining() < int(rdlen) {
		return rrPreamble{}, fmt.Errorf("%w: unexpected EOF while reading DNS record rdata", ErrDNSError)
	}
	return rrPreamble{
		header: RRHeader{Name: name, Class: class, TTL: ttl},
		rtype:  RecordType(rt),
		rdlen:  int(rdlen),
	}, nil
}

// readTypedPreamble reads the preamble and fails with ErrRecordTypeMismatch
// unless the wire type is want.
func readTypedPreamble(r *Reader, want RecordType) (rrPreamble, error) {
	p, err := readPreamble(r)
	if err != nil {
		return rrPreamble{}, err
	}
	if p.rtype != want {
		return rrPreamble{}, fmt.Errorf("%w: expected %s, got %s", ErrRecordTypeMismatch, want, p.rtype)
	}
	return p, nil
}

// checkRDataConsumed verifies a parser consumed exactly rdlen bytes.
func checkRDataConsumed(r *Reader, start int, p rrPreamble) error {
	if r.Offset()-start != p.rdlen {
		return fmt.Errorf("%w: %s record RDATA length mismatch", ErrDNSError, p.rtype)
	}
	return nil
}

// PeekRecordType returns the type of the record starting at r without
// moving r's cursor.
func PeekRecordType(r *Reader) (RecordType, error) {
	c := r.Clone()
	if _, err := DecodeName(c); err != nil {
		return 0, err
	}
	v, err := c.ReadUint16("record type")
	if err != nil {
		return 0, err
	}
	return RecordType(v), nil
}

// ParseRecord parses one resource record, choosing the variant decoder by
// peeking at the type field. Types without a dedicated variant decode as
// OpaqueRecord.
func ParseRecord(r *Reader) (Record, error) {
	rt, err := PeekRecordType(r)
	if err != nil {
		return nil, err
	}
	switch rt {
	case TypeA:
		return ParseARecord(r)
	case TypePTR:
		return ParsePTRRecord(r)
	case TypeSRV:
		return ParseSRVRecord(r)
	default:
		return ParseOpaqueRecord(r)
	}
}

// RecordString renders r in presentation format for logs and CLI output.
func RecordString(r Record) string {
	h := r.Header()
	name := h.Name
	if name == "" {
		name = "."
	}
	prefix := fmt.Sprintf("%s %d CLASS%d %s", name, h.TTL, h.Class, r.Type())
	if h.Class == uint16(ClassIN) {
		prefix = fmt.Sprintf("%s %d IN %s", name, h.TTL, r.Type())
	}
	switch v := r.(type) {
	case *ARecord:
		return prefix + " " + v.IP
	case *PTRRecord:
		return prefix + " " + v.Instance
	case *SRVRecord:
		return fmt.Sprintf("%s %d %d %d %s", prefix, v.Priority, v.Weight, v.Port, v.Target)
	case *OpaqueRecord:
		return fmt.Sprintf("%s \\# %d", prefix, len(v.Data))
	default:
		return prefix
	}
}
