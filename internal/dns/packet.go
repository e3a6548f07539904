package dns

import (
	"fmt"

	"github.com/jroosing/semcache/internal/helpers"
)

// Packet represents a complete DNS message (RFC 1035 Section 4.1).
//
// DNS messages are composed of five sections:
//   - Header: Transaction ID, flags, section counts
//   - Questions: What is being asked
//   - Answers: Resource records answering the question
//   - Authorities: Name servers authoritative for the domain
//   - Additionals: Extra records for optimization
//
// Section counts are derived from the slices when marshaling.
type Packet struct {
	ID          uint16
	Flags       Flags
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Additionals []Record
}

// NewPacket creates an empty packet after validating id (0..65535) and the
// 4-bit opcode and rcode fields.
func NewPacket(id int, flags Flags) (*Packet, error) {
	if id < 0 || id > 0xFFFF {
		return nil, fmt.Errorf("%w: packet id %d out of range 0..65535", ErrDNSError, id)
	}
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	return &Packet{ID: uint16(id), Flags: flags}, nil
}

// NewQueryPacket creates a standard query carrying questions.
func NewQueryPacket(questions ...Question) *Packet {
	return &Packet{
		Flags:     Flags{IsQuery: true, Opcode: OpcodeQuery},
		Questions: questions,
	}
}

// NewResponsePacket creates an empty authoritative mDNS response: id 0,
// QR=1, opcode 0, AA=1, all other flags clear. mDNS responses never echo
// the questions (RFC 6762 Section 6), so none are added.
func NewResponsePacket() *Packet {
	return &Packet{
		Flags: Flags{IsQuery: false, Opcode: OpcodeQuery, Authoritative: true},
	}
}

// IsQuery reports whether the packet is a query (QR=0).
func (p *Packet) IsQuery() bool { return p.Flags.IsQuery }

// Header returns the wire header for the packet's current contents.
func (p *Packet) Header() Header {
	return Header{
		ID:      p.ID,
		Flags:   PackFlags(p.Flags),
		QDCount: helpers.ClampIntToUint16(len(p.Questions)),
		ANCount: helpers.ClampIntToUint16(len(p.Answers)),
		NSCount: helpers.ClampIntToUint16(len(p.Authorities)),
		ARCount: helpers.ClampIntToUint16(len(p.Additionals)),
	}
}

// Marshal serializes the packet to DNS wire format (big-endian).
func (p *Packet) Marshal() ([]byte, error) {
	if err := p.Flags.Validate(); err != nil {
		return nil, err
	}
	// Estimate capacity: header(12) + question(~50) + records(~100 each)
	estimatedSize := HeaderSize + len(p.Questions)*50 + (len(p.Answers)+len(p.Authorities)+len(p.Additionals))*100
	b := NewBuffer(estimatedSize)
	p.Header().write(b)

	for _, q := range p.Questions {
		if err := q.write(b); err != nil {
			return nil, err
		}
	}
	for _, section := range [][]Record{p.Answers, p.Authorities, p.Additionals} {
		for _, r := range section {
			if err := writeRecord(b, r); err != nil {
				return nil, err
			}
		}
	}
	return b.Bytes(), nil
}

// ParsePacket decodes a complete datagram.
func ParsePacket(msg []byte) (*Packet, error) {
	if len(msg) > MaxIncomingDNSMessageSize {
		return nil, fmt.Errorf("%w: dns message too large (%d bytes)", ErrDNSError, len(msg))
	}
	r := NewReader(msg)
	h, err := ParseHeader(r)
	if err != nil {
		return nil, err
	}
	if r.Offset() != HeaderSize {
		return nil, fmt.Errorf("%w: header consumed %d bytes, want %d", ErrDNSError, r.Offset(), HeaderSize)
	}
	if err := validateSectionCounts(h); err != nil {
		return nil, err
	}

	p := &Packet{ID: h.ID, Flags: UnpackFlags(h.Flags)}

	for range h.QDCount {
		q, err := ParseQuestion(r)
		if err != nil {
			return nil, err
		}
		p.Questions = append(p.Questions, q)
	}
	if p.Answers, err = parseSection(r, h.ANCount); err != nil {
		return nil, err
	}
	if p.Authorities, err = parseSection(r, h.NSCount); err != nil {
		return nil, err
	}
	if p.Additionals, err = parseSection(r, h.ARCount); err != nil {
		return nil, err
	}
	return p, nil
}

// parseSection returns nil for an empty section so decoded packets compare
// equal to freshly built ones.
func parseSection(r *Reader, count uint16) ([]Record, error) {
	var out []Record
	for range count {
		rr, err := ParseRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}
