package dns

import "fmt"

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes and contains:
//   - ID: 16-bit identifier for matching requests to responses
//   - Flags: 16-bit field containing QR, Opcode, AA, TC, RD, RA, Z, RCODE
//   - QDCount: Number of questions
//   - ANCount: Number of answer resource records
//   - NSCount: Number of authority resource records
//   - ARCount: Number of additional resource records
type Header struct {
	ID      uint16 // Transaction ID
	Flags   uint16 // See enums.go for flag definitions
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority (nameserver) count
	ARCount uint16 // Additional records count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal() ([]byte, error) {
	b := NewBuffer(HeaderSize)
	h.write(b)
	return b.Bytes(), nil
}

func (h Header) write(b *Buffer) {
	b.PushUint16(h.ID)
	b.PushUint16(h.Flags)
	b.PushUint16(h.QDCount)
	b.PushUint16(h.ANCount)
	b.PushUint16(h.NSCount)
	b.PushUint16(h.ARCount)
}

// ParseHeader parses a DNS header from r, advancing it by 12 bytes.
func ParseHeader(r *Reader) (Header, error) {
	if r.Remaining() < HeaderSize {
		return Header{}, fmt.Errorf("%w: unexpected EOF while reading DNS header", ErrDNSError)
	}
	var h Header
	// Remaining was checked, so the reads below cannot fail.
	h.ID, _ = r.ReadUint16("id")
	h.Flags, _ = r.ReadUint16("flags")
	h.QDCount, _ = r.ReadUint16("qdcount")
	h.ANCount, _ = r.ReadUint16("ancount")
	h.NSCount, _ = r.ReadUint16("nscount")
	h.ARCount, _ = r.ReadUint16("arcount")
	return h, nil
}

// Flags is the unpacked form of the header flags word.
type Flags struct {
	IsQuery            bool // QR=0
	Opcode             Opcode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	RCode              RCode
}

// Validate checks that Opcode and RCode fit their 4-bit fields.
func (f Flags) Validate() error {
	if f.Opcode > 15 {
		return fmt.Errorf("%w: opcode %d out of range 0..15", ErrDNSError, f.Opcode)
	}
	if f.RCode > 15 {
		return fmt.Errorf("%w: rcode %d out of range 0..15", ErrDNSError, f.RCode)
	}
	return nil
}

// PackFlags packs f into the 16-bit header flags word.
// Opcode and RCode are masked to 4 bits; the Z bits are always zero.
func PackFlags(f Flags) uint16 {
	var w uint16
	if !f.IsQuery {
		w |= QRFlag
	}
	w |= (uint16(f.Opcode) << opcodeShift) & OpcodeMask
	if f.Authoritative {
		w |= AAFlag
	}
	if f.Truncated {
		w |= TCFlag
	}
	if f.RecursionDesired {
		w |= RDFlag
	}
	if f.RecursionAvailable {
		w |= RAFlag
	}
	w |= uint16(f.RCode) & RCodeMask
	return w
}

// UnpackFlags is the inverse of PackFlags. Z bits are ignored.
func UnpackFlags(w uint16) Flags {
	return Flags{
		IsQuery:            w&QRFlag == 0,
		Opcode:             Opcode((w & OpcodeMask) >> opcodeShift),
		Authoritative:      w&AAFlag != 0,
		Truncated:          w&TCFlag != 0,
		RecursionDesired:   w&RDFlag != 0,
		RecursionAvailable: w&RAFlag != 0,
		RCode:              RCodeFromFlags(w),
	}
}

// IsQuery returns true if this is a query (QR=0), false if it's a response (QR=1).
func (h Header) IsQuery() bool {
	return h.Flags&QRFlag == 0
}

// IsResponse returns true if this is a response (QR=1), false if it's a query (QR=0).
func (h Header) IsResponse() bool {
	return h.Flags&QRFlag != 0
}

// Authoritative returns true if the AA (Authoritative Answer) flag is set.
func (h Header) Authoritative() bool {
	return h.Flags&AAFlag != 0
}

// Truncated returns true if the TC (Truncated) flag is set.
func (h Header) Truncated() bool {
	return h.Flags&TCFlag != 0
}
