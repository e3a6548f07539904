package dns

import "strconv"

// DNS header flags and masks (RFC 1035 Section 4.1.1)
//
// The 16-bit flags field has the following layout:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
//
// The three Z bits are always written as zero.
const (
	QRFlag     uint16 = 0x8000 // Query/Response: 1 = response, 0 = query
	OpcodeMask uint16 = 0x7800 // Bits 14-11: operation type (use >> 11 to extract)
	AAFlag     uint16 = 0x0400 // Authoritative Answer
	TCFlag     uint16 = 0x0200 // Truncation: message was truncated
	RDFlag     uint16 = 0x0100 // Recursion Desired
	RAFlag     uint16 = 0x0080 // Recursion Available
	ZMask      uint16 = 0x0070 // Reserved, must be zero
	RCodeMask  uint16 = 0x000F // Bits 3-0: response code

	opcodeShift = 11
)

// RecordType represents DNS resource record types.
type RecordType uint16

const (
	TypeA     RecordType = 1   // IPv4 address
	TypeNS    RecordType = 2   // Authoritative name server
	TypeCNAME RecordType = 5   // Canonical name (alias)
	TypePTR   RecordType = 12  // Domain name pointer (DNS-SD service enumeration)
	TypeTXT   RecordType = 16  // Text strings
	TypeAAAA  RecordType = 28  // IPv6 address (RFC 3596)
	TypeSRV   RecordType = 33  // Service locator (RFC 2782)
	TypeOPT   RecordType = 41  // EDNS pseudo-record (RFC 6891)
	TypeNSEC  RecordType = 47  // Next secure record, used by mDNS for negative answers
	TypeANY   RecordType = 255 // Query for all records
)

var recordTypeNames = map[RecordType]string{
	TypeA:     "A",
	TypeNS:    "NS",
	TypeCNAME: "CNAME",
	TypePTR:   "PTR",
	TypeTXT:   "TXT",
	TypeAAAA:  "AAAA",
	TypeSRV:   "SRV",
	TypeOPT:   "OPT",
	TypeNSEC:  "NSEC",
	TypeANY:   "ANY",
}

// String returns the mnemonic for t, or TYPEnnn for unknown types (RFC 3597).
func (t RecordType) String() string {
	if s, ok := recordTypeNames[t]; ok {
		return s
	}
	return "TYPE" + strconv.Itoa(int(t))
}

// ParseRecordType converts a mnemonic such as "SRV" to its RecordType.
func ParseRecordType(s string) (RecordType, bool) {
	for t, name := range recordTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// RecordClass represents DNS resource record classes (RFC 1035).
type RecordClass uint16

const (
	ClassIN  RecordClass = 1   // Internet class
	ClassANY RecordClass = 255 // Any class (questions only)

	// UnicastResponseBit is the top bit of a question's class. In mDNS it asks
	// the responder to answer the sender directly (RFC 6762 Section 5.4).
	UnicastResponseBit uint16 = 0x8000
)

// Opcode represents the DNS operation type carried in the header.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0 // Standard query
	OpcodeIQuery Opcode = 1 // Inverse query (obsolete)
	OpcodeStatus Opcode = 2 // Server status request
	OpcodeNotify Opcode = 4 // Zone change notification (RFC 1996)
	OpcodeUpdate Opcode = 5 // Dynamic update (RFC 2136)
)

// RCode represents DNS response codes (RFC 1035).
type RCode uint8

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure: internal error
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented: unsupported query type
	RCodeRefused  RCode = 5 // Query refused by policy
)

// EDNS option codes (RFC 6891 and the IANA registry). The engine never
// emits OPT records; the table exists to name options seen from peers.
const (
	OptionLLQ          uint16 = 1
	OptionUpdateLease  uint16 = 2
	OptionNSID         uint16 = 3
	OptionClientSubnet uint16 = 8
	OptionOwner        uint16 = 4
	OptionCookie       uint16 = 10
	OptionPadding      uint16 = 12
)

// RCodeFromFlags extracts the response code from the DNS header flags.
// The RCODE occupies the low 4 bits of the flags field.
func RCodeFromFlags(flags uint16) RCode {
	return RCode(flags & RCodeMask)
}
