// Package dns provides the DNS wire codec used by the mDNS / DNS-SD engine.
//
// Standards Compliance:
//
//   - RFC 1035: message framing, header, question and resource record layout
//   - RFC 2782: SRV resource records
//   - RFC 6762: multicast DNS (unicast-response bit in the question class)
//   - RFC 6763: DNS-based service discovery (PTR/SRV naming)
//
// Type-Oriented Design:
//
// Each supported record type has an explicit Go type (ARecord, PTRRecord,
// SRVRecord). Types the engine does not interpret decode as OpaqueRecord so
// a foreign record in a datagram does not spoil the rest of it.
//
// Names are always written uncompressed, and decoding rejects compression
// pointers.
//
// Error Handling:
//
// All errors wrap ErrDNSError with context via fmt.Errorf("...: %w", err).
package dns

import (
	"errors"
	"fmt"
)

var (
	// ErrDNSError is a sentinel error type for DNS protocol violations.
	// Wrap this with fmt.Errorf("context: %w", ErrDNSError) to add context.
	ErrDNSError = errors.New("dns wire error")

	// ErrRecordTypeMismatch is returned by the typed record parsers when the
	// type field on the wire does not belong to the requested variant.
	ErrRecordTypeMismatch = fmt.Errorf("%w: record type mismatch", ErrDNSError)
)
