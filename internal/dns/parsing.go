package dns

import "fmt"

// Limits for incoming DNS messages to prevent resource exhaustion attacks.
const (
	// MaxIncomingDNSMessageSize is the largest mDNS datagram accepted
	// (RFC 6762 Section 17 caps multicast DNS messages at 9000 bytes).
	MaxIncomingDNSMessageSize = 9000
	MaxQuestions              = 64  // mDNS queriers batch many questions per packet
	MaxRRPerSection           = 256 // Maximum resource records per section
	MaxTotalRR                = 512 // Maximum total resource records
)

// validateSectionCounts checks that section counts don't exceed limits.
func validateSectionCounts(h Header) error {
	qd := int(h.QDCount)
	an := int(h.ANCount)
	ns := int(h.NSCount)
	ar := int(h.ARCount)

	if qd > MaxQuestions {
		return fmt.Errorf("%w: too many questions (%d)", ErrDNSError, qd)
	}
	if an > MaxRRPerSection || ns > MaxRRPerSection || ar > MaxRRPerSection {
		return fmt.Errorf("%w: too many resource records", ErrDNSError)
	}
	if (an + ns + ar) > MaxTotalRR {
		return fmt.Errorf("%w: too many total resource records", ErrDNSError)
	}
	return nil
}

// AnswersFor returns the answer records of p whose name equals name and
// whose type equals qtype (any type when qtype is TypeANY).
func AnswersFor(p *Packet, name string, qtype RecordType) []Record {
	var out []Record
	for _, rr := range p.Answers {
		if !EqualNames(rr.Header().Name, name) {
			continue
		}
		if qtype != TypeANY && rr.Type() != qtype {
			continue
		}
		out = append(out, rr)
	}
	return out
}
