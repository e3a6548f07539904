package dns

import "fmt"

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
//
// Each question specifies what the client is asking for:
//   - Name: The domain name being queried
//   - Type: The record type requested (A, PTR, SRV, ANY, ...)
//   - Class: Usually ClassIN; in mDNS the top bit is the unicast-response bit
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// NewQuestion builds a question, rejecting type or class values outside
// 0..65535.
func NewQuestion(name string, qtype, qclass int) (Question, error) {
	if qtype < 0 || qtype > 0xFFFF {
		return Question{}, fmt.Errorf("%w: question type %d out of range", ErrDNSError, qtype)
	}
	if qclass < 0 || qclass > 0xFFFF {
		return Question{}, fmt.Errorf("%w: question class %d out of range", ErrDNSError, qclass)
	}
	return Question{Name: name, Type: uint16(qtype), Class: uint16(qclass)}, nil
}

// UnicastResponse reports whether the QU bit is set (RFC 6762 Section 5.4).
func (q Question) UnicastResponse() bool {
	return q.Class&UnicastResponseBit != 0
}

// BaseClass returns the class with the QU bit cleared.
func (q Question) BaseClass() uint16 {
	return q.Class &^ UnicastResponseBit
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	b := NewBuffer(len(q.Name) + 6)
	if err := q.write(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (q Question) write(b *Buffer) error {
	if err := WriteName(b, q.Name); err != nil {
		return err
	}
	b.PushUint16(q.Type)
	b.PushUint16(q.Class)
	return nil
}

// ParseQuestion parses a question from r, advancing past it on success.
func ParseQuestion(r *Reader) (Question, error) {
	name, err := DecodeName(r)
	if err != nil {
		return Question{}, err
	}
	if r.Remaining() < 4 {
		return Question{}, fmt.Errorf("%w: unexpected EOF while reading DNS question", ErrDNSError)
	}
	q := Question{Name: name}
	q.Type, _ = r.ReadUint16("question type")
	q.Class, _ = r.ReadUint16("question class")
	return q, nil
}
