package dns

import (
	"fmt"
	"strings"
)

// Name encoding limits (RFC 1035 Section 2.3.4).
const (
	MaxLabelLength = 63
	MaxNameLength  = 255

	// maxNameLabels bounds DecodeName so malformed input cannot loop forever.
	maxNameLabels = 128
)

// NormalizeName returns a lowercase DNS name without trailing dots.
// DNS names compare case-insensitively (RFC 1035 Section 3.1, RFC 4343).
func NormalizeName(name string) string {
	return strings.ToLower(trimDot(name))
}

// EqualNames reports whether two names are the same DNS name.
func EqualNames(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// The name is split on '.' and written as a sequence of labels, each
// preceded by its length byte, terminated by a zero-length label:
//
//	"host7.local" → [5]host7[5]local[0]
//
// Message compression is never used; every name is written in full.
// Labels are raw bytes, so DNS-SD instance names such as "My Cache" are
// written unchanged.
func EncodeName(domain string) ([]byte, error) {
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // root
	}

	out := make([]byte, 0, len(domain)+2)
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return nil, fmt.Errorf("%w: invalid domain name (empty label): %q", ErrDNSError, domain)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: DNS label too long (%d > %d): %q", ErrDNSError, len(label), MaxLabelLength, label)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0)

	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w: encoded domain name too long (%d > %d)", ErrDNSError, len(out), MaxNameLength)
	}
	return out, nil
}

// WriteName encodes domain and appends it to b.
func WriteName(b *Buffer, domain string) error {
	wire, err := EncodeName(domain)
	if err != nil {
		return err
	}
	b.AppendBytes(wire)
	return nil
}

// DecodeName reads an uncompressed domain name from r.
//
// A declared label length above 63 is rejected; this also covers the
// 0xC0 compression pointer pattern, which this codec never produces.
func DecodeName(r *Reader) (string, error) {
	labels := make([]string, 0, 4)
	for range maxNameLabels {
		n, ok := r.ReadValue(1)
		if !ok {
			return "", fmt.Errorf("%w: unexpected EOF while decoding DNS name", ErrDNSError)
		}
		if n == 0 {
			return strings.Join(labels, "."), nil
		}
		if n > MaxLabelLength {
			return "", fmt.Errorf("%w: DNS label length %d exceeds %d", ErrDNSError, n, MaxLabelLength)
		}
		label := r.ReadBytes(int(n))
		if label.Len() != int(n) {
			return "", fmt.Errorf("%w: unexpected EOF while reading DNS label", ErrDNSError)
		}
		labels = append(labels, string(label.Bytes()))
	}
	return "", fmt.Errorf("%w: DNS name has more than %d labels", ErrDNSError, maxNameLabels)
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
