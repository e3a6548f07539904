package mdns

import (
	"sync"

	"github.com/jroosing/semcache/internal/dns"
)

// ServiceEnumerationName is the DNS-SD meta-query name (RFC 6763 Section 9).
// A question for it is answered with every stored PTR record.
const ServiceEnumerationName = "_services._dns-sd._udp.local"

// Store holds the records this host is authoritative for, keyed by name in
// insertion order. Records never expire; they live until Clear.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	order   []string
	records map[string][]dns.Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: map[string][]dns.Record{}}
}

// Add appends rr under name.
func (s *Store) Add(name string, rr dns.Record) {
	key := dns.NormalizeName(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = append(s.records[key], rr)
}

// Records returns a copy of the store, keyed by normalized name.
func (s *Store) Records() map[string][]dns.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]dns.Record, len(s.records))
	for k, v := range s.records {
		out[k] = append([]dns.Record(nil), v...)
	}
	return out
}

// All returns every stored record in insertion order.
func (s *Store) All() []dns.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []dns.Record
	for _, k := range s.order {
		out = append(out, s.records[k]...)
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.records {
		n += len(v)
	}
	return n
}

// Clear removes every record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.records = map[string][]dns.Record{}
}

// Match returns the stored records that answer q, in insertion order.
func (s *Store) Match(q dns.Question) []dns.Record {
	var out []dns.Record
	for _, rr := range s.All() {
		if RecordMatches(q, rr) {
			out = append(out, rr)
		}
	}
	return out
}

// RecordMatches applies standard DNS matching of a question against a
// record:
//
//   - the names are equal, or the question is the DNS-SD enumeration name
//     (which matches PTR records only, whatever their name)
//   - the question type is ANY, the record is a CNAME, or the types are equal
//   - the question class is ANY or equals the record class
//
// The question's unicast-response bit is ignored when comparing classes.
func RecordMatches(q dns.Question, rr dns.Record) bool {
	h := rr.Header()

	enumeration := dns.EqualNames(q.Name, ServiceEnumerationName)
	if enumeration {
		if rr.Type() != dns.TypePTR {
			return false
		}
	} else if !dns.EqualNames(q.Name, h.Name) {
		return false
	}

	qtype := dns.RecordType(q.Type)
	if qtype != dns.TypeANY && rr.Type() != dns.TypeCNAME && rr.Type() != qtype {
		return false
	}

	qclass := q.BaseClass()
	return qclass == uint16(dns.ClassANY) || qclass == h.Class
}
