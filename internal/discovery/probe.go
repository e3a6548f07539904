package discovery

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/jroosing/semcache/internal/dns"
)

// IssueProbe checks whether name is claimed on the network (RFC 6762
// Section 8.1). After a random delay it sends ProbeCount queries spaced
// ProbeInterval apart. It returns ErrNameTaken as soon as a response
// answers for name, and nil when every round passes in silence.
//
// Answers identical to records this host already advertises do not count.
func (c *Client) IssueProbe(ctx context.Context, name string, qtype dns.RecordType, qclass uint16) error {
	q, err := dns.NewQuestion(name, int(qtype), int(qclass))
	if err != nil {
		return err
	}

	taken := make(chan struct{})
	var once sync.Once
	unsubscribe := c.engine.Subscribe(func(p *dns.Packet, from *net.UDPAddr) {
		if p.IsQuery() {
			return
		}
		for _, rr := range dns.AnswersFor(p, name, dns.TypeANY) {
			if c.ownsRecord(rr) {
				continue
			}
			c.logger.Debug("probe conflict", "name", name, "from", from.String())
			once.Do(func() { close(taken) })
			return
		}
	})
	defer unsubscribe()

	if err := c.sleep(ctx, c.randomDelay(c.opts.ProbeMaxDelay), taken, ErrNameTaken); err != nil {
		return err
	}
	for range c.opts.ProbeCount {
		select {
		case <-taken:
			return ErrNameTaken
		default:
		}
		if err := c.sendQuery(ctx, q); err != nil {
			return fmt.Errorf("probe %s: %w", name, err)
		}
		if err := c.sleep(ctx, c.opts.ProbeInterval, taken, ErrNameTaken); err != nil {
			return err
		}
	}
	return nil
}

// ownsRecord reports whether rr is byte-identical to a record in the local
// store, which is what our own controller answers with.
func (c *Client) ownsRecord(rr dns.Record) bool {
	want, err := dns.MarshalRecord(rr)
	if err != nil {
		return false
	}
	for _, local := range c.engine.Records()[dns.NormalizeName(rr.Header().Name)] {
		have, err := dns.MarshalRecord(local)
		if err == nil && bytes.Equal(have, want) {
			return true
		}
	}
	return false
}
