package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/jroosing/semcache/internal/dns"
)

// QueryForResponses multicasts a query for name and collects the answer
// records other hosts return for it.
//
// With multiple false it returns as soon as one answer arrives. Otherwise it
// waits out the full window. A window that ends with nothing collected is
// retried while retries remain; after that the (possibly empty) collection
// is returned.
func (c *Client) QueryForResponses(ctx context.Context, name string, qtype dns.RecordType, qclass uint16, multiple bool, wait time.Duration, retries int) ([]dns.Record, error) {
	q, err := dns.NewQuestion(name, int(qtype), int(qclass))
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		collected []dns.Record
	)
	arrived := make(chan struct{}, 1)
	unsubscribe := c.engine.Subscribe(func(p *dns.Packet, _ *net.UDPAddr) {
		if p.IsQuery() {
			return
		}
		answers := dns.AnswersFor(p, name, qtype)
		if len(answers) == 0 {
			return
		}
		mu.Lock()
		collected = append(collected, answers...)
		mu.Unlock()
		select {
		case arrived <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	snapshot := func() []dns.Record {
		mu.Lock()
		defer mu.Unlock()
		return append([]dns.Record(nil), collected...)
	}

	for {
		if err := c.sendQuery(ctx, q); err != nil {
			return snapshot(), fmt.Errorf("query %s %s: %w", name, qtype, err)
		}
		if err := c.collect(ctx, wait, multiple, arrived); err != nil {
			return snapshot(), err
		}
		got := snapshot()
		if len(got) > 0 || retries <= 0 {
			return got, nil
		}
		retries--
		c.logger.Debug("query window empty, retrying", "name", name, "type", qtype.String(), "retries_left", retries)
	}
}

// collect waits out one query window. A single-response query ends the
// window on the first arrival.
func (c *Client) collect(ctx context.Context, wait time.Duration, multiple bool, arrived <-chan struct{}) error {
	t := c.clock.NewTimer(wait)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Chan():
			return nil
		case <-arrived:
			if !multiple {
				return nil
			}
		}
	}
}
