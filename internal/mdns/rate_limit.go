package mdns

import (
	"fmt"
	"math"
	"net/netip"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Queries are admitted through two token buckets before the controller
// answers them: one shared by every sender and one per source address.
// A query must pass both. Subscribers still see every decoded packet.

// RateLimitSettings configures a RateLimiter. A level with a rate or burst
// <= 0 is disabled.
type RateLimitSettings struct {
	GlobalQPS    float64
	GlobalBurst  int
	SourceQPS    float64
	SourceBurst  int
	MaxSources   int           // tracked source addresses; new sources beyond it are denied
	IdleEviction time.Duration // sources idle this long are forgotten
	Clock        clockwork.Clock
}

// String summarizes the settings for startup logs.
func (s RateLimitSettings) String() string {
	level := func(name string, rate float64, burst int) string {
		if rate <= 0 || burst <= 0 {
			return name + "=disabled"
		}
		return fmt.Sprintf("%s=%gqps/%d", name, rate, burst)
	}
	return fmt.Sprintf("%s %s max_sources=%d",
		level("global", s.GlobalQPS, s.GlobalBurst),
		level("source", s.SourceQPS, s.SourceBurst),
		s.MaxSources,
	)
}

// RateLimiter admits queries per source and globally.
type RateLimiter struct {
	global *tokenBucket
	source *tokenBucket
}

// NewRateLimiter creates a limiter from s.
func NewRateLimiter(s RateLimitSettings) *RateLimiter {
	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	idle := s.IdleEviction
	if idle <= 0 {
		idle = time.Minute
	}
	return &RateLimiter{
		global: newTokenBucket(clock, s.GlobalQPS, s.GlobalBurst, 1, idle),
		source: newTokenBucket(clock, s.SourceQPS, s.SourceBurst, s.MaxSources, idle),
	}
}

// Allow reports whether a query from src may be answered. The source
// bucket is checked first so a source over its own limit never spends the
// shared budget. A nil limiter allows everything.
func (r *RateLimiter) Allow(src netip.Addr) bool {
	if r == nil {
		return true
	}
	if !r.source.allow(src.Unmap()) {
		return false
	}
	return r.global.allow(netip.Addr{})
}

type bucketState struct {
	tokens float64
	last   time.Time
}

// tokenBucket refills rate tokens per second up to burst, per key.
type tokenBucket struct {
	clock      clockwork.Clock
	rate       float64
	burst      float64
	maxEntries int
	idle       time.Duration

	mu        sync.Mutex
	lastSweep time.Time
	buckets   map[netip.Addr]*bucketState
}

func newTokenBucket(clock clockwork.Clock, rate float64, burst, maxEntries int, idle time.Duration) *tokenBucket {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &tokenBucket{
		clock:      clock,
		rate:       rate,
		burst:      float64(burst),
		maxEntries: maxEntries,
		idle:       idle,
		lastSweep:  clock.Now(),
		buckets:    map[netip.Addr]*bucketState{},
	}
}

func (b *tokenBucket) allow(key netip.Addr) bool {
	if b.rate <= 0 || b.burst <= 0 {
		return true
	}
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) > b.idle {
		b.sweepLocked(now)
	}

	st, ok := b.buckets[key]
	if !ok {
		if len(b.buckets) >= b.maxEntries {
			b.sweepLocked(now)
			if len(b.buckets) >= b.maxEntries {
				return false
			}
		}
		b.buckets[key] = &bucketState{tokens: b.burst - 1, last: now}
		return true
	}

	if elapsed := now.Sub(st.last).Seconds(); elapsed > 0 {
		st.tokens = math.Min(b.burst, st.tokens+elapsed*b.rate)
	}
	st.last = now
	if st.tokens >= 1 {
		st.tokens--
		return true
	}
	return false
}

// sweepLocked drops keys idle for longer than b.idle. b.mu must be held.
func (b *tokenBucket) sweepLocked(now time.Time) {
	staleBefore := now.Add(-b.idle)
	for k, st := range b.buckets {
		if !st.last.After(staleBefore) {
			delete(b.buckets, k)
		}
	}
	b.lastSweep = now
}
