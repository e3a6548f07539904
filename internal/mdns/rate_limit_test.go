package mdns

import (
	"net/netip"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_NilAllows(t *testing.T) {
	var r *RateLimiter
	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.1")))
}

func TestRateLimiter_SourceBurstAndRefill(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(RateLimitSettings{SourceQPS: 2, SourceBurst: 3, MaxSources: 8, Clock: clock})
	a := netip.MustParseAddr("10.0.0.1")
	b := netip.MustParseAddr("10.0.0.2")

	for range 3 {
		assert.True(t, r.Allow(a))
	}
	assert.False(t, r.Allow(a))
	assert.True(t, r.Allow(b), "sources are limited independently")

	clock.Advance(500 * time.Millisecond)
	assert.True(t, r.Allow(a))
	assert.False(t, r.Allow(a))
}

func TestRateLimiter_Global(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(RateLimitSettings{GlobalQPS: 1, GlobalBurst: 2, Clock: clock})

	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.1")))
	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.2")))
	assert.False(t, r.Allow(netip.MustParseAddr("10.0.0.3")))
}

func TestRateLimiter_DeniedSourceKeepsGlobalBudget(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(RateLimitSettings{
		GlobalQPS:   0.001,
		GlobalBurst: 2,
		SourceQPS:   0.001,
		SourceBurst: 1,
		MaxSources:  8,
		Clock:       clock,
	})
	noisy := netip.MustParseAddr("10.0.0.1")

	assert.True(t, r.Allow(noisy))
	for range 5 {
		assert.False(t, r.Allow(noisy))
	}
	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.2")), "noisy source must not drain the global bucket")
	assert.False(t, r.Allow(netip.MustParseAddr("10.0.0.3")), "global bucket exhausted")
}

func TestRateLimiter_MaxSourcesAndEviction(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := NewRateLimiter(RateLimitSettings{
		SourceQPS:    10,
		SourceBurst:  10,
		MaxSources:   1,
		IdleEviction: time.Second,
		Clock:        clock,
	})

	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.1")))
	assert.False(t, r.Allow(netip.MustParseAddr("10.0.0.2")), "table full")

	clock.Advance(2 * time.Second)
	assert.True(t, r.Allow(netip.MustParseAddr("10.0.0.2")), "idle source evicted")
}

func TestRateLimitSettings_String(t *testing.T) {
	s := RateLimitSettings{SourceQPS: 20, SourceBurst: 40, MaxSources: 4096}
	assert.Equal(t, "global=disabled source=20qps/40 max_sources=4096", s.String())
}
