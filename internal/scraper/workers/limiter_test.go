package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"letterforge/internal/config"
)

func testConfig(ratePerMinute int) *config.Config {
	cfg := &config.Config{}
	cfg.Workers.RateLimit = ratePerMinute
	return cfg
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig(60))
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("jobs.example.com"), "request %d should be within burst", i+1)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(testConfig(1))
	defer rl.Stop()

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("jobs.example.com") {
			allowed++
		}
	}
	// Burst of 5, refill far slower than the loop
	assert.Equal(t, 5, allowed)
}

func TestRateLimiter_DomainsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(testConfig(1))
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		rl.Allow("a.example.com")
	}
	assert.False(t, rl.Allow("a.example.com"))
	assert.True(t, rl.Allow("b.example.com"))
}

func TestExtractDomainFromURL(t *testing.T) {
	assert.Equal(t, "jobs.example.com", extractDomainFromURL("https://jobs.example.com/postings/123"))
	assert.Equal(t, "jobs.example.com", extractDomainFromURL("https://JOBS.example.COM/x"))
	assert.Equal(t, "unknown", extractDomainFromURL("not a url at all"))
}
