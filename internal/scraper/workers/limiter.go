package workers

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"letterforge/internal/config"
	"letterforge/internal/logging"
)

// DomainLimiter tracks rate limiting state for a single domain.
type DomainLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	requests int64
	mu       sync.Mutex
}

// RateLimiter enforces a per-domain request rate so a burst of analyses
// against the same job board does not get the service blocked.
type RateLimiter struct {
	config         *config.Config
	domainLimiters map[string]*DomainLimiter
	mu             sync.Mutex
	logger         logging.Logger
	cleanupTicker  *time.Ticker
	stopCleanup    chan struct{}
}

// NewRateLimiter creates a new per-domain rate limiter.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rl := &RateLimiter{
		config:         cfg,
		domainLimiters: make(map[string]*DomainLimiter),
		logger:         logging.GetGlobalLogger().WithField("component", "rate_limiter"),
		cleanupTicker:  time.NewTicker(5 * time.Minute),
		stopCleanup:    make(chan struct{}),
	}

	go rl.cleanupRoutine()
	return rl
}

// Allow reports whether a request to the given domain is within the
// configured rate.
func (rl *RateLimiter) Allow(domain string) bool {
	rl.mu.Lock()
	limiter := rl.getDomainLimiter(strings.ToLower(domain))
	rl.mu.Unlock()

	allowed := limiter.limiter.Allow()
	if allowed {
		limiter.mu.Lock()
		limiter.requests++
		limiter.lastSeen = time.Now()
		limiter.mu.Unlock()
	} else {
		rl.logger.Debug("Request rejected by rate limiter", map[string]interface{}{
			"domain": domain,
		})
	}
	return allowed
}

// getDomainLimiter gets or creates the limiter for a domain. Caller holds
// rl.mu.
func (rl *RateLimiter) getDomainLimiter(domain string) *DomainLimiter {
	if limiter, exists := rl.domainLimiters[domain]; exists {
		return limiter
	}

	// Configured limit is requests per minute
	rps := rate.Limit(float64(rl.config.Workers.RateLimit) / 60.0)
	burst := 5

	limiter := &DomainLimiter{
		limiter:  rate.NewLimiter(rps, burst),
		lastSeen: time.Now(),
	}
	rl.domainLimiters[domain] = limiter

	rl.logger.Debug("Created new domain rate limiter", map[string]interface{}{
		"domain": domain,
		"rate":   float64(rps),
		"burst":  burst,
	})
	return limiter
}

// cleanupRoutine periodically drops limiters for domains not seen recently.
func (rl *RateLimiter) cleanupRoutine() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			rl.cleanupTicker.Stop()
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for domain, limiter := range rl.domainLimiters {
		limiter.mu.Lock()
		lastSeen := limiter.lastSeen
		limiter.mu.Unlock()

		if lastSeen.Before(cutoff) {
			delete(rl.domainLimiters, domain)
		}
	}
}

// Stop stops the cleanup routine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// extractDomainFromURL extracts the hostname from a URL for rate limiting.
func extractDomainFromURL(urlStr string) string {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "unknown"
	}

	domain := parsedURL.Hostname()
	if domain == "" {
		return "unknown"
	}
	return strings.ToLower(domain)
}
