package rate_limiter

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostRateLimiter paces image fetches per CDN host. A zero interval disables pacing.
type HostRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	interval time.Duration
	burst    int
}

func NewHostRateLimiter(interval time.Duration, burst int) *HostRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &HostRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
		burst:    burst,
	}
}

// WaitForHost blocks until the host of u may be contacted again.
func (h *HostRateLimiter) WaitForHost(ctx context.Context, u *url.URL) error {
	if u == nil || u.Host == "" {
		return errors.New("missing host in URL")
	}
	if h.interval <= 0 {
		return ctx.Err()
	}
	return h.getLimiterForHost(u.Hostname()).Wait(ctx)
}

// Hosts reports how many hosts have a limiter.
func (h *HostRateLimiter) Hosts() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.limiters)
}

func (h *HostRateLimiter) getLimiterForHost(host string) *rate.Limiter {
	h.mu.RLock()
	limiter, exists := h.limiters[host]
	h.mu.RUnlock()

	if exists {
		return limiter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Double-check pattern
	if limiter, exists := h.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Every(h.interval), h.burst)
	h.limiters[host] = limiter
	return limiter
}
