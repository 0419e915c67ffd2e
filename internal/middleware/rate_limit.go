package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"infinite-experiment/crewcenter/internal/common"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int

	whitelistedIPs map[string]bool
}

// NewRateLimiter allows perSecond requests per IP with the given burst
func NewRateLimiter(perSecond float64, burst int, whitelist ...string) *RateLimiter {
	rl := &RateLimiter{
		limiters:       make(map[string]*rate.Limiter),
		limit:          rate.Limit(perSecond),
		burst:          burst,
		whitelistedIPs: make(map[string]bool),
	}
	for _, ip := range whitelist {
		rl.whitelistedIPs[ip] = true
	}
	return rl
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if rl.whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			common.RespondError(w, time.Now(), "Too many requests", nil, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
