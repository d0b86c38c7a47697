package router

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-client limiter.
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the sustained rate per client IP.
	RequestsPerMinute float64
	Burst             int
	// Endpoints lists route patterns to limit. Empty limits every route.
	Endpoints []string
	// IdleTTL evicts clients not seen for this long.
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen *atomic.Time
}

type rateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time

	limit      rate.Limit
	burst      int
	retryAfter string
	idleTTL    time.Duration
	endpoints  map[string]struct{}
	now        func() time.Time
}

func newRateLimiter(cfg RateLimitConfig, now func() time.Time) *rateLimiter {
	endpoints := make(map[string]struct{}, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		endpoints[e] = struct{}{}
	}

	idle := cfg.IdleTTL
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	retryAfter := 60
	if cfg.RequestsPerMinute > 0 {
		retryAfter = max(int(math.Ceil(60/cfg.RequestsPerMinute)), 1)
	}

	return &rateLimiter{
		visitors:    make(map[string]*visitor),
		lastCleanup: now(),
		limit:       rate.Limit(cfg.RequestsPerMinute / 60),
		burst:       burst,
		retryAfter:  strconv.Itoa(retryAfter),
		idleTTL:     idle,
		endpoints:   endpoints,
		now:         now,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	if now.Sub(rl.lastCleanup) >= rl.idleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen.Load()) >= rl.idleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastCleanup = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: atomic.NewTime(now)}
		rl.visitors[key] = v
	}
	rl.mu.Unlock()

	v.lastSeen.Store(now)
	return v.limiter.AllowN(now, 1)
}

func (rl *rateLimiter) limited(route string) bool {
	if len(rl.endpoints) == 0 {
		return true
	}
	_, ok := rl.endpoints[route]
	return ok
}

func middlewareRateLimit(rl *rateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			if !rl.limited(route) {
				next.ServeHTTP(w, r)
				return
			}

			if !rl.allow(clientIP(r) + " " + r.Method + " " + route) {
				w.Header().Set("Retry-After", rl.retryAfter)
				writeJSON(w, errorResponse{Message: "Too many requests"}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
