package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/agentstation/providerhub/internal/server/response"
)

// visitorTTL is how long an idle client keeps its token bucket.
const visitorTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	visitors *gocache.Cache
	limit    rate.Limit
	burst    int
	logger   *zerolog.Logger
}

// NewRateLimiter allows perMinute requests per client IP, with bursts of
// up to burst requests. A burst below one defaults to perMinute.
func NewRateLimiter(perMinute, burst int, logger *zerolog.Logger) *RateLimiter {
	if burst < 1 {
		burst = perMinute
	}
	return &RateLimiter{
		visitors: gocache.New(visitorTTL, visitorTTL/2),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		logger:   logger,
	}
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiter(ip).Allow()
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := rl.visitors.Get(ip); ok {
		lim := v.(*rate.Limiter)
		rl.visitors.Set(ip, lim, gocache.DefaultExpiration)
		return lim
	}
	lim := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.visitors.Add(ip, lim, gocache.DefaultExpiration); err != nil {
		// lost the race to another request from the same ip
		if v, ok := rl.visitors.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// RateLimit rejects requests over the per IP budget with 429.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.Allow(ip) {
				rl.logger.Warn().
					Str("ip", ip).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")
				response.RateLimited(w, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the remote host.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
