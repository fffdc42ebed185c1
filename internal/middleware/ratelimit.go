package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter counts requests per client IP inside a sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go rl.janitor()
	return rl
}

// Allow records a hit for ip and reports whether it stays inside the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)

	// Prune hits that fell out of the window, in place.
	fresh := rl.hits[ip][:0]
	for _, at := range rl.hits[ip] {
		if at.After(cutoff) {
			fresh = append(fresh, at)
		}
	}

	if len(fresh) >= rl.limit {
		rl.hits[ip] = fresh
		return false
	}

	rl.hits[ip] = append(fresh, time.Now())
	return true
}

// janitor drops IPs that have gone quiet so the map cannot grow forever.
// Hits are appended in time order, so the newest is always last.
func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * rl.window)

		rl.mu.Lock()
		for ip, hits := range rl.hits {
			if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
				delete(rl.hits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimitAuth guards the credential endpoints: 10 requests per minute per
// client IP. Register and login share the one limiter.
func RateLimitAuth() func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(10, time.Minute)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				respondJSON(w, http.StatusTooManyRequests, map[string]string{"message": "too many requests, please try again later"})
				return
			}

			next(w, r)
		}
	}
}

// getClientIP resolves the client address. Proxy headers win over
// RemoteAddr, with X-Forwarded-For's first hop taking precedence.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}
