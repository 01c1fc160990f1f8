package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter applies a fixed-window request limit per client IP, with a
// tighter budget for mutating requests. Posts are guarded only by a
// per-post password, so writes (which carry password attempts) get a
// fraction of the read allowance to slow guessing.
//
// State is in-process; a multi-instance deployment would need a shared
// store behind the same interface.
type RateLimiter struct {
	windows    map[string]*window
	readLimit  int
	writeLimit int
	span       time.Duration
	mu         sync.Mutex
}

type window struct {
	resetAt time.Time
	reads   int
	writes  int
}

// NewRateLimiter creates a rate limiter allowing readLimit requests per
// span per client, of which at most readLimit/4 (minimum 1) may be
// mutating requests.
func NewRateLimiter(readLimit int, span time.Duration) *RateLimiter {
	writeLimit := readLimit / 4
	if writeLimit < 1 {
		writeLimit = 1
	}

	rl := &RateLimiter{
		windows:    make(map[string]*window),
		readLimit:  readLimit,
		writeLimit: writeLimit,
		span:       span,
	}

	go rl.evictExpired()

	return rl
}

// Middleware wraps next with the rate limit check
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r), isMutation(r.Method)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "RateLimited",
				"message": "Too many requests, try again later",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func (rl *RateLimiter) allow(clientID string, mutation bool) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now().UTC()

	win, ok := rl.windows[clientID]
	if !ok || now.After(win.resetAt) {
		win = &window{resetAt: now.Add(rl.span)}
		rl.windows[clientID] = win
	}

	if win.reads >= rl.readLimit {
		return false
	}
	if mutation && win.writes >= rl.writeLimit {
		return false
	}

	win.reads++
	if mutation {
		win.writes++
	}

	return true
}

// evictExpired drops windows that have lapsed so idle clients do not
// accumulate
func (rl *RateLimiter) evictExpired() {
	ticker := time.NewTicker(rl.span)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now().UTC()
		for clientID, win := range rl.windows {
			if now.After(win.resetAt) {
				delete(rl.windows, clientID)
			}
		}
		rl.mu.Unlock()
	}
}

// clientIP resolves the caller's address, trusting proxy headers when
// present
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// first hop is the original client
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
