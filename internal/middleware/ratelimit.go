// ABOUTME: Fixed-window rate limiting middleware for the stub backend
// ABOUTME: Login and register are keyed by client IP, writes by signed-in user

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TooManyRequests is the message body of a 429
const TooManyRequests = "Too many requests, try again later"

// pruneEvery is how many new windows are opened between sweeps of expired ones
const pruneEvery = 100

// window counts one key's requests until reset
type window struct {
	hits  int
	reset time.Time
}

// RateLimiter allows limit requests per key in each period
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	now    func() time.Time
	keys   map[string]*window
	opened int
}

// NewRateLimiter creates a limiter with an independent window per key
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		period: period,
		now:    time.Now,
		keys:   make(map[string]*window),
	}
}

// Allow records one request for key. Over the limit it returns false and
// the time left until the key's window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if w, ok := l.keys[key]; ok && now.Before(w.reset) {
		if w.hits >= l.limit {
			return false, w.reset.Sub(now)
		}
		w.hits++
		return true, 0
	}

	l.keys[key] = &window{hits: 1, reset: now.Add(l.period)}
	l.opened++
	if l.opened%pruneEvery == 0 {
		for k, w := range l.keys {
			if !now.Before(w.reset) {
				delete(l.keys, k)
			}
		}
	}
	return true, 0
}

// Tracked reports how many keys currently hold a window
func (l *RateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

// ClientIP keys by the leftmost X-Forwarded-For address, else the remote host.
// The header is trusted; the stub backend is meant for local use.
func ClientIP(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
		return "ip:" + ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// UserOrIP keys by the user id Auth stored, falling back to ClientIP
func UserOrIP(r *http.Request) string {
	if id := UserID(r); id != "" {
		return "user:" + id
	}
	return ClientIP(r)
}

// RateLimit rejects requests over the limiter's budget with 429 and
// Retry-After. A nil limiter disables it.
func RateLimit(limiter *RateLimiter, keyOf func(*http.Request) string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			key := keyOf(r)
			ok, wait := limiter.Allow(key)
			if ok {
				next(w, r)
				return
			}

			seconds := int(math.Ceil(wait.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", sanitizePath(r.URL.Path), "retry_after", seconds)
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			WriteJSONError(w, TooManyRequests, http.StatusTooManyRequests)
		}
	}
}
