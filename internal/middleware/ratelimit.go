// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"bonsaisite/internal/metrics"
)

// sweepInterval is how often idle windows are dropped.
const sweepInterval = 5 * time.Minute

// window is one client's budget for the current period.
type window struct {
	start time.Time
	count int
}

// RateLimiter is a named fixed-window limiter. Signed-in members are
// counted by member id, everyone else by client IP. Rejections are
// counted on /metrics under the limiter's name.
type RateLimiter struct {
	name   string
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
	stopCh  chan struct{}
}

// NewRateLimiter allows limit requests per period for each client and
// starts a goroutine that drops idle windows until Stop is called.
func NewRateLimiter(name string, limit int, period time.Duration) *RateLimiter {
	rl := newRateLimiter(name, limit, period, time.Now)
	go rl.sweepLoop()
	return rl
}

func newRateLimiter(name string, limit int, period time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		name:    name,
		limit:   limit,
		period:  period,
		now:     now,
		windows: make(map[string]*window),
		stopCh:  make(chan struct{}),
	}
}

// Stop terminates the sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// take spends one request from key's budget. When the budget is gone it
// reports how long until the window resets.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.windows[key]
	if w == nil || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		rl.windows[key] = w
	}
	if w.count >= rl.limit {
		return false, w.start.Add(rl.period).Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops windows that have already expired.
func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, key)
		}
	}
}

// Middleware rejects over-budget requests with a JSON 429 and a
// Retry-After of whole seconds. Mount it after LoadSession so members
// are counted by id.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		ok, wait := rl.take(key)
		if !ok {
			metrics.RateLimited.WithLabelValues(rl.name).Inc()
			slog.Warn("rate limited", "limiter", rl.name, "client", key)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds rounds wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// clientKey identifies who a request counts against.
func clientKey(r *http.Request) string {
	if sess := SessionFromCtx(r.Context()); sess != nil {
		return "member:" + sess.MemberID
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers the leftmost X-Forwarded-For entry, then X-Real-IP,
// then the connection address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
