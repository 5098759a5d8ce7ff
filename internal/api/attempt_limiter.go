package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter counts failed sign-ins per client inside a sliding window.
// Successful sign-ins clear the client's history.
type attemptLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// blocked reports whether client has used up its failures for the window
// ending at now.
func (limiter *attemptLimiter) blocked(client string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.recentLocked(client, now)) >= limiter.limit
}

func (limiter *attemptLimiter) recordFailure(client string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[client] = append(limiter.recentLocked(client, now), now)
}

func (limiter *attemptLimiter) clear(client string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	delete(limiter.failures, client)
}

// recentLocked drops failures older than the window and forgets clients with
// none left, so idle clients do not accumulate.
func (limiter *attemptLimiter) recentLocked(client string, now time.Time) []time.Time {
	cutoff := now.Add(-limiter.window)
	recent := limiter.failures[client][:0]
	for _, failedAt := range limiter.failures[client] {
		if failedAt.After(cutoff) {
			recent = append(recent, failedAt)
		}
	}

	if len(recent) == 0 {
		delete(limiter.failures, client)
		return nil
	}
	limiter.failures[client] = recent
	return recent
}

// signInClientKey identifies the caller for throttling by its IP address.
func signInClientKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
