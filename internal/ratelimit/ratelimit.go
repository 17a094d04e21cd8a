// Package ratelimit provides a keyed token bucket rate limiter.
// It supports both non-blocking (Allow) and blocking (Wait) operations.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxIdle is how long an unused key keeps its bucket before the
	// janitor drops it.
	maxIdle = 10 * time.Minute

	janitorInterval = time.Minute
)

// KeyedRateLimiter manages per-key rate limiting. Each unique key gets
// its own independent token bucket. Keys are typically client
// addresses, so idle buckets are pruned to keep the map bounded.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*bucket
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a keyed rate limiter allowing rps requests per second
// with the given burst per key.
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.janitor()

	return krl
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request
// protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.limiterFor(key).Allow()
}

// Wait blocks until a request for the given key is allowed or the
// context is canceled.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.limiterFor(key).Wait(ctx)
}

// limiterFor returns the bucket for a key, creating one if needed.
func (krl *KeyedRateLimiter) limiterFor(key string) *rate.Limiter {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	b, ok := krl.entries[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.entries[key] = b
	}
	b.lastSeen = time.Now()

	return b.limiter
}

// Stop shuts down the janitor goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.prune(time.Now())
		}
	}
}

// prune drops buckets not seen since before now-maxIdle.
func (krl *KeyedRateLimiter) prune(now time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	for key, b := range krl.entries {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(krl.entries, key)
		}
	}
}
