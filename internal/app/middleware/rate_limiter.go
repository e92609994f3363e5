package middleware

import (
	"sync"
	"time"

	"census-otp-service/internal/error/code"
	"census-otp-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TokenBucket is a simple token-bucket limiter
type TokenBucket struct {
	rate       float64 // tokens added per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow takes one token if available
func (tb *TokenBucket) Allow() bool {
	return tb.allowAt(time.Now())
}

func (tb *TokenBucket) allowAt(now time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens += elapsed * tb.rate
		tb.lastRefill = now
	}
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

const maxTrackedClients = 10000

// RateLimiter keeps one bucket per client key
type RateLimiter struct {
	rate     float64
	burst    int
	expiry   time.Duration
	mu       sync.Mutex
	buckets  map[string]*TokenBucket
	lastSeen map[string]time.Time
}

// NewRateLimiter creates a limiter allowing rate req/s with the given burst
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:     rate,
		burst:    burst,
		expiry:   time.Hour,
		buckets:  make(map[string]*TokenBucket),
		lastSeen: make(map[string]time.Time),
	}
}

// Allow reports whether key may proceed
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxTrackedClients {
			l.cleanupLocked(now)
		}
		bucket = NewTokenBucket(l.rate, l.burst)
		l.buckets[key] = bucket
	}
	l.lastSeen[key] = now
	l.mu.Unlock()

	return bucket.allowAt(now)
}

// Cleanup forgets clients idle for longer than the expiry
func (l *RateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanupLocked(time.Now())
}

func (l *RateLimiter) cleanupLocked(now time.Time) {
	cutoff := now.Add(-l.expiry)
	for key, seen := range l.lastSeen {
		if seen.Before(cutoff) {
			delete(l.lastSeen, key)
			delete(l.buckets, key)
		}
	}
}

// IPRateLimiter limits requests per client IP. A non-positive rate disables it.
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	if rate <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(rate, burst)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.AbortWithMessage(c, code.ErrTooManyRequests, code.GetMessage(code.ErrTooManyRequests))
			return
		}
		c.Next()
	}
}
