package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const localIdleTTL = 10 * time.Minute

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalBuckets keeps one in-process token bucket per key.
type LocalBuckets struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
	sweptAt time.Time
}

func NewLocalBuckets(perSecond float64, burst int) (*LocalBuckets, error) {
	if perSecond <= 0 || burst <= 0 {
		return nil, errors.New("rate limiter rate and burst must be positive")
	}
	return &LocalBuckets{
		entries: make(map[string]*localEntry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}, nil
}

func (l *LocalBuckets) Allow(_ context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, errors.New("rate limiter key is empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	allowed := entry.limiter.AllowN(now, 1)
	remaining := entry.limiter.TokensAt(now)
	return &Result{
		Allowed:    allowed,
		Limit:      l.burst,
		Remaining:  int(remaining),
		RetryAfter: retryAfter(allowed, remaining, float64(l.limit)),
	}, nil
}

func (l *LocalBuckets) sweep(now time.Time) {
	if now.Sub(l.sweptAt) < localIdleTTL {
		return
	}
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= localIdleTTL {
			delete(l.entries, key)
		}
	}
	l.sweptAt = now
}
