// Package ratelimit spaces out requests to external hosts.
package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between requests to the same host.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     map[string]time.Time
}

// New creates a Limiter. An interval of zero disables waiting.
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		next:     make(map[string]time.Time),
	}
}

// Wait blocks until a request to rawURL's host is allowed, or ctx is done.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	if l.interval <= 0 {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing URL for rate limiting: %w", err)
	}
	host := u.Hostname()

	l.mu.Lock()
	now := time.Now()
	at, ok := l.next[host]
	if !ok || at.Before(now) {
		at = now
	}
	l.next[host] = at.Add(l.interval)
	l.mu.Unlock()

	wait := time.Until(at)
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
