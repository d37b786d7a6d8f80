// Package ratelimit applies per-client token-bucket limits to the API.
// Recommendation requests may spend a model call, so POST /recommend
// gets a much smaller bucket than catalog reads; the health probe is
// never limited.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is one client's token supply for one endpoint. Tokens refill
// continuously at perSecond and are capped at capacity, so capacity
// doubles as the burst allowance.
type bucket struct {
	mu        sync.Mutex
	capacity  float64
	perSecond float64
	tokens    float64
	refilled  time.Time
	seen      time.Time // last request, drives idle eviction
}

func newBucket(capacity int, perSecond float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:  float64(capacity),
		perSecond: perSecond,
		tokens:    float64(capacity),
		refilled:  now,
		seen:      now,
	}
}

// refillLocked credits tokens for the time elapsed since the last
// refill. Callers hold b.mu.
func (b *bucket) refillLocked(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.refilled).Seconds()*b.perSecond)
	b.refilled = now
}

// take consumes one token when available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// status reports the whole tokens remaining and when the bucket will
// be full again, without consuming anything.
func (b *bucket) status() (remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)

	remaining = int(b.tokens)
	if b.tokens >= b.capacity {
		return remaining, now
	}
	wait := (b.capacity - b.tokens) / b.perSecond
	return remaining, now.Add(time.Duration(wait * float64(time.Second)))
}

// idleSince reports whether the bucket has seen no request since the
// cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seen.Before(cutoff)
}

// Info describes the outcome of a limit check; the server middleware
// turns it into X-RateLimit and Retry-After response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter keeps one bucket per client, path and method combination.
// Buckets idle for over an hour are evicted in the background.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// bucketIdleCutoff is how long a client bucket may sit unused before
// the reaper drops it.
const bucketIdleCutoff = time.Hour

// NewLimiter creates a limiter for the given configuration. A nil
// config enables limiting with the package defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.reap()
	}

	return l
}

// Allow decides whether a request from clientID to the given path and
// method may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+":"+path+":"+method, endpoint)
	allowed := b.take()
	remaining, reset := b.status()

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return allowed, info
}

// bucketFor returns the bucket for key, creating it on first use.
func (l *Limiter) bucketFor(key string, endpoint *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	b := newBucket(capacity, float64(endpoint.Limit)/endpoint.Window.Seconds())
	l.buckets[key] = b
	return b
}

// reap periodically drops buckets for clients that have gone away.
func (l *Limiter) reap() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-bucketIdleCutoff))
		case <-l.stop:
			return
		}
	}
}

// evictIdle removes every bucket whose last request predates cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop shuts down the background reaper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.ticker != nil {
			l.ticker.Stop()
		}
		if l.stop != nil {
			close(l.stop)
		}
	})
}
