package server

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// LimitReason describes why a connection was rejected.
type LimitReason string

const (
	LimitReasonGlobal LimitReason = "global_limit"
	LimitReasonPerIP  LimitReason = "per_ip_limit"
	LimitReasonRate   LimitReason = "rate_limit"
)

const limiterCleanupInterval = 5 * time.Minute

// ConnectionLimits guards stream admission with a global concurrent-connection
// cap, a per-IP cap, and a per-IP token-bucket rate limit on new connections.
type ConnectionLimits struct {
	global    atomic.Int64
	maxGlobal int64

	mu        sync.Mutex
	perIP     map[string]int
	maxPerIP  int
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewConnectionLimits(maxGlobal int64, maxPerIP int, connectionsPerSecond float64, burst int) *ConnectionLimits {
	return &ConnectionLimits{
		maxGlobal: maxGlobal,
		perIP:     make(map[string]int),
		maxPerIP:  maxPerIP,
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(connectionsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(limiterCleanupInterval),
	}
}

// Acquire attempts to admit a connection from the given IP. Returns false and
// the limit that rejected it when any limit is exceeded.
func (l *ConnectionLimits) Acquire(ip string) (bool, LimitReason) {
	if !l.allowRate(ip) {
		return false, LimitReasonRate
	}
	if !l.acquireGlobal() {
		return false, LimitReasonGlobal
	}
	if !l.acquirePerIP(ip) {
		l.global.Add(-1)
		return false, LimitReasonPerIP
	}
	return true, ""
}

// Release returns the slots held by a connection from the given IP.
func (l *ConnectionLimits) Release(ip string) {
	l.mu.Lock()
	if count := l.perIP[ip]; count > 1 {
		l.perIP[ip] = count - 1
	} else if count == 1 {
		delete(l.perIP, ip)
	}
	l.mu.Unlock()

	l.global.Add(-1)
}

// Current returns the number of admitted connections.
func (l *ConnectionLimits) Current() int64 {
	return l.global.Load()
}

func (l *ConnectionLimits) acquireGlobal() bool {
	for {
		current := l.global.Load()
		if current >= l.maxGlobal {
			return false
		}
		if l.global.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

func (l *ConnectionLimits) acquirePerIP(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.perIP[ip] >= l.maxPerIP {
		return false
	}
	l.perIP[ip]++
	return true
}

func (l *ConnectionLimits) allowRate(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		l.cleanupLocked()
		l.cleanupAt = time.Now().Add(limiterCleanupInterval)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanupLocked drops limiters idle for two cleanup intervals. Must be called
// with mu held.
func (l *ConnectionLimits) cleanupLocked() {
	cutoff := time.Now().Add(-2 * limiterCleanupInterval)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}
