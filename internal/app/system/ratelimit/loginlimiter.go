package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Login lockout defaults.
const (
	MaxLoginAttempts = 5
	LockoutDuration  = 15 * time.Minute
)

// LoginLimiter guards login attempts. It combines a per-IP fixed window
// (against distributed guessing) with a per-email failure counter that
// hard-locks the account key after MaxLoginAttempts failures for
// LockoutDuration, regardless of window boundaries. A successful login
// clears the email's counter immediately.
type LoginLimiter struct {
	ipLimiter *Limiter

	mu       sync.Mutex
	failures map[string]*lockoutEntry

	maxAttempts int
	lockout     time.Duration
}

type lockoutEntry struct {
	count       int
	lockedUntil time.Time
}

// NewLoginLimiter creates a limiter with the default thresholds:
// 10 attempts per IP per minute, 5 failures per email then a 15 minute
// lockout.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, MaxLoginAttempts, LockoutDuration)
}

// NewLoginLimiterWithConfig creates a login limiter with custom limits.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, maxAttempts int, lockout time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ipLimiter:   New(ipLimit, ipWindow),
		failures:    make(map[string]*lockoutEntry),
		maxAttempts: maxAttempts,
		lockout:     lockout,
	}
}

// Decision is the outcome of a login guard check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration // set when blocked
	Remaining  int           // failed attempts left before lockout
}

// Check reports whether a login attempt from ip for email may proceed.
// It does not record a failure; call RecordFailure after a rejected
// credential check.
func (ll *LoginLimiter) Check(ip, email string) Decision {
	if ip != "" && !ll.ipLimiter.Allow(ip) {
		return Decision{RetryAfter: ll.ipLimiter.RetryAfter(ip)}
	}

	key := emailKey(email)
	if key == "" {
		return Decision{Allowed: true, Remaining: ll.maxAttempts}
	}

	ll.mu.Lock()
	defer ll.mu.Unlock()

	e, ok := ll.failures[key]
	if !ok {
		return Decision{Allowed: true, Remaining: ll.maxAttempts}
	}
	now := time.Now()
	if !e.lockedUntil.IsZero() {
		if now.Before(e.lockedUntil) {
			return Decision{RetryAfter: e.lockedUntil.Sub(now)}
		}
		// Lockout elapsed; start fresh.
		delete(ll.failures, key)
		return Decision{Allowed: true, Remaining: ll.maxAttempts}
	}
	return Decision{Allowed: true, Remaining: ll.maxAttempts - e.count}
}

// RecordFailure counts a failed credential check for email. The call
// that reaches the threshold starts the lockout timer.
func (ll *LoginLimiter) RecordFailure(email string) {
	key := emailKey(email)
	if key == "" {
		return
	}

	ll.mu.Lock()
	defer ll.mu.Unlock()

	e, ok := ll.failures[key]
	if !ok {
		e = &lockoutEntry{}
		ll.failures[key] = e
	}
	e.count++
	if e.count >= ll.maxAttempts {
		e.lockedUntil = time.Now().Add(ll.lockout)
	}
}

// ResetLoginAttempts clears the failure counter for email after a
// successful login.
func (ll *LoginLimiter) ResetLoginAttempts(email string) {
	key := emailKey(email)
	if key == "" {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	delete(ll.failures, key)
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
