// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"sync"
	"time"
)

const maxLockout = 24 * time.Hour

// Lockout locks an account after repeated failed logins. Each further
// lockout doubles the duration, capped at a day.
type Lockout struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempt
	maxFailures int
	duration    time.Duration
	window      time.Duration
	now         func() time.Time
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// NewLockout locks an account for duration after maxFailures failures within window.
func NewLockout(maxFailures int, duration, window time.Duration) *Lockout {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if duration <= 0 {
		duration = 15 * time.Minute
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Lockout{
		attempts:    make(map[string]*loginAttempt),
		maxFailures: maxFailures,
		duration:    duration,
		window:      window,
		now:         time.Now,
	}
}

// Locked reports whether key is locked and for how much longer.
func (l *Lockout) Locked(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok {
		return false, 0
	}
	if now := l.now(); now.Before(a.lockedUntil) {
		return true, a.lockedUntil.Sub(now)
	}
	return false, 0
}

// Fail records a failed attempt and reports whether it locked key.
func (l *Lockout) Fail(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	a, ok := l.attempts[key]
	if !ok || now.Sub(a.firstFailed) > l.window {
		if !ok {
			a = &loginAttempt{}
			l.attempts[key] = a
		}
		a.count, a.firstFailed = 0, now
	}

	a.count++
	if a.count < l.maxFailures {
		return false
	}

	d := l.duration
	for i := 0; i < a.lockouts && d < maxLockout; i++ {
		d *= 2
	}
	d = min(d, maxLockout)

	a.lockedUntil = now.Add(d)
	a.lockouts++
	a.count = 0
	return true
}

// Succeed clears the failures of key.
func (l *Lockout) Succeed(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// prune drops entries whose lock and window have both passed. The caller holds l.mu.
func (l *Lockout) prune(now time.Time) {
	if len(l.attempts) < maxTrackedClients {
		return
	}
	for key, a := range l.attempts {
		if now.After(a.lockedUntil) && now.Sub(a.firstFailed) > l.window {
			delete(l.attempts, key)
		}
	}
}
