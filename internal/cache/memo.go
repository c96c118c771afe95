// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo deduplicates loads within a single request. Concurrent callers of the
// same key share one computation, and later callers reuse its result,
// including its error.
type Memo struct {
	group   singleflight.Group
	mu      sync.Mutex
	results map[string]memoResult
}

type memoResult struct {
	value any
	err   error
}

// NewMemo creates an empty request memo.
func NewMemo() *Memo {
	return &Memo{results: make(map[string]memoResult)}
}

// Do returns the memoized result for key, computing it with fn at most once.
func (m *Memo) Do(key string, fn func() (any, error)) (any, error) {
	m.mu.Lock()
	if r, ok := m.results[key]; ok {
		m.mu.Unlock()
		return r.value, r.err
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(key, func() (any, error) {
		m.mu.Lock()
		if r, ok := m.results[key]; ok {
			m.mu.Unlock()
			return r.value, r.err
		}
		m.mu.Unlock()

		value, err := fn()

		m.mu.Lock()
		m.results[key] = memoResult{value: value, err: err}
		m.mu.Unlock()
		return value, err
	})
	return v, err
}

// Len returns the number of memoized keys.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

type memoKey struct{}

// WithMemo returns a context carrying a fresh request memo.
func WithMemo(ctx context.Context) context.Context {
	return context.WithValue(ctx, memoKey{}, NewMemo())
}

// MemoFrom returns the request memo stored in ctx, or nil.
func MemoFrom(ctx context.Context) *Memo {
	m, _ := ctx.Value(memoKey{}).(*Memo)
	return m
}
