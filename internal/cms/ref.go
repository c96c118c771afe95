// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RefState tells which shape a relation value has.
type RefState int

const (
	RefAbsent RefState = iota
	RefUnresolved
	RefResolved
)

// Ref is a relation field: absent, a bare document id, or an expanded document.
type Ref[T any] struct {
	id  string
	doc *T
}

// Unresolved returns a reference holding only the target id.
func Unresolved[T any](id string) Ref[T] {
	return Ref[T]{id: strings.TrimSpace(id)}
}

// UnresolvedInt returns a reference to a numeric id; zero yields an absent reference.
func UnresolvedInt[T any](id int64) Ref[T] {
	if id == 0 {
		return Ref[T]{}
	}
	return Unresolved[T](strconv.FormatInt(id, 10))
}

// Resolved returns a reference carrying the expanded document.
func Resolved[T any](id int64, doc *T) Ref[T] {
	if doc == nil {
		return UnresolvedInt[T](id)
	}
	return Ref[T]{id: strconv.FormatInt(id, 10), doc: doc}
}

// State reports the shape of r.
func (r Ref[T]) State() RefState {
	switch {
	case r.doc != nil:
		return RefResolved
	case r.id != "":
		return RefUnresolved
	default:
		return RefAbsent
	}
}

// ID returns the normalized string id, or "" when absent.
func (r Ref[T]) ID() string { return r.id }

// Int64 returns the id as a number when it is one.
func (r Ref[T]) Int64() (int64, bool) {
	if r.id == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(r.id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Doc returns the expanded document, or nil unless the reference is resolved.
func (r Ref[T]) Doc() *T { return r.doc }

// MarshalJSON writes the bare id, as a number when numeric.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(r.id, 10, 64); err == nil {
		return []byte(r.id), nil
	}
	return json.Marshal(r.id)
}

// UnmarshalJSON accepts null, a number, a string or an object with an "id" member.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Ref[T]{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '{' {
		id, err := rawID(data)
		if err != nil {
			return err
		}
		r.id = id
		return nil
	}

	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	id, err := rawID(probe.ID)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	doc := new(T)
	if err := json.Unmarshal(data, doc); err != nil {
		return err
	}
	r.id, r.doc = id, doc
	return nil
}

func rawID(data json.RawMessage) (string, error) {
	if len(data) == 0 || string(data) == "null" {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("relation id: %w", err)
	}
	return n.String(), nil
}

// RelationID returns the normalized id a relation points at, or "" when absent.
func RelationID[T any](r Ref[T]) string {
	switch r.State() {
	case RefResolved, RefUnresolved:
		return r.ID()
	default:
		return ""
	}
}

// MediaURL returns the url of an expanded media document, or fallback.
func MediaURL(r Ref[Media], fallback string) string {
	switch r.State() {
	case RefResolved:
		if u := r.Doc().URL; u != "" {
			return u
		}
		return fallback
	case RefUnresolved, RefAbsent:
		return fallback
	}
	return fallback
}

// AbsoluteURL prefixes relative values with base. Values that already carry a
// scheme, and all values when base is empty, are returned unchanged.
func AbsoluteURL(base, value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || base == "" {
		return value
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return strings.TrimSuffix(base, "/") + value
}
