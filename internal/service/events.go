// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/logging"
	"github.com/crabnorway/crabsite/internal/store"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// EventService reads the persisted event log.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(q *store.Queries) *EventService {
	return &EventService{queries: q}
}

// List returns events newest first. An empty level lists every level; limit
// is clamped to a sane page size.
func (s *EventService) List(ctx context.Context, level string, limit, offset int) ([]cms.Event, error) {
	err := validation.Validate(level, validation.In(logging.EventLevelInfo, logging.EventLevelWarning, logging.EventLevelError))
	if err != nil {
		return nil, cms.BadRequest("level: " + err.Error())
	}
	switch {
	case limit <= 0:
		limit = defaultEventsLimit
	case limit > maxEventsLimit:
		limit = maxEventsLimit
	}
	if offset < 0 {
		offset = 0
	}
	events, err := s.queries.ListEvents(ctx, level, limit, offset)
	if events == nil && err == nil {
		events = []cms.Event{}
	}
	return events, err
}
