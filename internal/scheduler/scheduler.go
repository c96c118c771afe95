// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs of the site.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job names.
const (
	JobWarmCache   = "warm-cache"
	JobPruneEvents = "prune-events"
)

// Warmer preloads cached content.
type Warmer interface {
	Warm(ctx context.Context) error
}

// EventPruner deletes old persisted log events.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config configures the built-in jobs. Empty schedules disable a job.
type Config struct {
	WarmSchedule   string
	PruneSchedule  string
	EventRetention time.Duration
	Warmer         Warmer
	Events         EventPruner
	Overrides      OverrideStore
	JobTimeout     time.Duration
	Now            func() time.Time
}

// Scheduler owns the cron instance and its job registry.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
}

// New creates a scheduler and registers the configured jobs.
func New(cfg Config, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{
		cron:     c,
		registry: NewRegistry(c, cfg.Overrides, logger),
		logger:   logger,
	}

	timeout := cfg.JobTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	if cfg.WarmSchedule != "" && cfg.Warmer != nil {
		err := s.registry.Add(JobWarmCache, "Preload cached pages for every locale", cfg.WarmSchedule, timeout, cfg.Warmer.Warm)
		if err != nil {
			return nil, err
		}
	}

	if cfg.PruneSchedule != "" && cfg.Events != nil && cfg.EventRetention > 0 {
		prune := func(ctx context.Context) error {
			n, err := cfg.Events.DeleteEventsBefore(ctx, now().Add(-cfg.EventRetention))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned old events", "category", "system", "count", n)
			}
			return nil
		}
		if err := s.registry.Add(JobPruneEvents, "Delete logged events past retention", cfg.PruneSchedule, timeout, prune); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry { return s.registry }

// Start begins running jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs and stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
