// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crabnorway/crabsite/internal/cms"
)

var (
	// ErrJobNotFound is returned for unknown job names.
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidSchedule is returned for schedules the cron parser rejects.
	ErrInvalidSchedule = errors.New("invalid cron expression")
)

// OverrideStore persists schedule overrides.
type OverrideStore interface {
	GetSchedulerOverride(ctx context.Context, name string) (string, error)
	UpsertSchedulerOverride(ctx context.Context, name, schedule string, now time.Time) error
	DeleteSchedulerOverride(ctx context.Context, name string) error
}

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name            string
	description     string
	defaultSchedule string
	schedule        string // effective schedule (override or default)
	entryID         cron.EntryID
	jobFunc         func()
	triggerFunc     func(context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"defaultSchedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"isOverridden"`
	LastRun         time.Time `json:"lastRun"`
	NextRun         time.Time `json:"nextRun"`
}

// Registry tracks the jobs of one cron instance and their schedule overrides.
type Registry struct {
	cron      *cron.Cron
	overrides OverrideStore
	logger    *slog.Logger
	mu        sync.RWMutex
	jobs      map[string]*registeredJob
}

// NewRegistry creates a registry over c. overrides may be nil.
func NewRegistry(c *cron.Cron, overrides OverrideStore, logger *slog.Logger) *Registry {
	return &Registry{
		cron:      c,
		overrides: overrides,
		logger:    logger,
		jobs:      make(map[string]*registeredJob),
	}
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether schedule is a valid cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSchedule, schedule, err)
	}
	return nil
}

// effectiveSchedule returns the stored override if one exists, otherwise the default.
func (r *Registry) effectiveSchedule(name, defaultSchedule string) string {
	if r.overrides == nil {
		return defaultSchedule
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	override, err := r.overrides.GetSchedulerOverride(ctx, name)
	if err == nil && override != "" && ValidateSchedule(override) == nil {
		return override
	}
	if err != nil && !errors.Is(err, cms.ErrNotFound) {
		r.logger.Warn("failed to read schedule override", "name", name, "error", err)
	}
	return defaultSchedule
}

// Add schedules run under name. The job runs with a context bounded by timeout.
func (r *Registry) Add(name, description, defaultSchedule string, timeout time.Duration, run func(context.Context) error) error {
	if err := ValidateSchedule(defaultSchedule); err != nil {
		return err
	}

	trigger := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		start := time.Now()
		err := run(ctx)
		if err != nil {
			r.logger.Error("scheduled job failed", "category", "system", "job", name, "error", err)
			return err
		}
		r.logger.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
		return nil
	}
	jobFunc := func() { _ = trigger(context.Background()) }

	schedule := r.effectiveSchedule(name, defaultSchedule)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}
	entryID, err := r.cron.AddFunc(schedule, jobFunc)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}

	r.jobs[name] = &registeredJob{
		name:            name,
		description:     description,
		defaultSchedule: defaultSchedule,
		schedule:        schedule,
		entryID:         entryID,
		jobFunc:         jobFunc,
		triggerFunc:     trigger,
	}

	r.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// List returns all registered jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		entry := r.cron.Entry(job.entryID)
		result = append(result, JobInfo{
			Name:            job.name,
			Description:     job.description,
			DefaultSchedule: job.defaultSchedule,
			Schedule:        job.schedule,
			IsOverridden:    job.schedule != job.defaultSchedule,
			NextRun:         entry.Next,
			LastRun:         entry.Prev,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a job immediately and returns its error.
func (r *Registry) TriggerNow(ctx context.Context, name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	r.logger.Info("manually triggering job", "name", name)
	return job.triggerFunc(ctx)
}

// UpdateSchedule replaces the cron entry of a job and persists the override.
func (r *Registry) UpdateSchedule(ctx context.Context, name, newSchedule string) error {
	if err := ValidateSchedule(newSchedule); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if err := r.reschedule(job, newSchedule); err != nil {
		return err
	}

	if r.overrides != nil {
		var err error
		if newSchedule == job.defaultSchedule {
			err = r.overrides.DeleteSchedulerOverride(ctx, name)
		} else {
			err = r.overrides.UpsertSchedulerOverride(ctx, name, newSchedule, time.Now())
		}
		if err != nil {
			r.logger.Error("failed to persist schedule override", "error", err, "name", name)
		}
	}

	r.logger.Info("updated job schedule", "name", name, "schedule", newSchedule)
	return nil
}

// ResetSchedule restores the default schedule of a job.
func (r *Registry) ResetSchedule(ctx context.Context, name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return r.UpdateSchedule(ctx, name, job.defaultSchedule)
}

// reschedule swaps the cron entry of job. The caller holds r.mu.
func (r *Registry) reschedule(job *registeredJob, schedule string) error {
	if schedule == job.schedule {
		return nil
	}

	r.cron.Remove(job.entryID)
	newEntryID, err := r.cron.AddFunc(schedule, job.jobFunc)
	if err != nil {
		fallbackID, fallbackErr := r.cron.AddFunc(job.schedule, job.jobFunc)
		if fallbackErr != nil {
			return fmt.Errorf("critical: failed to restore schedule after update failure: %w (original: %w)", fallbackErr, err)
		}
		job.entryID = fallbackID
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}

	job.entryID = newEntryID
	job.schedule = schedule
	return nil
}
