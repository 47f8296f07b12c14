// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs the digest pipeline on a daily cron schedule.
package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Job is the work the scheduler triggers.
type Job func()

// Scheduler fires the digest job once a day at the configured local time.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	spec   string
}

// New builds a Scheduler for the given config and job. The timezone defaults
// to UTC; an unknown timezone name is an error.
func New(cfg types.ScheduleConfig, job Job, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Hour < 0 || cfg.Hour > 23 {
		return nil, fmt.Errorf("schedule hour %d out of range", cfg.Hour)
	}
	if cfg.Minute < 0 || cfg.Minute > 59 {
		return nil, fmt.Errorf("schedule minute %d out of range", cfg.Minute)
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", tz, err)
	}

	spec := fmt.Sprintf("%d %d * * *", cfg.Minute, cfg.Hour)
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("registering digest job: %w", err)
	}

	s := &Scheduler{cron: c, logger: logger, spec: spec}
	logger.Info("digest scheduled", "hour", cfg.Hour, "minute", cfg.Minute, "timezone", tz)
	return s, nil
}

// Start begins firing the job. It returns immediately.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop shuts the scheduler down and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// NextRun reports when the job will next fire.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
