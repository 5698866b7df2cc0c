// Package housekeeping runs periodic maintenance jobs against the store.
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const pruneTimeout = 30 * time.Second

// EventPruner deletes activity events older than a cutoff.
type EventPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler executes maintenance jobs on cron schedules.
type Scheduler struct {
	cron      *cron.Cron
	events    EventPruner
	retention time.Duration
	now       func() time.Time
}

// NewScheduler creates a scheduler that keeps retention worth of events.
func NewScheduler(events EventPruner, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		events:    events,
		retention: retention,
		now:       time.Now,
	}
}

// Start registers the prune job on schedule and starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	if s.retention <= 0 {
		log.Info().Msg("Event retention disabled, not scheduling prune job")
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.PruneEvents); err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	log.Info().Str("schedule", schedule).Dur("retention", s.retention).Msg("Starting housekeeping scheduler")
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped housekeeping scheduler")
}

// PruneEvents deletes events that fell out of the retention window.
func (s *Scheduler) PruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	removed, err := s.events.PruneBefore(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to prune events")
		return
	}
	log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Pruned old events")
}
