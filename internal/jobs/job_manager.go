package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Config carries the schedules (six-field cron expressions with seconds) and
// batch limits of the jobs.
type Config struct {
	OutboxRelaySchedule  string
	OutboxBatchSize      int
	PickupWindowSchedule string
	PickupWindowLimit    int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob  *OutboxRelayJob
	pickupWindowJob *PickupWindowJob
}

// NewJobManager creates the jobs. Invalid schedules are rejected here.
func NewJobManager(
	relayHandler outboxRelayer,
	expireHandler parcelExpirer,
	cfg Config,
	logger *slog.Logger,
) (*JobManager, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.OutboxRelaySchedule); err != nil {
		return nil, fmt.Errorf("outbox relay schedule %q: %w", cfg.OutboxRelaySchedule, err)
	}
	if _, err := parser.Parse(cfg.PickupWindowSchedule); err != nil {
		return nil, fmt.Errorf("pickup window schedule %q: %w", cfg.PickupWindowSchedule, err)
	}

	return &JobManager{
		outboxRelayJob:  NewOutboxRelayJob(relayHandler, cfg.OutboxRelaySchedule, cfg.OutboxBatchSize, logger),
		pickupWindowJob: NewPickupWindowJob(expireHandler, cfg.PickupWindowSchedule, cfg.PickupWindowLimit, logger),
	}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.pickupWindowJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop(context.Background())
		return fmt.Errorf("failed to start pickup window job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes until ctx ends.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.pickupWindowJob.Stop(ctx)
	jm.outboxRelayJob.Stop(ctx)
}
