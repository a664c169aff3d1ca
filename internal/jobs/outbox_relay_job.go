package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type outboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the outbox on a schedule.
type OutboxRelayJob struct {
	handler   outboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(handler outboxRelayer, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	logger = logger.With("component", "outbox_relay_job")
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// Start registers the job and starts its scheduler. An invalid schedule is
// reported before anything runs.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), time.Now().UTC())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run performs one relay pass. It returns the number of messages relayed.
func (j *OutboxRelayJob) Run(ctx context.Context, now time.Time) int {
	cmd, err := commands.NewRelayOutboxCommand(now, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay command rejected", "error", err)
		return 0
	}

	relayed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "relayed", relayed, "error", err)
		return relayed
	}
	if relayed > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "relayed", relayed)
	}
	return relayed
}

// Stop stops scheduling and waits for a running pass to finish or ctx to end.
func (j *OutboxRelayJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
	j.logger.Info("Outbox relay job stopped")
}
