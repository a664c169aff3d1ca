package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

type parcelExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStoredParcelsCommand) ([]kernel.UUID, error)
}

// PickupWindowJob opens returns for parcels whose storage window at a pickup
// station has run out.
type PickupWindowJob struct {
	handler  parcelExpirer
	schedule string
	limit    int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPickupWindowJob(handler parcelExpirer, schedule string, limit int, logger *slog.Logger) *PickupWindowJob {
	logger = logger.With("component", "pickup_window_job")
	return &PickupWindowJob{
		handler:  handler,
		schedule: schedule,
		limit:    limit,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *PickupWindowJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), time.Now().UTC())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Pickup window job started", "schedule", j.schedule)
	return nil
}

// Run performs one expiry pass. Parcels that failed are logged and picked up
// again on the next tick; the ones that succeeded are returned.
func (j *PickupWindowJob) Run(ctx context.Context, now time.Time) []kernel.UUID {
	cmd, err := commands.NewExpireStoredParcelsCommand(now, j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Expire command rejected", "error", err)
		return nil
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pickup window expiry failed", "expired", len(expired), "error", err)
	}
	for _, id := range expired {
		j.logger.InfoContext(ctx, "Return opened for expired pickup window", "parcel_id", id.String())
	}
	return expired
}

func (j *PickupWindowJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
	j.logger.Info("Pickup window job stopped")
}
