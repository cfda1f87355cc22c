package jobs

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCancellationJob manages the scheduled cancellation of stale orders.
// Runs every minute to cancel pending orders that were never confirmed within
// the configured time-to-live.
type StaleOrderCancellationJob struct {
	handler  commands.CancelStaleOrdersCommandHandler
	staleTTL time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderCancellationJob creates a new job for cancelling stale orders.
// Uses CancelStaleOrdersCommandHandler to sweep pending orders older than staleTTL.
func NewStaleOrderCancellationJob(
	handler commands.CancelStaleOrdersCommandHandler,
	staleTTL time.Duration,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler:  handler,
		staleTTL: staleTTL,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the stale order cancellation job to run every minute.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleOrdersCommand(j.staleTTL)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job misconfigured", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale orders", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running every minute)")
	return nil
}

// Stop stops the stale order cancellation job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
