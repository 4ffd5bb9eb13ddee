package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"notapos/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob runs the holding-window sweep on a fixed interval. Each tick
// dispatches every pending item whose timer has elapsed. The first tick is
// held back by a grace period so a restarting service does not mass-dispatch
// before its adapters are warm.
type ExpirySweepJob struct {
	handler  commands.DispatchExpiredItemsCommandHandler
	cron     *cron.Cron
	interval time.Duration
	grace    time.Duration
	logger   *slog.Logger

	mu         sync.Mutex
	graceTimer *time.Timer
}

// NewExpirySweepJob creates the sweep job. The interval is the tick period
// between sweeps; grace delays the very first tick after Start.
func NewExpirySweepJob(
	handler commands.DispatchExpiredItemsCommandHandler,
	interval time.Duration,
	grace time.Duration,
	logger *slog.Logger,
) *ExpirySweepJob {
	return &ExpirySweepJob{
		handler:  handler,
		cron:     cron.New(),
		interval: interval,
		grace:    grace,
		logger:   logger.With("component", "expiry_sweep_job"),
	}
}

// Start schedules the sweep. The first sweep runs at the grace boundary
// itself; the cron scheduler then takes over for the subsequent ticks. Stop
// before the grace period elapses cancels the pending start.
func (j *ExpirySweepJob) Start() error {
	spec := fmt.Sprintf("@every %s", j.interval)
	_, err := j.cron.AddFunc(spec, j.sweep)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.graceTimer = time.AfterFunc(j.grace, func() {
		j.sweep()
		j.cron.Start()
		j.logger.InfoContext(context.Background(), "Expiry sweep started",
			"interval", j.interval.String())
	})

	j.logger.InfoContext(context.Background(), "Expiry sweep scheduled",
		"interval", j.interval.String(), "grace", j.grace.String())
	return nil
}

// Stop stops the sweep and cancels a not-yet-elapsed grace period.
func (j *ExpirySweepJob) Stop() {
	j.mu.Lock()
	if j.graceTimer != nil {
		j.graceTimer.Stop()
	}
	j.mu.Unlock()

	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep stopped")
}

func (j *ExpirySweepJob) sweep() {
	ctx := context.Background()

	cmd, err := commands.NewDispatchExpiredItemsCommand()
	if err != nil {
		j.logger.ErrorContext(ctx, "Expiry sweep command construction failed", "error", err)
		return
	}

	dispatched, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		return
	}

	if dispatched > 0 {
		j.logger.InfoContext(ctx, "Expiry sweep dispatched items", "count", dispatched)
	}
}
