package jobs

import (
	"context"
	"log/slog"
	"time"

	"save-serve/internal/pkg/clock"
	"save-serve/internal/usecase/shared"
)

const (
	defaultBatchSize       = 50
	defaultPollInterval    = 1200 * time.Millisecond
	defaultStaleProcessing = 2 * time.Minute
)

// Dispatcher drains the notification outbox. Jobs are claimed in one
// transaction and published outside it; each publish result is recorded in
// its own transaction so a slow broker never holds locks.
type Dispatcher struct {
	uow             shared.UnitOfWork
	notifier        shared.Notifier
	clock           clock.Clock
	logger          *slog.Logger
	batchSize       int
	pollInterval    time.Duration
	staleProcessing time.Duration
	wake            chan struct{}
}

func NewDispatcher(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		uow:             uow,
		notifier:        notifier,
		clock:           clk,
		logger:          logger,
		batchSize:       defaultBatchSize,
		pollInterval:    defaultPollInterval,
		staleProcessing: defaultStaleProcessing,
		wake:            make(chan struct{}, 1),
	}
}

// Kick asks the run loop to flush now. It never blocks; kicks that arrive
// while one is pending collapse into it.
func (d *Dispatcher) Kick() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-d.wake:
		}
		if _, err := d.DispatchDue(ctx, d.batchSize); err != nil {
			d.logger.Error("outbox flush failed", "error", err.Error())
		}
	}
}

// DispatchDue publishes up to limit due jobs and returns how many were sent.
func (d *Dispatcher) DispatchDue(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = d.batchSize
	}
	now := d.clock.Now()

	var due []shared.NotificationJob
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Notifications().ClaimDue(ctx, now, limit, d.staleProcessing)
		return err
	})
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if pubErr := d.notifier.Publish(ctx, job.Event); pubErr != nil {
			retryAt := d.clock.Now().Add(time.Duration(retryDelaySeconds(job.Attempts)) * time.Second)
			d.logger.Warn("notification publish failed, requeued",
				"job_id", job.ID.String(),
				"type", string(job.Event.Type),
				"attempts", job.Attempts,
				"retry_at", retryAt,
				"error", pubErr.Error())
			if err := d.record(ctx, func(ctx context.Context, repo shared.NotificationRepository) error {
				return repo.MarkFailed(ctx, job.ID, pubErr.Error(), retryAt)
			}); err != nil {
				d.logger.Error("failed to requeue notification job", "job_id", job.ID.String(), "error", err.Error())
			}
			continue
		}
		if err := d.record(ctx, func(ctx context.Context, repo shared.NotificationRepository) error {
			return repo.MarkSent(ctx, job.ID, d.clock.Now())
		}); err != nil {
			d.logger.Error("failed to mark notification job sent", "job_id", job.ID.String(), "error", err.Error())
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *Dispatcher) record(ctx context.Context, fn func(ctx context.Context, repo shared.NotificationRepository) error) error {
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, tx.Notifications())
	})
}

// retryDelaySeconds doubles per attempt and caps at five minutes.
func retryDelaySeconds(attempt int) int {
	if attempt < 1 {
		return 1
	}
	delay := 1 << min(attempt, 8)
	if delay > 300 {
		return 300
	}
	return delay
}
