package jobs

import (
	"context"
	"log/slog"
	"time"

	"save-serve/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

// Expirer moves donations past their pickup window to expired.
type Expirer interface {
	ExpireDue(ctx context.Context, limit int) (int, error)
}

const (
	expiryBatch = 200
	jobTimeout  = 30 * time.Second
)

// Scheduler runs the periodic sweeps: donation expiry and the outbox
// fallback flush for kicks that were lost.
type Scheduler struct {
	cron       *cron.Cron
	expirer    Expirer
	dispatcher *Dispatcher
	logger     *slog.Logger
	cfg        config.SchedulerConfig
}

func NewScheduler(expirer Expirer, dispatcher *Dispatcher, logger *slog.Logger, cfg config.SchedulerConfig) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	return &Scheduler{
		cron:       c,
		expirer:    expirer,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// Start registers the jobs and starts the cron scheduler. A bad schedule is
// logged and that job is skipped.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.cfg.ExpirySpec, s.ExpireDonations); err != nil {
		s.logger.Error("failed to schedule donation expiry job", "error", err)
	} else {
		s.logger.Info("scheduled donation expiry job", "schedule", s.cfg.ExpirySpec)
	}

	if _, err := s.cron.AddFunc(s.cfg.OutboxSpec, s.FlushOutbox); err != nil {
		s.logger.Error("failed to schedule outbox flush job", "error", err)
	} else {
		s.logger.Info("scheduled outbox flush job", "schedule", s.cfg.OutboxSpec)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) ExpireDonations() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.expirer.ExpireDue(ctx, expiryBatch)
	if err != nil {
		s.logger.Error("donation expiry sweep failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Info("donation expiry sweep finished", "expired", n)
	}
}

func (s *Scheduler) FlushOutbox() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.dispatcher.DispatchDue(ctx, s.cfg.OutboxBatch)
	if err != nil {
		s.logger.Error("outbox flush failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Debug("outbox flush finished", "sent", n)
	}
}
