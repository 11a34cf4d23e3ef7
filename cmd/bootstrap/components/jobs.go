package components

import (
	"context"
	"log/slog"

	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/jobs"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewDispatcher,
		func(c commands.DonationCommands) jobs.Expirer { return c },
		func(cfg config.Config) config.SchedulerConfig { return cfg.Scheduler },
		jobs.NewScheduler,
	),
	fx.Invoke(runDispatcher, runScheduler),
)

func runDispatcher(lc fx.Lifecycle, d *jobs.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				d.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func runScheduler(lc fx.Lifecycle, s *jobs.Scheduler, cfg config.SchedulerConfig, logger *slog.Logger) {
	if !cfg.Enabled {
		logger.Info("scheduler disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			select {
			case <-s.Stop().Done():
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
