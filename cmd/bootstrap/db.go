package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"save-serve/internal/infra/db"
	"save-serve/internal/infra/memstore"
	"save-serve/internal/infra/uow"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the store from STORE_DRIVER. The memory store keeps
// nothing across restarts and is meant for demos and local runs.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("in-memory store selected; data is lost on restart")
		return memstore.New(clk), nil
	case "postgres", "":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout+cfg.DB.ConnectTimeout/2)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		applied, err := db.Migrate(ctx, pool, logger)
		if err != nil {
			cleanup()
			return nil, err
		}
		logger.Info("migrations applied", "count", len(applied))
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool, logger), nil
}
