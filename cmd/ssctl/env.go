package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"save-serve/internal/infra/db"
	"save-serve/internal/infra/memstore"
	"save-serve/internal/infra/messaging"
	"save-serve/internal/infra/uow"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type env struct {
	cfg    config.Config
	logger *slog.Logger
	clock  clock.Clock
	pool   *pgxpool.Pool
	uow    shared.UnitOfWork
	close  func()
}

func loadEnv() (config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return cfg, logger, nil
}

// openEnv connects to the configured store. The memory driver gives an empty
// store, which is only useful for trying the commands out.
func openEnv(ctx context.Context) (*env, error) {
	cfg, logger, err := loadEnv()
	if err != nil {
		return nil, err
	}
	clk := clock.NewRealClock()
	e := &env{cfg: cfg, logger: logger, clock: clk, close: func() {}}

	if cfg.Store.Driver == "memory" {
		e.uow = memstore.New(clk)
		return e, nil
	}
	pool, cleanup, err := db.Connect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	e.pool = pool
	e.uow = uow.NewPostgresUoW(pool, logger)
	e.close = cleanup
	return e, nil
}

func (e *env) notifier() (shared.Notifier, func(), error) {
	if e.cfg.AMQP.URL == "" {
		return messaging.NewLogNotifier(e.logger), func() {}, nil
	}
	n, err := messaging.NewAMQPNotifier(e.cfg.AMQP.URL, e.cfg.AMQP.Exchange, e.logger)
	if err != nil {
		return nil, nil, err
	}
	return n, n.Close, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
