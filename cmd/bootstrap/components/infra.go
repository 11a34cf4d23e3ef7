package components

import (
	"context"
	"log/slog"
	"time"

	"save-serve/internal/infra/messaging"
	"save-serve/internal/infra/ratelimit"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		NewNotifier,
		NewRateLimiter,
	),
)

// NewNotifier publishes to RabbitMQ when RABBITMQ_URL is set and only logs
// events otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Notifier, error) {
	if cfg.AMQP.URL == "" {
		logger.Info("RABBITMQ_URL not set; notifications are logged only")
		return messaging.NewLogNotifier(logger), nil
	}
	n, err := messaging.NewAMQPNotifier(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			n.Close()
			return nil
		},
	})
	return n, nil
}

// NewRateLimiter uses Redis when REDIS_URL is set. An unreachable Redis is
// not fatal; claims fail open.
func NewRateLimiter(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.RateLimiter, error) {
	if cfg.Redis.URL == "" {
		return ratelimit.Noop{}, nil
	}
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed; claim rate limiting will fail open", "error", err.Error())
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return ratelimit.NewRedisLimiter(client, cfg.Redis.Prefix), nil
}
