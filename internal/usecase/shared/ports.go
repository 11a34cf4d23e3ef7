package shared

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/mock_ports.go -package=sharedmock

import (
	"context"
	"time"

	"save-serve/internal/domain/notification"
)

// Notifier hands events to the notification collaborator. Publishing is
// best effort; callers never roll back on a publish failure.
type Notifier interface {
	Publish(ctx context.Context, ev notification.Event) error
}

// RateLimiter bounds how often a caller may attempt a claim.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}
