package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"save-serve/internal/infra"
	"save-serve/internal/infra/db"
	"save-serve/internal/infra/repository"
	"save-serve/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxTxRetries = 3
)

type PostgresUoW struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	backoff func() backoff.BackOff
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, logger: logger, backoff: txBackoff}
}

func txBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxInterval = 400 * time.Millisecond
	bo.RandomizationFactor = 0.2
	return backoff.WithMaxRetries(bo, maxTxRetries)
}

// Within runs fn in a read-committed transaction. The claim is a single
// conditional UPDATE and every other write is version guarded, so stronger
// isolation buys nothing; deadlocks and serialization failures are retried.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	attempt := 0
	op := func() error {
		attempt++
		err := u.runOnce(ctx, opts, fn)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		u.logger.WarnContext(ctx, "retrying transaction", "attempt", attempt, "wait", wait, "error", err)
	}
	return backoff.RetryNotify(op, backoff.WithContext(u.backoff(), ctx), notify)
}

// WithinReadOnly gives fn a repeatable-read snapshot so multi-table reads
// (donation plus its pickup record) agree with each other.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runOnce(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) runOnce(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return infra.WrapRepoErr("begin transaction", err, infra.KindDBFailure)
	}
	// Rollback and commit outlive the caller: work fn finished is either
	// committed or cleanly undone, never left to a cancelled connection.
	detached := context.WithoutCancel(ctx)
	defer func() {
		if rbErr := pgxTx.Rollback(detached); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx}); err != nil {
		return err
	}
	if err := pgxTx.Commit(detached); err != nil {
		if isRetryable(err) {
			return err
		}
		return infra.WrapRepoErr("commit transaction", err, infra.KindDBFailure)
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

// pgTx hands out repositories bound to one pgx transaction, built on first use.
type pgTx struct {
	dbtx db.DBTX

	donations     shared.DonationRepository
	organizations shared.OrganizationRepository
	impact        shared.ImpactRepository
	claimAttempts shared.ClaimAttemptRepository
	notifications shared.NotificationRepository
}

func (t *pgTx) Donations() shared.DonationRepository {
	if t.donations == nil {
		t.donations = repository.NewDonationRepository(t.dbtx)
	}
	return t.donations
}

func (t *pgTx) Organizations() shared.OrganizationRepository {
	if t.organizations == nil {
		t.organizations = repository.NewOrganizationRepository(t.dbtx)
	}
	return t.organizations
}

func (t *pgTx) Impact() shared.ImpactRepository {
	if t.impact == nil {
		t.impact = repository.NewImpactRepository(t.dbtx)
	}
	return t.impact
}

func (t *pgTx) ClaimAttempts() shared.ClaimAttemptRepository {
	if t.claimAttempts == nil {
		t.claimAttempts = repository.NewClaimAttemptRepository(t.dbtx)
	}
	return t.claimAttempts
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notifications == nil {
		t.notifications = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notifications
}
