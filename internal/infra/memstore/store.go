// Package memstore is an in-process UnitOfWork for single-node deployments
// and tests. Write transactions are serialized and work on a copy of the
// state that replaces the live state on commit. Read-only transactions share
// the live state and run alongside each other.
package memstore

import (
	"context"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/organization"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// A writer takes the whole semaphore, a reader one unit of it.
const lockWeight = 1 << 20

type jobRow struct {
	job                 shared.NotificationJob
	lastError           string
	processingStartedAt time.Time
}

type state struct {
	donations     map[uuid.UUID]donation.Snapshot
	organizations map[uuid.UUID]organization.Snapshot
	pickups       map[uuid.UUID]impact.PickupRecord
	platform      impact.Totals
	donors        map[uuid.UUID]impact.Totals
	attempts      []claim.Attempt
	jobs          map[uuid.UUID]jobRow
}

func newState() *state {
	return &state{
		donations:     make(map[uuid.UUID]donation.Snapshot),
		organizations: make(map[uuid.UUID]organization.Snapshot),
		pickups:       make(map[uuid.UUID]impact.PickupRecord),
		donors:        make(map[uuid.UUID]impact.Totals),
		jobs:          make(map[uuid.UUID]jobRow),
	}
}

func (s *state) clone() *state {
	c := &state{
		donations:     make(map[uuid.UUID]donation.Snapshot, len(s.donations)),
		organizations: make(map[uuid.UUID]organization.Snapshot, len(s.organizations)),
		pickups:       make(map[uuid.UUID]impact.PickupRecord, len(s.pickups)),
		platform:      s.platform,
		donors:        make(map[uuid.UUID]impact.Totals, len(s.donors)),
		attempts:      s.attempts[:len(s.attempts):len(s.attempts)],
		jobs:          make(map[uuid.UUID]jobRow, len(s.jobs)),
	}
	for k, v := range s.donations {
		c.donations[k] = v
	}
	for k, v := range s.organizations {
		c.organizations[k] = v
	}
	for k, v := range s.pickups {
		c.pickups[k] = v
	}
	for k, v := range s.donors {
		c.donors[k] = v
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	return c
}

type Store struct {
	lock  *semaphore.Weighted
	clock clock.Clock
	state *state
}

func New(clk clock.Clock) *Store {
	return &Store{lock: semaphore.NewWeighted(lockWeight), clock: clk, state: newState()}
}

// Within runs fn on a private copy of the state and publishes the copy only
// when fn succeeds. Waiting for the store gives up when ctx is done.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := s.lock.Acquire(ctx, lockWeight); err != nil {
		return err
	}
	defer s.lock.Release(lockWeight)

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work, clock: s.clock}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// WithinReadOnly hands fn the live state. A write copies the state first and
// is thrown away with the copy.
func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := s.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.lock.Release(1)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{st: s.state, clock: s.clock, borrowed: true})
}

type memTx struct {
	st     *state
	clock  clock.Clock
	borrowed bool
}

// write returns state fn may modify.
func (t *memTx) write() *state {
	if t.borrowed {
		t.st = t.st.clone()
		t.borrowed = false
	}
	return t.st
}

func (t *memTx) Donations() shared.DonationRepository         { return &donationRepo{tx: t} }
func (t *memTx) Organizations() shared.OrganizationRepository { return &organizationRepo{tx: t} }
func (t *memTx) Impact() shared.ImpactRepository              { return &impactRepo{tx: t} }
func (t *memTx) ClaimAttempts() shared.ClaimAttemptRepository { return &claimAttemptRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository { return &notificationRepo{tx: t} }
