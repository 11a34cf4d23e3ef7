// Package locator keeps the two spatial indexes in step with the stores:
// claimable donations and verified organizations.
package locator

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/domain/organization"
	"save-serve/internal/usecase/shared"

	"github.com/google/uuid"
)

type Locator struct {
	donations     *geo.Index
	organizations *geo.Index
	logger        *slog.Logger

	mu sync.Mutex
	// Largest service radius ever indexed. It only grows, so a donation-side
	// query with it never misses an organization.
	maxRadiusKm float64
	// Lowest entity version a sync may still apply. Syncs run after commit
	// and can arrive out of order; anything older than the floor is stale.
	donationFloor map[uuid.UUID]int64
	orgFloor      map[uuid.UUID]int64
}

func New(logger *slog.Logger) *Locator {
	return &Locator{
		donations:     geo.NewIndex(),
		organizations: geo.NewIndex(),
		logger:        logger,
		maxRadiusKm:   organization.DefaultServiceRadiusKm,
		donationFloor: make(map[uuid.UUID]int64),
		orgFloor:      make(map[uuid.UUID]int64),
	}
}

func (l *Locator) Donations() *geo.Index     { return l.donations }
func (l *Locator) Organizations() *geo.Index { return l.organizations }

// SyncDonation indexes d while it can still be claimed and drops it otherwise.
// A copy older than one already synced or removed is ignored.
func (l *Locator) SyncDonation(d *donation.Donation, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !advance(l.donationFloor, d.ID(), d.Version()) {
		return
	}
	if !d.IsClaimable(now) {
		l.donations.Remove(d.ID())
		return
	}
	if !l.donations.Upsert(d.ID(), d.Location().Point) {
		l.logger.Warn("donation has no usable location, not indexed", "donation_id", d.ID().String())
	}
}

// RemoveDonation drops id and makes every version up to superseded stale, so
// a late sync of the copy read before the change cannot put it back. It does
// nothing when a version newer than superseded was synced already.
func (l *Locator) RemoveDonation(id uuid.UUID, superseded int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if superseded < l.donationFloor[id] {
		return
	}
	l.donationFloor[id] = superseded + 1
	l.donations.Remove(id)
}

// SyncOrganization indexes o only while it is verified.
func (l *Locator) SyncOrganization(o *organization.Organization) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !advance(l.orgFloor, o.ID(), o.Version()) {
		return
	}
	if !o.IsVerified() {
		l.organizations.Remove(o.ID())
		return
	}
	if !l.organizations.Upsert(o.ID(), o.Location().Point) {
		l.logger.Warn("organization has no usable location, not indexed", "organization_id", o.ID().String())
		return
	}
	l.maxRadiusKm = math.Max(l.maxRadiusKm, o.ServiceRadiusKm())
}

// advance raises the floor for id to version. It reports false when version
// is already below the floor.
func advance(floor map[uuid.UUID]int64, id uuid.UUID, version int64) bool {
	if version < floor[id] {
		return false
	}
	floor[id] = version
	return true
}

func (l *Locator) MaxServiceRadiusKm() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxRadiusKm
}

// Warm rebuilds both indexes from the store.
func (l *Locator) Warm(ctx context.Context, uow shared.UnitOfWork, now time.Time) error {
	var (
		donations []*donation.Donation
		orgs      []*organization.Organization
	)
	err := uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if donations, err = tx.Donations().ListClaimable(ctx, now); err != nil {
			return err
		}
		orgs, err = tx.Organizations().ListVerified(ctx)
		return err
	})
	if err != nil {
		return err
	}

	for _, d := range donations {
		l.SyncDonation(d, now)
	}
	for _, o := range orgs {
		l.SyncOrganization(o)
	}
	l.logger.Info("spatial indexes warmed",
		"donations", l.donations.Len(),
		"organizations", l.organizations.Len())
	return nil
}
