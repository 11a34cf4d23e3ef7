//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/organization"
	"save-serve/internal/domain/user"
	"save-serve/internal/infra/memstore"
	"save-serve/internal/pkg/clock"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/locator"
	"save-serve/internal/usecase/shared"
	"save-serve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type countingKicker struct {
	n atomic.Int64
}

func (k *countingKicker) Kick() { k.n.Add(1) }

// storeSuite wires the command layer to an in-memory store at a fixed time
// inside the default builder pickup window.
type storeSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.MockClock
	store   *memstore.Store
	locator *locator.Locator
	matcher *matching.Matcher
	kicker  *countingKicker
	logger  *slog.Logger
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(builder.BaseTime.Add(2 * time.Hour))
	s.store = memstore.New(s.clock)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.locator = locator.New(s.logger)
	s.matcher = matching.NewMatcher(
		matching.NewEligibilityFilter(time.UTC),
		matching.NewRanker(matching.RankerConfig{
			Weights:         matching.DefaultWeights(),
			DonationHorizon: 24 * time.Hour,
			ActivityHorizon: 7 * 24 * time.Hour,
		}),
	)
	s.kicker = &countingKicker{}
}

func (s *storeSuite) seedOrganization(b *builder.OrganizationBuilder) *organization.Organization {
	o := b.MustBuild()
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Organizations().Create(ctx, o)
	})
	require.NoError(s.T(), err)
	s.locator.SyncOrganization(o)
	return o
}

func (s *storeSuite) seedDonation(b *builder.DonationBuilder) *donation.Donation {
	d := b.MustBuild()
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Donations().Create(ctx, d)
	})
	require.NoError(s.T(), err)
	s.locator.SyncDonation(d, s.clock.Now())
	return d
}

func (s *storeSuite) loadDonation(d *donation.Donation) *donation.Donation {
	var got *donation.Donation
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		got, err = tx.Donations().FindByID(ctx, d.ID())
		return err
	})
	require.NoError(s.T(), err)
	return got
}

func (s *storeSuite) loadOrganization(id uuid.UUID) *organization.Organization {
	var got *organization.Organization
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		got, err = tx.Organizations().FindByID(ctx, id)
		return err
	})
	require.NoError(s.T(), err)
	return got
}

func (s *storeSuite) queuedEvents() []shared.NotificationJob {
	var jobs []shared.NotificationJob
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Notifications().ClaimDue(ctx, s.clock.Now().Add(time.Hour), 1000, time.Hour)
		return err
	})
	require.NoError(s.T(), err)
	return jobs
}

func memberOf(o *organization.Organization) usecase.Principal {
	return usecase.Principal{UserID: o.UserID(), Role: user.RoleOrganization}
}

func donorOf(d *donation.Donation) usecase.Principal {
	return usecase.Principal{UserID: d.DonorID(), Role: user.RoleDonor}
}
