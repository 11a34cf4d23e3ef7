//go:build unit

package commands_test

import (
	"context"
	"testing"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"
	"save-serve/internal/infra/ratelimit"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/shared"
	"save-serve/tests/common/builder"

	"github.com/stretchr/testify/suite"
)

type ImpactAccumulatorTestSuite struct {
	storeSuite
	org         *organization.Organization
	d           *donation.Donation
	accumulator commands.ImpactAccumulator
}

func TestImpactAccumulatorSuite(t *testing.T) {
	suite.Run(t, new(ImpactAccumulatorTestSuite))
}

func (s *ImpactAccumulatorTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.org = s.seedOrganization(builder.NewOrganizationBuilder())
	s.d = s.seedDonation(builder.NewDonationBuilder())
	s.accumulator = commands.NewImpactAccumulator(s.store, s.clock, s.kicker, s.logger)

	arbiter := commands.NewClaimArbiter(s.store, s.clock, s.matcher, s.locator, ratelimit.Noop{}, s.kicker, config.ClaimConfig{}, s.logger)
	result, err := arbiter.Claim(s.ctx, s.d.ID(), s.org.ID(), memberOf(s.org))
	s.Require().NoError(err)
	s.Require().True(result.IsAccepted())
}

func (s *ImpactAccumulatorTestSuite) totals() (platform, donor impact.Totals, org *organization.Organization) {
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if platform, err = tx.Impact().PlatformTotals(ctx); err != nil {
			return err
		}
		if donor, err = tx.Impact().DonorTotals(ctx, s.d.DonorID()); err != nil {
			return err
		}
		org, err = tx.Organizations().FindByID(ctx, s.org.ID())
		return err
	})
	s.Require().NoError(err)
	return platform, donor, org
}

func (s *ImpactAccumulatorTestSuite) TestRecordPickup_ListedWeight() {
	result, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
		DonationID:     s.d.ID(),
		OrganizationID: s.org.ID(),
	}, memberOf(s.org))

	s.Require().NoError(err)
	s.False(result.Replayed)
	s.Equal(int64(20), result.Delta.Meals)
	s.InDelta(8.0, result.Delta.WeightKg, 1e-9)
	s.InDelta(26.4, result.Delta.CO2Kg, 1e-9)

	stored := s.loadDonation(s.d)
	s.Equal(donation.StatusPickedUp, stored.Status())
	s.NotNil(stored.CompletedAt())

	platform, donor, org := s.totals()
	s.Equal(int64(1), platform.Pickups)
	s.Equal(int64(20), platform.Meals)
	s.Equal(platform, donor)
	s.Equal(int64(20), org.Impact().TotalMeals)

	var pickupEvents int
	for _, job := range s.queuedEvents() {
		if job.Event.Type == notification.TypePickupCompleted {
			pickupEvents++
		}
	}
	s.Equal(1, pickupEvents)
}

func (s *ImpactAccumulatorTestSuite) TestRecordPickup_ActualWeight() {
	actual := 2.0

	result, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
		DonationID:     s.d.ID(),
		OrganizationID: s.org.ID(),
		ActualWeightKg: &actual,
	}, memberOf(s.org))

	s.Require().NoError(err)
	s.Equal(int64(5), result.Delta.Meals)
	s.InDelta(6.6, result.Delta.CO2Kg, 1e-9)
}

func (s *ImpactAccumulatorTestSuite) TestRecordPickup_ReplayCountsOnce() {
	req := commands.RecordPickupRequest{DonationID: s.d.ID(), OrganizationID: s.org.ID()}

	first, err := s.accumulator.RecordPickup(s.ctx, req, memberOf(s.org))
	s.Require().NoError(err)
	second, err := s.accumulator.RecordPickup(s.ctx, req, memberOf(s.org))
	s.Require().NoError(err)

	s.True(second.Replayed)
	s.Equal(first.Delta, second.Delta)

	platform, donor, org := s.totals()
	s.Equal(int64(1), platform.Pickups)
	s.Equal(int64(1), donor.Pickups)
	s.Equal(first.Delta.Meals, org.Impact().TotalMeals)
}

func (s *ImpactAccumulatorTestSuite) TestRecordPickup_Errors() {
	other := s.seedOrganization(builder.NewOrganizationBuilder())

	s.Run("organization that did not claim", func() {
		_, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
			DonationID:     s.d.ID(),
			OrganizationID: other.ID(),
		}, memberOf(other))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("non positive weight", func() {
		zero := 0.0
		_, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
			DonationID:     s.d.ID(),
			OrganizationID: s.org.ID(),
			ActualWeightKg: &zero,
		}, memberOf(s.org))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("weight too large for the counters", func() {
		huge := 1e300
		_, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
			DonationID:     s.d.ID(),
			OrganizationID: s.org.ID(),
			ActualWeightKg: &huge,
		}, memberOf(s.org))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrValidation))
		s.ErrorIs(err, impact.ErrInvalidWeight)
		s.Equal(donation.StatusClaimed, s.loadDonation(s.d).Status())
	})

	s.Run("caller not a member", func() {
		_, err := s.accumulator.RecordPickup(s.ctx, commands.RecordPickupRequest{
			DonationID:     s.d.ID(),
			OrganizationID: s.org.ID(),
		}, memberOf(other))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	platform, _, org := s.totals()
	s.Zero(platform.Pickups)
	s.Zero(platform.Meals)
	s.Zero(org.Impact().TotalMeals)
}
