//go:build unit

package commands_test

import (
	"testing"
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/user"
	"save-serve/internal/infra/ratelimit"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type DonationCommandsTestSuite struct {
	storeSuite
	cmds commands.DonationCommands
}

func TestDonationCommandsSuite(t *testing.T) {
	suite.Run(t, new(DonationCommandsTestSuite))
}

func (s *DonationCommandsTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.cmds = commands.NewDonationCommands(s.store, s.clock, s.matcher, s.locator, s.kicker, s.logger)
}

func (s *DonationCommandsTestSuite) createRequest(mutate func(*commands.CreateDonationRequest)) commands.CreateDonationRequest {
	now := s.clock.Now()
	b := builder.NewDonationBuilder()
	req := commands.CreateDonationRequest{
		Title:        b.Title,
		Description:  b.Description,
		FoodTypes:    b.FoodTypes,
		Portions:     b.Portions,
		WeightKg:     b.WeightKg,
		Latitude:     b.Lat,
		Longitude:    b.Lng,
		Address:      b.Address,
		PickupStart:  now.Add(time.Hour),
		PickupEnd:    now.Add(4 * time.Hour),
		ImageFileIDs: b.ImageFileIDs,
	}
	if mutate != nil {
		mutate(&req)
	}
	return req
}

func (s *DonationCommandsTestSuite) TestCreate_NotifiesEligibleOrganizations() {
	near := s.seedOrganization(builder.NewOrganizationBuilder())
	s.seedOrganization(builder.NewOrganizationBuilder().WithCapacity(5))
	s.seedOrganization(builder.NewOrganizationBuilder().Unverified())
	s.seedOrganization(builder.NewOrganizationBuilder().WithPoint(-4.0435, 39.6682))
	donor := usecase.Principal{UserID: uuid.New(), Role: user.RoleDonor}

	result, err := s.cmds.Create(s.ctx, s.createRequest(nil), donor)

	s.Require().NoError(err)
	s.Equal(1, result.Notified)

	events := s.queuedEvents()
	s.Require().Len(events, 1)
	s.Equal(notification.TypeNewDonation, events[0].Event.Type)
	s.Equal(near.UserID(), events[0].Event.RecipientID)
	s.Equal(result.DonationID.String(), events[0].Event.Payload["donation_id"])

	_, indexed := s.locator.Donations().Distance(result.DonationID, near.Location().Point)
	s.True(indexed)
	s.EqualValues(1, s.kicker.n.Load())
}

func (s *DonationCommandsTestSuite) TestCreate_Validation() {
	tests := []struct {
		name   string
		mutate func(*commands.CreateDonationRequest)
	}{
		{name: "zero portions", mutate: func(r *commands.CreateDonationRequest) { r.Portions = 0 }},
		{name: "negative weight", mutate: func(r *commands.CreateDonationRequest) { r.WeightKg = -1 }},
		{name: "unknown food type", mutate: func(r *commands.CreateDonationRequest) { r.FoodTypes = []string{"gravel"} }},
		{name: "latitude out of range", mutate: func(r *commands.CreateDonationRequest) { r.Latitude = 91 }},
		{name: "window ends before it starts", mutate: func(r *commands.CreateDonationRequest) {
			r.PickupEnd = r.PickupStart.Add(-time.Hour)
		}},
		{name: "window starts in the past", mutate: func(r *commands.CreateDonationRequest) {
			r.PickupStart = s.clock.Now().Add(-time.Hour)
		}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.cmds.Create(s.ctx, s.createRequest(tt.mutate), usecase.Principal{UserID: uuid.New(), Role: user.RoleDonor})
			s.Require().Error(err)
			s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
	s.Empty(s.queuedEvents())
}

func (s *DonationCommandsTestSuite) TestCancel() {
	s.Run("owner cancels an available donation", func() {
		s.SetupTest()
		d := s.seedDonation(builder.NewDonationBuilder())

		s.Require().NoError(s.cmds.Cancel(s.ctx, d.ID(), donorOf(d)))

		s.Equal(donation.StatusCancelled, s.loadDonation(d).Status())
		_, indexed := s.locator.Donations().Location(d.ID())
		s.False(indexed)
	})

	s.Run("someone else is refused", func() {
		s.SetupTest()
		d := s.seedDonation(builder.NewDonationBuilder())

		err := s.cmds.Cancel(s.ctx, d.ID(), usecase.Principal{UserID: uuid.New(), Role: user.RoleDonor})

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("claimant hears about the cancellation", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		arbiter := commands.NewClaimArbiter(s.store, s.clock, s.matcher, s.locator, ratelimit.Noop{}, s.kicker, config.ClaimConfig{}, s.logger)
		_, err := arbiter.Claim(s.ctx, d.ID(), org.ID(), memberOf(org))
		s.Require().NoError(err)

		s.Require().NoError(s.cmds.Cancel(s.ctx, d.ID(), donorOf(d)))

		var released []notification.Event
		for _, job := range s.queuedEvents() {
			if job.Event.Type == notification.TypeClaimReleased {
				released = append(released, job.Event)
			}
		}
		s.Require().Len(released, 1)
		s.Equal(org.UserID(), released[0].RecipientID)
		s.Equal("cancelled_by_donor", released[0].Payload["reason"])
	})

	s.Run("cancelling twice conflicts", func() {
		s.SetupTest()
		d := s.seedDonation(builder.NewDonationBuilder())
		s.Require().NoError(s.cmds.Cancel(s.ctx, d.ID(), donorOf(d)))

		err := s.cmds.Cancel(s.ctx, d.ID(), donorOf(d))

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrConflict))
	})
}

func (s *DonationCommandsTestSuite) TestExpireDue() {
	due := s.seedDonation(builder.NewDonationBuilder())
	later := s.seedDonation(builder.NewDonationBuilder().With(func(b *builder.DonationBuilder) {
		b.End = b.Start.Add(10 * time.Hour)
	}))
	s.clock.Set(due.Window().End().Add(time.Second))

	n, err := s.cmds.ExpireDue(s.ctx, 100)

	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal(donation.StatusExpired, s.loadDonation(due).Status())
	s.Equal(donation.StatusAvailable, s.loadDonation(later).Status())

	again, err := s.cmds.ExpireDue(s.ctx, 100)
	s.Require().NoError(err)
	s.Zero(again)
}
