//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/notification"
	"save-serve/internal/domain/organization"
	"save-serve/internal/domain/user"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/shared"
	"save-serve/tests/common/builder"
	sharedmock "save-serve/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ClaimArbiterTestSuite struct {
	storeSuite
	mockCtrl    *gomock.Controller
	mockLimiter *sharedmock.MockRateLimiter
}

func (s *ClaimArbiterTestSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLimiter = sharedmock.NewMockRateLimiter(s.mockCtrl)
}

func TestClaimArbiterSuite(t *testing.T) {
	suite.Run(t, new(ClaimArbiterTestSuite))
}

func (s *ClaimArbiterTestSuite) arbiter(cfg config.ClaimConfig) commands.ClaimArbiter {
	return commands.NewClaimArbiter(s.store, s.clock, s.matcher, s.locator, s.mockLimiter, s.kicker, cfg, s.logger)
}

func noLimit() config.ClaimConfig {
	return config.ClaimConfig{Timeout: 3 * time.Second}
}

func (s *ClaimArbiterTestSuite) TestClaim_Accepted() {
	org := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())

	result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

	s.Require().NoError(err)
	s.Equal(claim.OutcomeAccepted, result.Outcome)
	s.Empty(result.Code())
	s.Require().NotNil(result.ClaimedAt)
	s.Equal(s.clock.Now(), *result.ClaimedAt)

	stored := s.loadDonation(d)
	s.Equal(donation.StatusClaimed, stored.Status())
	s.Require().NotNil(stored.ClaimedBy())
	s.Equal(org.ID(), *stored.ClaimedBy())

	_, indexed := s.locator.Donations().Distance(d.ID(), org.Location().Point)
	s.False(indexed, "claimed donation must leave the claimable index")

	events := s.queuedEvents()
	s.Require().Len(events, 1)
	s.Equal(notification.TypeClaimAccepted, events[0].Event.Type)
	s.Equal(d.DonorID(), events[0].Event.RecipientID)
	s.EqualValues(1, s.kicker.n.Load())
}

func (s *ClaimArbiterTestSuite) TestClaim_SingleWinnerUnderContention() {
	const contenders = 12
	d := s.seedDonation(builder.NewDonationBuilder())
	orgs := make([]*organization.Organization, contenders)
	for i := range orgs {
		orgs[i] = s.seedOrganization(builder.NewOrganizationBuilder())
	}
	arbiter := s.arbiter(noLimit())

	results := make([]claim.Result, contenders)
	errsOut := make([]error, contenders)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, org := range orgs {
		wg.Add(1)
		go func(i int, org *organization.Organization) {
			defer wg.Done()
			<-start
			results[i], errsOut[i] = arbiter.Claim(context.Background(), d.ID(), org.ID(), memberOf(org))
		}(i, org)
	}
	close(start)
	wg.Wait()

	var winner uuid.UUID
	accepted := 0
	for i, r := range results {
		s.Require().NoError(errsOut[i])
		if r.IsAccepted() {
			accepted++
			winner = r.OrganizationID
			continue
		}
		s.Equal(claim.ReasonAlreadyClaimed, r.Reason)
	}
	s.Equal(1, accepted)

	stored := s.loadDonation(d)
	s.Require().NotNil(stored.ClaimedBy())
	s.Equal(winner, *stored.ClaimedBy())

	var attempts []claim.Attempt
	err := s.store.WithinReadOnly(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		attempts, err = tx.ClaimAttempts().ListByDonation(ctx, d.ID())
		return err
	})
	s.Require().NoError(err)
	s.Len(attempts, contenders)
}

func (s *ClaimArbiterTestSuite) TestClaim_Rejections() {
	tests := []struct {
		name       string
		org        func() *builder.OrganizationBuilder
		donation   func() *builder.DonationBuilder
		wantReason claim.RejectReason
		wantCode   string
	}{
		{
			name:       "unverified organization",
			org:        func() *builder.OrganizationBuilder { return builder.NewOrganizationBuilder().Unverified() },
			donation:   builder.NewDonationBuilder,
			wantReason: claim.ReasonNotEligible,
			wantCode:   "not_eligible:unverified",
		},
		{
			name:       "portions above capacity",
			org:        func() *builder.OrganizationBuilder { return builder.NewOrganizationBuilder().WithCapacity(5) },
			donation:   builder.NewDonationBuilder,
			wantReason: claim.ReasonNotEligible,
			wantCode:   "not_eligible:capacity",
		},
		{
			name: "food type not accepted",
			org:  builder.NewOrganizationBuilder,
			donation: func() *builder.DonationBuilder {
				return builder.NewDonationBuilder().WithFoodTypes("dairy")
			},
			wantReason: claim.ReasonNotEligible,
			wantCode:   "not_eligible:food_type",
		},
		{
			name: "window outside opening hours",
			org: func() *builder.OrganizationBuilder {
				return builder.NewOrganizationBuilder().With(func(b *builder.OrganizationBuilder) {
					b.HoursStart, b.HoursEnd = "18:00", "20:00"
				})
			},
			donation:   builder.NewDonationBuilder,
			wantReason: claim.ReasonNotEligible,
			wantCode:   "not_eligible:schedule",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			org := s.seedOrganization(tt.org())
			d := s.seedDonation(tt.donation())

			result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

			s.Require().NoError(err)
			s.Equal(claim.OutcomeRejected, result.Outcome)
			s.Equal(tt.wantReason, result.Reason)
			s.Equal(tt.wantCode, result.Code())
			s.Equal(donation.StatusAvailable, s.loadDonation(d).Status())
		})
	}
}

func (s *ClaimArbiterTestSuite) TestClaim_ExpiredWindow() {
	org := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())
	s.clock.Set(d.Window().End().Add(time.Minute))

	result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

	s.Require().NoError(err)
	s.Equal(claim.ReasonExpired, result.Reason)
	s.Equal(donation.StatusExpired, s.loadDonation(d).Status())

	events := s.queuedEvents()
	s.Require().Len(events, 1)
	s.Equal(notification.TypeDonationExpired, events[0].Event.Type)
}

func (s *ClaimArbiterTestSuite) TestClaim_NotAvailable() {
	org := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())
	require.NoError(s.T(), d.Cancel(d.DonorID(), s.clock.Now()))
	require.NoError(s.T(), s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Donations().Update(ctx, d)
	}))

	result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

	s.Require().NoError(err)
	s.Equal(claim.ReasonNotAvailable, result.Reason)
}

func (s *ClaimArbiterTestSuite) TestClaim_Errors() {
	s.Run("unknown donation", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())

		_, err := s.arbiter(noLimit()).Claim(s.ctx, uuid.New(), org.ID(), memberOf(org))

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrNotFound))
		s.True(errs.Is(err, commands.ErrDonationNotFound))
	})

	s.Run("caller is not a member", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		stranger := usecase.Principal{UserID: uuid.New(), Role: user.RoleOrganization}

		_, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), stranger)

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("admin may claim on behalf of an organization", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		admin := usecase.Principal{UserID: uuid.New(), Role: user.RoleAdmin}

		result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), admin)

		s.Require().NoError(err)
		s.True(result.IsAccepted())
	})

	s.Run("deadline already passed", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()

		_, err := s.arbiter(noLimit()).Claim(ctx, d.ID(), org.ID(), memberOf(org))

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrTimeout))
		s.Equal(donation.StatusAvailable, s.loadDonation(d).Status())
	})
}

func (s *ClaimArbiterTestSuite) TestClaim_DeadlinePassesWhileStoreBusy() {
	org := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())

	held := make(chan struct{})
	release := make(chan struct{})
	holder := make(chan error, 1)
	go func() {
		holder <- s.store.Within(context.Background(), func(context.Context, shared.Tx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	began := time.Now()
	result, err := s.arbiter(noLimit()).Claim(ctx, d.ID(), org.ID(), memberOf(org))
	elapsed := time.Since(began)

	close(release)
	s.Require().NoError(<-holder)

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrClaimTimeout))
	s.True(errs.Is(err, errs.ErrTimeout))
	s.Empty(result.Outcome)
	s.Less(elapsed, 400*time.Millisecond, "the claim must give up at its deadline, not when the store frees up")
	s.Equal(donation.StatusAvailable, s.loadDonation(d).Status())
}

func (s *ClaimArbiterTestSuite) TestClaim_AcceptedKeepsConcurrentVerification() {
	org := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())

	// The claim only moves last_active_at, so an admin decision made on a copy
	// read before the claim still applies and keeps the claim's activity stamp.
	stale := s.loadOrganization(org.ID())
	result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))
	s.Require().NoError(err)
	s.Require().True(result.IsAccepted())

	s.Require().NoError(stale.SetVerification(organization.VerificationRejected, s.clock.Now()))
	s.Require().NoError(s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Organizations().Update(ctx, stale)
	}))

	stored := s.loadOrganization(org.ID())
	s.Equal(organization.VerificationRejected, stored.VerificationStatus())
	s.Equal(s.clock.Now(), stored.LastActiveAt())
	s.Equal(org.Version()+1, stored.Version())
}

func (s *ClaimArbiterTestSuite) TestClaim_RateLimit() {
	limited := config.ClaimConfig{Timeout: 3 * time.Second, RateLimit: 2, RateLimitWindow: time.Minute}

	s.Run("over the limit", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		s.mockLimiter.EXPECT().
			Allow(gomock.Any(), "claim:"+org.ID().String(), 2, time.Minute).
			Return(false, 30*time.Second, nil)

		_, err := s.arbiter(limited).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrRateLimited))
		s.Equal(donation.StatusAvailable, s.loadDonation(d).Status())
	})

	s.Run("limiter failure lets the claim through", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())
		s.mockLimiter.EXPECT().
			Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, time.Duration(0), errors.New("redis down"))

		result, err := s.arbiter(limited).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

		s.Require().NoError(err)
		s.True(result.IsAccepted())
	})

	s.Run("disabled limit never consults the limiter", func() {
		s.SetupTest()
		org := s.seedOrganization(builder.NewOrganizationBuilder())
		d := s.seedDonation(builder.NewDonationBuilder())

		result, err := s.arbiter(noLimit()).Claim(s.ctx, d.ID(), org.ID(), memberOf(org))

		s.Require().NoError(err)
		s.True(result.IsAccepted())
	})
}

func (s *ClaimArbiterTestSuite) TestRelease() {
	first := s.seedOrganization(builder.NewOrganizationBuilder())
	second := s.seedOrganization(builder.NewOrganizationBuilder())
	d := s.seedDonation(builder.NewDonationBuilder())
	arbiter := s.arbiter(noLimit())

	result, err := arbiter.Claim(s.ctx, d.ID(), first.ID(), memberOf(first))
	s.Require().NoError(err)
	s.Require().True(result.IsAccepted())

	s.Run("only the claimant may release", func() {
		err := arbiter.Release(s.ctx, d.ID(), second.ID(), memberOf(second))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrForbidden))
	})

	s.Run("released donation can be claimed again", func() {
		s.Require().NoError(arbiter.Release(s.ctx, d.ID(), first.ID(), memberOf(first)))
		s.Equal(donation.StatusAvailable, s.loadDonation(d).Status())
		_, indexed := s.locator.Donations().Distance(d.ID(), first.Location().Point)
		s.True(indexed)

		again, err := arbiter.Claim(s.ctx, d.ID(), second.ID(), memberOf(second))
		s.Require().NoError(err)
		s.True(again.IsAccepted())
	})

	s.Run("releasing an available donation conflicts", func() {
		s.Require().NoError(arbiter.Release(s.ctx, d.ID(), second.ID(), memberOf(second)))
		err := arbiter.Release(s.ctx, d.ID(), second.ID(), memberOf(second))
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrConflict))
	})
}

func TestClaimResultCodes(t *testing.T) {
	id, org := uuid.New(), uuid.New()
	assert.Equal(t, "already_claimed", claim.Rejected(id, org, claim.ReasonAlreadyClaimed).Code())
	assert.Equal(t, "not_eligible:schedule", claim.NotEligible(id, org, matching.ReasonSchedule).Code())
}
