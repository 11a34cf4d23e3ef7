//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"save-serve/internal/domain/claim"
	"save-serve/internal/domain/impact"
	"save-serve/internal/domain/matching"
	"save-serve/internal/domain/user"
	"save-serve/internal/handler/api"
	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/tests/common/httptest"
	commandsmock "save-serve/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// withPrincipal stands in for RequireAuth: any bearer token authenticates
// as p.
func withPrincipal(p usecase.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("principal", p)
		c.Set("user_id", p.UserID)
		c.Set("user_role", p.Role)
		c.Next()
	}
}

type ClaimHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockArbiter     *commandsmock.MockClaimArbiter
	mockAccumulator *commandsmock.MockImpactAccumulator
	actor           usecase.Principal
	donationID      uuid.UUID
	orgID           uuid.UUID
}

func TestClaimHandlerSuite(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}

func (s *ClaimHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockArbiter = commandsmock.NewMockClaimArbiter(s.mockCtrl)
	s.mockAccumulator = commandsmock.NewMockImpactAccumulator(s.mockCtrl)
	s.actor = usecase.Principal{UserID: uuid.New(), Role: user.RoleOrganization}
	s.donationID = uuid.New()
	s.orgID = uuid.New()

	h := api.NewClaimHandler(s.mockArbiter, s.mockAccumulator, config.ClaimConfig{Timeout: 3 * time.Second})
	auth := withPrincipal(s.actor)
	s.router.POST("/donations/:id/claim", auth, h.Claim)
	s.router.POST("/donations/:id/release", auth, h.Release)
	s.router.POST("/donations/:id/pickup", auth, h.Pickup)
}

func (s *ClaimHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ClaimHandlerTestSuite) claimURL() string {
	return "/donations/" + s.donationID.String() + "/claim"
}

func (s *ClaimHandlerTestSuite) TestClaim() {
	body := map[string]any{"organization_id": s.orgID.String()}
	claimedAt := time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC)

	s.Run("accepted claim answers 200", func() {
		s.mockArbiter.EXPECT().
			Claim(gomock.Any(), s.donationID, s.orgID, s.actor).
			Return(claim.Accepted(s.donationID, s.orgID, claimedAt), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")

		var res resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("accepted", res.Outcome)
		s.Empty(res.Reason)
		s.Require().NotNil(res.ClaimedAt)
		s.Equal(claimedAt.Unix(), *res.ClaimedAt)
	})

	s.Run("losing claim is still 200 with a reason", func() {
		s.mockArbiter.EXPECT().
			Claim(gomock.Any(), s.donationID, s.orgID, s.actor).
			Return(claim.Rejected(s.donationID, s.orgID, claim.ReasonAlreadyClaimed), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")

		var res resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("rejected", res.Outcome)
		s.Equal("already_claimed", res.Reason)
		s.Equal("This item was just claimed by someone else.", res.Message)
		s.Nil(res.ClaimedAt)
	})

	s.Run("ineligible claim names the rule", func() {
		s.mockArbiter.EXPECT().
			Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(claim.NotEligible(s.donationID, s.orgID, matching.ReasonCapacity), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")

		var res resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("not_eligible:capacity", res.Reason)
	})

	s.Run("claim runs under the configured deadline", func() {
		s.mockArbiter.EXPECT().
			Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, d, o uuid.UUID, _ usecase.Principal) (claim.Result, error) {
				deadline, ok := ctx.Deadline()
				s.True(ok)
				s.WithinDuration(time.Now().Add(3*time.Second), deadline, time.Second)
				return claim.Accepted(d, o, claimedAt), nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	errorCases := []struct {
		name      string
		err       error
		wantCode  int
		retryable bool
	}{
		{name: "rate limited", err: errs.Mark(commands.ErrClaimRateLimited, errs.ErrRateLimited), wantCode: http.StatusTooManyRequests, retryable: true},
		{name: "timed out", err: errs.Mark(commands.ErrClaimTimeout, errs.ErrTimeout), wantCode: http.StatusGatewayTimeout},
		{name: "store unavailable", err: errs.Mark(commands.ErrDatabaseOperation, errs.ErrUnavailable), wantCode: http.StatusServiceUnavailable, retryable: true},
		{name: "not a member", err: errs.Mark(commands.ErrNotOrganizationMember, errs.ErrForbidden), wantCode: http.StatusForbidden},
		{name: "unknown donation", err: errs.Mark(commands.ErrDonationNotFound, errs.ErrNotFound), wantCode: http.StatusNotFound},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.mockArbiter.EXPECT().
				Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(claim.Result{}, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")

			s.Equal(tc.wantCode, rec.Code)
			var res struct {
				Error struct {
					Retryable bool `json:"retryable"`
				} `json:"error"`
			}
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
			s.Equal(tc.retryable, res.Error.Retryable)
		})
	}

	s.Run("forbidden response explains the reason", func() {
		s.mockArbiter.EXPECT().
			Claim(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(claim.Result{}, errs.Mark(commands.ErrNotOrganizationMember, errs.ErrForbidden))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "token")

		s.Contains(rec.Body.String(), "caller does not act for this organization")
	})

	s.Run("bad input never reaches the arbiter", func() {
		cases := []struct {
			url  string
			body any
		}{
			{url: "/donations/not-a-uuid/claim", body: body},
			{url: s.claimURL(), body: map[string]any{}},
			{url: s.claimURL(), body: map[string]any{"organization_id": "nope"}},
		}
		for _, c := range cases {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, c.url, c.body, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("missing token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, s.claimURL(), body, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *ClaimHandlerTestSuite) TestRelease() {
	url := "/donations/" + s.donationID.String() + "/release"

	s.Run("success: 204", func() {
		s.mockArbiter.EXPECT().Release(gomock.Any(), s.donationID, s.orgID, s.actor).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"organization_id": s.orgID}, "token")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("not the claimant: 403", func() {
		s.mockArbiter.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errs.Mark(commands.ErrNotOrganizationMember, errs.ErrForbidden))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"organization_id": s.orgID}, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

func (s *ClaimHandlerTestSuite) TestPickup() {
	url := "/donations/" + s.donationID.String() + "/pickup"
	delta := impact.Delta{Meals: 5, WeightKg: 2, CO2Kg: 6.6}

	s.Run("actual weight is passed through", func() {
		s.mockAccumulator.EXPECT().
			RecordPickup(gomock.Any(), gomock.Any(), s.actor).
			DoAndReturn(func(_ context.Context, req commands.RecordPickupRequest, _ usecase.Principal) (*commands.PickupResult, error) {
				s.Equal(s.donationID, req.DonationID)
				s.Equal(s.orgID, req.OrganizationID)
				s.Require().NotNil(req.ActualWeightKg)
				s.InDelta(2.0, *req.ActualWeightKg, 1e-9)
				return &commands.PickupResult{Delta: delta}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"organization_id": s.orgID, "actual_weight_kg": 2.0}, "token")

		var res resdto.PickupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(int64(5), res.Meals)
		s.False(res.Replayed)
	})

	s.Run("replay is flagged", func() {
		s.mockAccumulator.EXPECT().
			RecordPickup(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&commands.PickupResult{Delta: delta, Replayed: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"organization_id": s.orgID}, "token")

		var res resdto.PickupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Replayed)
	})

	s.Run("non positive weight is rejected at the edge", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"organization_id": s.orgID, "actual_weight_kg": 0}, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("weight above the maximum is rejected at the edge", func() {
		for _, kg := range []float64{impact.MaxWeightKg + 1, 1e300} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
				map[string]any{"organization_id": s.orgID, "actual_weight_kg": kg}, "token")
			s.Equal(http.StatusBadRequest, rec.Code, "weight %v", kg)
		}
	})
}
