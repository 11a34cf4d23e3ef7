//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"save-serve/internal/domain/user"
	"save-serve/internal/handler/api"
	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/pkg/config"
	"save-serve/internal/pkg/errs"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/queries"
	"save-serve/tests/common/builder"
	"save-serve/tests/common/httptest"
	"save-serve/tests/common/testutil"
	commandsmock "save-serve/tests/mock/commands"
	queriesmock "save-serve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DonationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDonationCommands
	mockQueries  *queriesmock.MockDonationQueries
	mockMatches  *queriesmock.MockMatchQueries
	actor        usecase.Principal
}

func TestDonationHandlerSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerTestSuite))
}

func (s *DonationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDonationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDonationQueries(s.mockCtrl)
	s.mockMatches = queriesmock.NewMockMatchQueries(s.mockCtrl)
	s.actor = usecase.Principal{UserID: uuid.New(), Role: user.RoleDonor}

	h := api.NewDonationHandler(s.mockCommands, s.mockQueries, s.mockMatches, config.MatchConfig{RankTimeout: 2 * time.Second})
	auth := withPrincipal(s.actor)
	s.router.POST("/donations", auth, h.Create)
	s.router.GET("/donations", auth, h.Nearby)
	s.router.GET("/donations/:id", auth, h.Get)
	s.router.POST("/donations/:id/cancel", auth, h.Cancel)
	s.router.GET("/donations/:id/matches", auth, h.Matches)
	s.router.GET("/donors/:id/donations", auth, h.ListByDonor)
	s.router.GET("/donors/:id/stats", auth, h.DonorStats)
}

func (s *DonationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func donationView(id uuid.UUID) *queries.DonationView {
	claimant := uuid.New()
	claimedAt := builder.BaseTime.Add(90 * time.Minute)
	return &queries.DonationView{
		ID:          id,
		DonorID:     uuid.New(),
		Title:       "Surplus lunch trays",
		FoodTypes:   []string{"cooked"},
		Portions:    20,
		WeightKg:    8,
		Latitude:    -1.2921,
		Longitude:   36.8219,
		Address:     "Kenyatta Ave, Nairobi",
		PickupStart: builder.BaseTime.Add(time.Hour),
		PickupEnd:   builder.BaseTime.Add(5 * time.Hour),
		Status:      "claimed",
		ClaimedBy:   &claimant,
		ClaimedAt:   &claimedAt,
		CreatedAt:   builder.BaseTime,
		UpdatedAt:   claimedAt,
	}
}

func (s *DonationHandlerTestSuite) TestCreate() {
	reqBody := builder.NewDonationBuilder().BuildCreateRequestDTO()
	id := uuid.New()

	validation := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing title", mutate: testutil.Field("title", nil)},
		{name: "title too long", mutate: testutil.Field("title", strings.Repeat("a", 201))},
		{name: "empty food types", mutate: testutil.Field("food_types", []string{})},
		{name: "zero portions", mutate: testutil.Field("portions", 0)},
		{name: "negative weight", mutate: testutil.Field("weight_kg", -2)},
		{name: "portions beyond the maximum", mutate: testutil.Field("portions", 1<<31)},
		{name: "weight beyond the maximum", mutate: testutil.Field("weight_kg", 1e300)},
		{name: "latitude out of range", mutate: testutil.Field("latitude", 120)},
		{name: "missing address", mutate: testutil.Field("address", nil)},
		{name: "too many images", mutate: testutil.Field("image_file_ids", []string{"1", "2", "3", "4", "5", "6"})},
	}

	s.Run("success: 201 with the stored donation", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actor).
			DoAndReturn(func(_ context.Context, cmd commands.CreateDonationRequest, _ usecase.Principal) (*commands.CreateDonationResult, error) {
				s.Equal(reqBody.Title, cmd.Title)
				s.Equal(reqBody.Portions, cmd.Portions)
				s.True(reqBody.PickupStart.Equal(cmd.PickupStart))
				return &commands.CreateDonationResult{DonationID: id, Notified: 3}, nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(donationView(id), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/donations", reqBody, "token")

		var res resdto.CreateDonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(3, res.Notified)
		s.Require().NotNil(res.Donation)
		s.Equal(id.String(), res.Donation.ID)
		s.Equal(builder.BaseTime.Add(time.Hour).Unix(), res.Donation.PickupStart)
		s.Require().NotNil(res.Donation.ClaimedBy)
		s.Require().NotNil(res.Donation.ClaimedAt)
	})

	for _, tc := range validation {
		s.Run("validation: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/donations",
				testutil.DtoMap(s.T(), reqBody, tc.mutate), "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		})
	}

	s.Run("domain validation from the command: 400 with reason", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("pickup window must start in the future"), errs.ErrValidation))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/donations", reqBody, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		s.Contains(rec.Body.String(), "pickup window must start in the future")
	})
}

func (s *DonationHandlerTestSuite) TestGet() {
	id := uuid.New()

	s.Run("found", func() {
		view := donationView(id)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations/"+id.String(), nil, "token")

		var res resdto.DonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		claimedBy := view.ClaimedBy.String()
		claimedAt := view.ClaimedAt.Unix()
		want := resdto.DonationResponse{
			ID:           id.String(),
			DonorID:      view.DonorID.String(),
			Title:        view.Title,
			FoodTypes:    []string{"cooked"},
			Portions:     20,
			WeightKg:     8,
			Latitude:     -1.2921,
			Longitude:    36.8219,
			Address:      view.Address,
			PickupStart:  view.PickupStart.Unix(),
			PickupEnd:    view.PickupEnd.Unix(),
			Status:       "claimed",
			ClaimedBy:    &claimedBy,
			ClaimedAt:    &claimedAt,
			ImageFileIDs: nil,
			CreatedAt:    view.CreatedAt.Unix(),
			UpdatedAt:    view.UpdatedAt.Unix(),
		}
		if diff := cmp.Diff(want, res, cmpopts.EquateEmpty()); diff != "" {
			s.Failf("response mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("missing: 404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.Mark(queries.ErrDonationNotFound, errs.ErrNotFound))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations/"+id.String(), nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

func (s *DonationHandlerTestSuite) TestNearby() {
	s.Run("query parameters become the filter", func() {
		s.mockQueries.EXPECT().Nearby(gomock.Any(), queries.PointFilter{
			Latitude: -1.29, Longitude: 36.82, RadiusKm: 5, FoodTypes: []string{"cooked", "bakery"}, Limit: 10,
		}).Return([]*queries.NearbyDonationView{{DonationView: *donationView(uuid.New()), DistanceKm: 1.5}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/donations?lat=-1.29&lng=36.82&radius_km=5&food_types=cooked,bakery&limit=10", nil, "token")

		var res []resdto.NearbyDonationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.InDelta(1.5, res[0].DistanceKm, 1e-9)
	})

	s.Run("missing coordinates: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations?lat=1", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("non numeric radius: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations?lat=1&lng=2&radius_km=far", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("portion bounds become the filter", func() {
		s.mockQueries.EXPECT().Nearby(gomock.Any(), queries.PointFilter{
			Latitude: 1, Longitude: 2, MinPortions: 10, MaxPortions: 50,
		}).Return([]*queries.NearbyDonationView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/donations?lat=1&lng=2&min_portions=10&max_portions=50", nil, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("negative portion bound: 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations?lat=1&lng=2&min_portions=-1", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *DonationHandlerTestSuite) TestCancel() {
	id := uuid.New()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actor).Return(nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/donations/"+id.String()+"/cancel", nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("terminal donation: 409", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actor).
			Return(errs.Mark(errs.New("invalid status transition"), errs.ErrConflict))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/donations/"+id.String()+"/cancel", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Conflict")
	})
}

func (s *DonationHandlerTestSuite) TestMatches() {
	id := uuid.New()

	s.Run("ranked organizations", func() {
		s.mockMatches.EXPECT().OrganizationsForDonation(gomock.Any(), id, s.actor, 5).
			Return([]*queries.OrganizationMatchView{
				{OrganizationID: uuid.New(), Name: "A", DistanceKm: 1, Score: 0.9},
				{OrganizationID: uuid.New(), Name: "B", DistanceKm: 4, Score: 0.5},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations/"+id.String()+"/matches?limit=5", nil, "token")

		var res []resdto.OrganizationMatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res, 2)
	})

	s.Run("ranking deadline: 504", func() {
		s.mockMatches.EXPECT().OrganizationsForDonation(gomock.Any(), id, s.actor, 0).
			DoAndReturn(func(ctx context.Context, _ uuid.UUID, _ usecase.Principal, _ int) ([]*queries.OrganizationMatchView, error) {
				_, ok := ctx.Deadline()
				s.True(ok)
				return nil, errs.Mark(queries.ErrRankTimeout, errs.ErrTimeout)
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donations/"+id.String()+"/matches", nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusGatewayTimeout, "Request timed out")
	})
}

func (s *DonationHandlerTestSuite) TestListByDonor() {
	s.Run("cursor round trip", func() {
		views := []*queries.DonationView{donationView(uuid.New()), donationView(uuid.New())}
		s.mockQueries.EXPECT().
			ListByDonor(gomock.Any(), s.actor.UserID, s.actor, &queries.Cursor{After: "abc"}, 2).
			Return(views, &queries.Cursor{After: "next"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/donors/"+s.actor.UserID.String()+"/donations?limit=2&after=abc", nil, "token")

		var res resdto.DonationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res.Items, 2)
		s.Equal("next", res.NextCursor)
	})

	s.Run("default limit", func() {
		s.mockQueries.EXPECT().
			ListByDonor(gomock.Any(), s.actor.UserID, s.actor, nil, 20).
			Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/donors/"+s.actor.UserID.String()+"/donations", nil, "token")

		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *DonationHandlerTestSuite) TestDonorStats() {
	other := uuid.New()
	s.mockQueries.EXPECT().Stats(gomock.Any(), &other, s.actor).
		Return(nil, errs.Mark(queries.ErrDonorAccess, errs.ErrForbidden))

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/donors/"+other.String()+"/stats", nil, "token")

	httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
}
