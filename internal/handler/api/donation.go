package api

import (
	"context"
	"net/http"

	reqdto "save-serve/internal/handler/dto/request"
	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/handler/httperr"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DonationHandler struct {
	cmds    commands.DonationCommands
	q       queries.DonationQueries
	matches queries.MatchQueries
	cfg     config.MatchConfig
}

func NewDonationHandler(
	cmds commands.DonationCommands,
	q queries.DonationQueries,
	matches queries.MatchQueries,
	cfg config.MatchConfig,
) *DonationHandler {
	return &DonationHandler{cmds: cmds, q: q, matches: matches, cfg: cfg}
}

// @Summary Create donation
// @Description List surplus food. Nearby verified organizations that accept it are notified.
// @Tags donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDonationRequest true "Donation"
// @Success 201 {object} resdto.CreateDonationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req reqdto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), cmd, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Create donation failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.DonationID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load donation")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateDonation(view, result))
}

// @Summary Get donation
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {object} resdto.DonationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load donation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationView(view))
}

// @Summary Nearby donations
// @Description Claimable donations around a point, nearest first
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius_km query number false "Search radius in km"
// @Param food_types query string false "Comma separated food types"
// @Param min_portions query int false "Smallest portion count"
// @Param max_portions query int false "Largest portion count"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.NearbyDonationResponse
// @Failure 400 {object} httperr.Response
// @Router /donations [get]
func (h *DonationHandler) Nearby(c *gin.Context) {
	filter, ok := pointFilter(c)
	if !ok {
		return
	}
	views, err := h.q.Nearby(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Nearby search failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNearbyDonations(views))
}

// @Summary List donor donations
// @Description Newest first with keyset pagination
// @Tags donations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donor user ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.DonationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /donors/{id}/donations [get]
func (h *DonationHandler) ListByDonor(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	donorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	views, next, err := h.q.ListByDonor(c.Request.Context(), donorID, actor, cursor, queryLimit(c, defaultListLimit))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "List donations failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationList(views, next))
}

// @Summary Cancel donation
// @Description Withdraw an available donation
// @Tags donations
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /donations/{id}/cancel [post]
func (h *DonationHandler) Cancel(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, actor); err != nil {
		httperr.AbortWithUsecaseError(c, err, "Cancel failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Rank organizations for a donation
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.OrganizationMatchResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /donations/{id}/matches [get]
func (h *DonationHandler) Matches(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.RankTimeout)
	defer cancel()

	views, err := h.matches.OrganizationsForDonation(ctx, id, actor, queryLimit(c, 0))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Matching failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationMatches(views))
}

// @Summary Claim attempts
// @Description Audit log of claim attempts on a donation
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Success 200 {array} resdto.ClaimAttemptResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /donations/{id}/claims [get]
func (h *DonationHandler) ClaimAttempts(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ClaimAttempts(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load claim attempts")
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaimAttempts(views))
}

// @Summary Donor statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donor user ID"
// @Success 200 {object} resdto.DonationStatsResponse
// @Failure 403 {object} httperr.Response
// @Router /donors/{id}/stats [get]
func (h *DonationHandler) DonorStats(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	donorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.stats(c, &donorID, actor)
}

// @Summary Platform donation statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DonationStatsResponse
// @Router /stats/donations [get]
func (h *DonationHandler) PlatformStats(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	h.stats(c, nil, actor)
}

func (h *DonationHandler) stats(c *gin.Context, donorID *uuid.UUID, actor usecase.Principal) {
	view, err := h.q.Stats(c.Request.Context(), donorID, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationStats(view))
}
