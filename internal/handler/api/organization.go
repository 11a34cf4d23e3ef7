package api

import (
	"context"
	"net/http"

	reqdto "save-serve/internal/handler/dto/request"
	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/handler/httperr"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrganizationHandler struct {
	cmds    commands.OrganizationCommands
	q       queries.OrganizationQueries
	matches queries.MatchQueries
	cfg     config.MatchConfig
}

func NewOrganizationHandler(
	cmds commands.OrganizationCommands,
	q queries.OrganizationQueries,
	matches queries.MatchQueries,
	cfg config.MatchConfig,
) *OrganizationHandler {
	return &OrganizationHandler{cmds: cmds, q: q, matches: matches, cfg: cfg}
}

// @Summary Register organization
// @Description Registers a receiving organization. It stays pending until an admin verifies it.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterOrganizationRequest true "Organization"
// @Success 201 {object} resdto.OrganizationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /organizations [post]
func (h *OrganizationHandler) Register(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req reqdto.RegisterOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Register(c.Request.Context(), cmd, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Registration failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load organization")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrganizationView(view))
}

// @Summary Get organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 404 {object} httperr.Response
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load organization")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationView(view))
}

// @Summary Get the caller's organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 404 {object} httperr.Response
// @Router /organizations/mine [get]
func (h *OrganizationHandler) Mine(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.q.GetByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load organization")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationView(view))
}

// @Summary Update organization profile
// @Description Partial update of capacity, service radius, location, accepted food types and hours
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body reqdto.UpdateOrganizationRequest true "Changed fields"
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /organizations/{id} [patch]
func (h *OrganizationHandler) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateProfile(c.Request.Context(), id, cmd, actor); err != nil {
		httperr.AbortWithUsecaseError(c, err, "Update failed")
		return
	}
	h.respond(c, id)
}

// @Summary Nearby organizations
// @Description Verified organizations around a point, nearest first
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius_km query number false "Search radius in km"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.NearbyOrganizationResponse
// @Failure 400 {object} httperr.Response
// @Router /organizations [get]
func (h *OrganizationHandler) Nearby(c *gin.Context) {
	filter, ok := pointFilter(c)
	if !ok {
		return
	}
	views, err := h.q.Nearby(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Nearby search failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromNearbyOrganizations(views))
}

// @Summary Pending organizations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} resdto.OrganizationResponse
// @Failure 403 {object} httperr.Response
// @Router /organizations/pending [get]
func (h *OrganizationHandler) ListPending(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	views, err := h.q.ListPending(c.Request.Context(), actor, queryLimit(c, defaultListLimit))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "List failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationList(views))
}

// @Summary Set verification status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body reqdto.SetVerificationRequest true "Status"
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /organizations/{id}/verification [patch]
func (h *OrganizationHandler) SetVerification(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetVerification(c.Request.Context(), id, req.Status, actor); err != nil {
		httperr.AbortWithUsecaseError(c, err, "Verification update failed")
		return
	}
	h.respond(c, id)
}

// @Summary Resubmit verification documents
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param request body reqdto.ResubmitRequest true "Documents"
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /organizations/{id}/resubmit [post]
func (h *OrganizationHandler) Resubmit(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Resubmit(c.Request.Context(), id, req.VerificationDocFileIDs, actor); err != nil {
		httperr.AbortWithUsecaseError(c, err, "Resubmit failed")
		return
	}
	h.respond(c, id)
}

func (h *OrganizationHandler) respond(c *gin.Context, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load organization")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationView(view))
}

// @Summary Rank donations for an organization
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.DonationMatchResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /organizations/{id}/matches [get]
func (h *OrganizationHandler) Matches(c *gin.Context) {
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

	views, err := h.matches.DonationsForOrganization(ctx, id, actor, queryLimit(c, 0))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Matching failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationMatches(views))
}

// @Summary Organization statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OrganizationStatsResponse
// @Failure 403 {object} httperr.Response
// @Router /organizations/stats [get]
func (h *OrganizationHandler) Stats(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.q.Stats(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationStats(view))
}
