package api

import (
	"context"
	"net/http"

	reqdto "save-serve/internal/handler/dto/request"
	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/handler/httperr"
	"save-serve/internal/pkg/config"
	"save-serve/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// ClaimHandler covers the lifecycle after listing: claim, release and pickup.
type ClaimHandler struct {
	arbiter     commands.ClaimArbiter
	accumulator commands.ImpactAccumulator
	cfg         config.ClaimConfig
}

func NewClaimHandler(arbiter commands.ClaimArbiter, accumulator commands.ImpactAccumulator, cfg config.ClaimConfig) *ClaimHandler {
	return &ClaimHandler{arbiter: arbiter, accumulator: accumulator, cfg: cfg}
}

// @Summary Claim donation
// @Description Exactly one concurrent claim wins. Losing or refused claims still answer 200 with outcome "rejected" and a reason.
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body reqdto.ClaimRequest true "Claiming organization"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /donations/{id}/claim [post]
func (h *ClaimHandler) Claim(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.Timeout)
	defer cancel()

	result, err := h.arbiter.Claim(ctx, id, req.OrganizationID, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Claim failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaimResult(result))
}

// @Summary Release claim
// @Description Give a claimed donation back to the pool
// @Tags claims
// @Accept json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body reqdto.ClaimRequest true "Releasing organization"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /donations/{id}/release [post]
func (h *ClaimHandler) Release(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.arbiter.Release(c.Request.Context(), id, req.OrganizationID, actor); err != nil {
		httperr.AbortWithUsecaseError(c, err, "Release failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Record pickup
// @Description Complete a claimed donation and add its impact. Repeating the call returns the first result with replayed=true.
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donation ID"
// @Param request body reqdto.PickupRequest true "Pickup"
// @Success 200 {object} resdto.PickupResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /donations/{id}/pickup [post]
func (h *ClaimHandler) Pickup(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.PickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.accumulator.RecordPickup(c.Request.Context(), commands.RecordPickupRequest{
		DonationID:     id,
		OrganizationID: req.OrganizationID,
		ActualWeightKg: req.ActualWeightKg,
	}, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Pickup failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPickupResult(id.String(), result))
}
