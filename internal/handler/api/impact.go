package api

import (
	"net/http"

	resdto "save-serve/internal/handler/dto/response"
	"save-serve/internal/handler/httperr"
	"save-serve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ImpactHandler struct {
	q queries.ImpactQueries
}

func NewImpactHandler(q queries.ImpactQueries) *ImpactHandler {
	return &ImpactHandler{q: q}
}

// @Summary Platform impact
// @Description Pickups, meals, kilograms and CO2 saved across the platform
// @Tags impact
// @Produce json
// @Success 200 {object} resdto.ImpactResponse
// @Router /impact [get]
func (h *ImpactHandler) Platform(c *gin.Context) {
	view, err := h.q.Platform(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load impact")
		return
	}
	c.JSON(http.StatusOK, resdto.FromImpactView(view))
}

// @Summary Organization impact
// @Tags impact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} resdto.ImpactResponse
// @Failure 404 {object} httperr.Response
// @Router /organizations/{id}/impact [get]
func (h *ImpactHandler) Organization(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Organization(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load impact")
		return
	}
	c.JSON(http.StatusOK, resdto.FromImpactView(view))
}

// @Summary Donor impact
// @Tags impact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Donor user ID"
// @Success 200 {object} resdto.ImpactResponse
// @Failure 403 {object} httperr.Response
// @Router /donors/{id}/impact [get]
func (h *ImpactHandler) Donor(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Donor(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load impact")
		return
	}
	c.JSON(http.StatusOK, resdto.FromImpactView(view))
}
