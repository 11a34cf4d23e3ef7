package api

import (
	"net/http"
	"strconv"
	"strings"

	"save-serve/internal/handler/httperr"
	"save-serve/internal/handler/middleware"
	"save-serve/internal/usecase"
	"save-serve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultListLimit = 20

func principal(c *gin.Context) (usecase.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
	}
	return p, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryLimit(c *gin.Context, fallback int) int {
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			return iv
		}
	}
	return fallback
}

// pointFilter reads lat, lng, radius_km, food_types, min_portions,
// max_portions and limit. lat and lng are required; a missing radius uses
// the server default.
func pointFilter(c *gin.Context) (f queries.PointFilter, ok bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "lat and lng are required numbers", nil)
		return f, false
	}
	f.Latitude, f.Longitude = lat, lng
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "radius_km must be a number", nil)
			return f, false
		}
		f.RadiusKm = r
	}
	if v := c.Query("food_types"); v != "" {
		f.FoodTypes = strings.Split(v, ",")
	}
	if f.MinPortions, ok = queryCount(c, "min_portions"); !ok {
		return f, false
	}
	if f.MaxPortions, ok = queryCount(c, "max_portions"); !ok {
		return f, false
	}
	f.Limit = queryLimit(c, 0)
	return f, true
}

// queryCount reads an optional non-negative integer; absent is zero.
func queryCount(c *gin.Context, name string) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, err, name+" must be a non-negative integer", nil)
		return 0, false
	}
	return n, true
}
