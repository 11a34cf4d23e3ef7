package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"save-serve/internal/domain/user"
	"save-serve/internal/handler/api"
	"save-serve/internal/handler/middleware"
	"save-serve/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Donation     *api.DonationHandler
	Organization *api.OrganizationHandler
	Claim        *api.ClaimHandler
	Impact       *api.ImpactHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// request id first so a recovered panic can be correlated
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/impact", Handler: h.Impact.Platform},
		})

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())

		donations := authed.Group("/donations")
		{
			addRoutes(donations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Donation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Donation.Nearby},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Donation.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Donation.Cancel},
				{Method: http.MethodGet, Path: "/:id/matches", Handler: h.Donation.Matches},
				{Method: http.MethodGet, Path: "/:id/claims", Handler: h.Donation.ClaimAttempts},
				{Method: http.MethodPost, Path: "/:id/claim", Handler: h.Claim.Claim},
				{Method: http.MethodPost, Path: "/:id/release", Handler: h.Claim.Release},
				{Method: http.MethodPost, Path: "/:id/pickup", Handler: h.Claim.Pickup},
			})
		}

		donors := authed.Group("/donors")
		{
			addRoutes(donors, []route{
				{Method: http.MethodGet, Path: "/:id/donations", Handler: h.Donation.ListByDonor},
				{Method: http.MethodGet, Path: "/:id/stats", Handler: h.Donation.DonorStats},
				{Method: http.MethodGet, Path: "/:id/impact", Handler: h.Impact.Donor},
			})
		}

		organizations := authed.Group("/organizations")
		{
			addRoutes(organizations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Organization.Register},
				{Method: http.MethodGet, Path: "", Handler: h.Organization.Nearby},
				{Method: http.MethodGet, Path: "/pending", Handler: h.Organization.ListPending, Mw: adminOnly},
				{Method: http.MethodGet, Path: "/stats", Handler: h.Organization.Stats, Mw: adminOnly},
				{Method: http.MethodGet, Path: "/mine", Handler: h.Organization.Mine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Organization.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Organization.Update},
				{Method: http.MethodPatch, Path: "/:id/verification", Handler: h.Organization.SetVerification, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/resubmit", Handler: h.Organization.Resubmit},
				{Method: http.MethodGet, Path: "/:id/matches", Handler: h.Organization.Matches},
				{Method: http.MethodGet, Path: "/:id/impact", Handler: h.Impact.Organization},
			})
		}

		addRoutes(authed, []route{
			{Method: http.MethodGet, Path: "/stats/donations", Handler: h.Donation.PlatformStats},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
