package middleware

import (
	"save-serve/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the donor and organization web apps call the API
// with bearer tokens. X-Request-ID is always exposed so clients can quote it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := append([]string{requestIDHeader}, cfg.ExposeHeaders...)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
