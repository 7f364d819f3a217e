package main

import (
	"time"

	"tawdifak-listings/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// configure all middleware for the router
func (a *App) setupMiddleware() {
	// CORS middleware
	a.Router.Use(setupCORS(a.Config.IsProduction()))

	// Other middleware
	a.Router.Use(middleware.MetricsMiddleware())
	a.Router.Use(middleware.SessionMiddleware(a.Config.Session.IdleTTL, a.Config.IsProduction()))
	a.Router.Use(middleware.LoggingMiddleware())
	a.Router.Use(middleware.SecureHeaders())
	a.Router.Use(middleware.ErrorHandler())
	a.Router.Use(middleware.RateLimitMiddleware(a.RateLimiter))
	a.Router.Use(gin.Recovery())
}

// configure CORS middleware
func setupCORS(production bool) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if production {
		corsConfig.AllowOrigins = []string{"https://tawdifak.com", "https://www.tawdifak.com"}
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.SessionHeader, middleware.OperatorHeader}
	// the session cookie must travel with cross-origin requests
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.SessionHeader}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}
