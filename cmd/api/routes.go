package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tawdifak-listings/docs"
	"tawdifak-listings/internal/middleware"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupStaticRoutes configures documentation and metrics
func (a *App) setupStaticRoutes() {
	// Serve Swagger UI
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger.json")))

	// Serve swagger.json
	a.Router.StaticFile("/swagger.json", "./docs/swagger.json")

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", a.HealthHandler.Health)
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		listings := api.Group("/listings")
		listings.GET("/:type", a.ListingHandler.Show)
		listings.POST("/:type/more", a.ListingHandler.LoadMore)
		listings.POST("/:type/retry", a.ListingHandler.Retry)

		api.DELETE("/session/cache", a.ListingHandler.ClearSession)

		api.GET("/home", a.HomeHandler.Feed)

		operator := api.Group("", middleware.OperatorOnly(a.Config.Operator.Token))
		operator.DELETE("/home/cache", a.HomeHandler.ClearCache)
	}
}
