package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"tawdifak-listings/internal/handlers"
	"tawdifak-listings/internal/middleware"
	"tawdifak-listings/internal/services"
	"tawdifak-listings/internal/validators"
	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/config"
	"tawdifak-listings/pkg/dataapi"
	"tawdifak-listings/pkg/database"
	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const listingsBasePath = "/api/listings"

// App represents the application structure
type App struct {
	Config         *config.Config
	Router         *gin.Engine
	ListingHandler *handlers.ListingHandler
	HomeHandler    *handlers.HomeHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    *middleware.RateLimiter
	Server         *http.Server

	sources  services.Sources
	redis    *redis.Client
	mongo    database.Database
	sessions *services.SessionManager
	home     *services.HomeService

	// background stops the sweepers started by the app.
	background context.Context
	stop       context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}
	app.background, app.stop = context.WithCancel(context.Background())

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeDataSource()
	app.initializeSessionStore()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// connect the listing collaborator: MongoDB directly or the remote data API
func (a *App) initializeDataSource() {
	switch a.Config.Data.Source {
	case "http":
		client := dataapi.NewClient(a.Config.Data.APIURL, a.Config.Data.Timeout, a.Config.Data.Retries)
		a.sources = services.APISources(client)
		logger.GlobalLogger.Printf("Listing data served by %s", a.Config.Data.APIURL)
	default:
		if err := database.InitDB(a.Config); err != nil {
			logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
			os.Exit(1)
		}
		a.mongo = database.NewMongoDatabase(database.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.mongo.CreateListingIndexes(ctx); err != nil {
			// the service still works without indexes, only slower
			logger.GlobalLogger.Warnf("Failed to create listing indexes: %v", err)
		}
		a.sources = services.MongoSources(a.mongo)
	}
}

// pick where session caches live
func (a *App) initializeSessionStore() {
	stores := services.MemoryStores()
	if a.Config.Cache.Backend == "redis" {
		client, err := cache.NewRedisClient(context.Background(), cache.RedisConfigFrom(a.Config))
		if err != nil {
			logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
			os.Exit(1)
		}
		a.redis = client
		stores = services.RedisStores(client, a.Config.Session.IdleTTL)
	}
	a.sessions = services.NewSessionManager(stores, a.Config.Session.IdleTTL)
	go a.sessions.Run(a.background, a.Config.Session.SweepInterval)
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(middleware.PerMinute(a.Config.RateLimit.PerMinute), a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(a.background, time.Minute, 3*time.Minute)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	registry, err := services.NewRegistry(a.sources, a.Config.Listings, listingFetchTimeout(a.Config))
	if err != nil {
		logger.GlobalLogger.Errorf("Invalid listing configuration: %v", err)
		os.Exit(1)
	}

	// validators
	queryValidator := validators.NewQueryValidator()

	// services
	listingService := services.NewListingService(registry, a.sessions, queryValidator, listingsBasePath)
	a.home = services.NewHomeService(a.sources, a.Config.Cache.HomeTTL)
	go every(a.background, a.Config.Session.SweepInterval, func() { a.home.Sweep() })

	// handlers
	a.ListingHandler = handlers.NewListingHandler(listingService)
	a.HomeHandler = handlers.NewHomeHandler(a.home)

	checks := map[string]handlers.Pinger{}
	if a.mongo != nil {
		checks["mongodb"] = a.mongo
	}
	if a.redis != nil {
		client := a.redis
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	a.HealthHandler = handlers.NewHealthHandler(checks)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	a.stop()
	database.CloseDB()
	cache.CloseRedis(a.redis)
}

// listingFetchTimeout bounds one shared fetch; the data API gets room for its retries.
func listingFetchTimeout(cfg *config.Config) time.Duration {
	if cfg.Data.Source == "http" {
		return cfg.Data.Timeout * time.Duration(cfg.Data.Retries+1)
	}
	return 0
}

// every runs fn on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
