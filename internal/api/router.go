package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/cache"
	"github.com/clipsmith/trendscout/internal/db"
	"github.com/clipsmith/trendscout/internal/models"
	"github.com/clipsmith/trendscout/internal/pipeline"
	"github.com/clipsmith/trendscout/pkg/logging"
)

// TrendLister is the read access the trend-browsing endpoint needs.
type TrendLister interface {
	ListActive(ctx context.Context, platform, format string, limit int) ([]*models.Trend, error)
}

// Router sets up API routes
type Router struct {
	db        *db.DB
	cache     *cache.Cache
	trends    TrendLister
	ingester  *pipeline.Ingester
	refresher *pipeline.Refresher
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, trends TrendLister, ingester *pipeline.Ingester, refresher *pipeline.Refresher) *Router {
	return &Router{
		db:        database,
		cache:     redisCache,
		trends:    trends,
		ingester:  ingester,
		refresher: refresher,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Batch triggers for the external scheduler
	engine.POST("/admin/ingest", r.runIngest)
	engine.POST("/admin/refresh", r.runRefresh)

	// Trend browsing for the UI and content-generation consumers
	engine.GET("/trends", r.listTrends)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "ok"}

	if r.db != nil {
		if err := r.db.Health(c.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}
	if r.cache != nil {
		checks["redis"] = "ok"
		if err := r.cache.Health(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
		}
	}

	c.JSON(status, gin.H{
		"status":  http.StatusText(status),
		"service": "trendscout-api",
		"checks":  checks,
	})
}
