package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/pipeline"
)

// runIngest triggers one ingestion batch and returns its summary. The
// scheduler treats per-record errors as informational; only a batch-level
// fault produces a non-200 status.
func (r *Router) runIngest(c *gin.Context) {
	summary, err := r.ingester.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrBatchInProgress) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		r.logger.Error("Ingestion batch failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// runRefresh triggers one refresh cycle and returns its summary.
func (r *Router) runRefresh(c *gin.Context) {
	summary, err := r.refresher.Run(c.Request.Context())
	if err != nil {
		r.logger.Error("Refresh cycle failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
