package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/cache"
	"github.com/clipsmith/trendscout/internal/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	listCacheTTL     = time.Minute
)

// trendView is the JSON shape served to trend browsers.
type trendView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Platform    string `json:"platform"`
	SourceURL   string `json:"source_url"`
	Score       int    `json:"trend_score"`
	FormatType  string `json:"format_type"`
	HookStyle   string `json:"hook_style,omitempty"`
	AvgDuration *int64 `json:"avg_duration,omitempty"`
	AudioName   string `json:"audio_name,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTrendView(t *models.Trend) trendView {
	view := trendView{
		ID:         t.ID,
		Title:      t.Title,
		Platform:   t.Platform,
		SourceURL:  t.SourceURL,
		Score:      t.Score,
		FormatType: t.FormatType,
		HookStyle:  t.HookStyle,
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.Description.Valid {
		view.Description = t.Description.String
	}
	if t.AvgDuration.Valid {
		d := t.AvgDuration.Int64
		view.AvgDuration = &d
	}
	if t.AudioName.Valid {
		view.AudioName = t.AudioName.String
	}
	return view
}

// listTrends serves active trends ordered by score. Responses are cached
// in redis under a generation-versioned key that both pipelines bump.
func (r *Router) listTrends(c *gin.Context) {
	platform := c.Query("platform")
	if platform != "" && !models.KnownPlatform(platform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown platform %q", platform)})
		return
	}
	format := c.Query("format")
	limit := parseLimit(c.Query("limit"))

	ctx := c.Request.Context()
	key := r.listCacheKey(ctx, platform, format, limit)

	if key != "" {
		if cached, err := r.cache.Get(ctx, key); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	trends, err := r.trends.ListActive(ctx, platform, format, limit)
	if err != nil {
		r.logger.Error("Failed to list trends", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to list trends"})
		return
	}

	views := make([]trendView, 0, len(trends))
	for _, t := range trends {
		views = append(views, toTrendView(t))
	}
	body := gin.H{"trends": views, "count": len(views)}

	if key != "" {
		if encoded, err := json.Marshal(body); err == nil {
			if err := r.cache.Set(ctx, key, string(encoded), listCacheTTL); err != nil && err != cache.ErrCacheDisabled {
				r.logger.Warn("Failed to cache trend list", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, body)
}

// listCacheKey builds the generation-versioned cache key, or "" when the
// cache is unavailable.
func (r *Router) listCacheKey(ctx context.Context, platform, format string, limit int) string {
	version, err := r.cache.TrendListVersion(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("trends:list:%d:%s", version, cache.HashKey(platform, format, strconv.Itoa(limit)))
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
