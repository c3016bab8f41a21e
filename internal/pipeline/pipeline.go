// Package pipeline holds the two batch jobs of the system: ingestion of
// raw scraped records into normalized trends, and periodic refresh of
// trend scores. Both are stateless and safe to re-run; storage access
// goes through the small store interfaces below so the jobs can be
// exercised without a database.
package pipeline

import (
	"context"
	"time"

	"github.com/clipsmith/trendscout/internal/models"
)

// RawStore is the raw-record access the ingestion pipeline needs.
type RawStore interface {
	GetUnprocessed(ctx context.Context, limit int) ([]*models.RawRecord, error)
	MarkStored(ctx context.Context, id, trendID int64) error
	MarkFailed(ctx context.Context, id int64, message string) error
}

// TrendStore is the trend access shared by both pipelines.
type TrendStore interface {
	GetBySourceURL(ctx context.Context, url string) (*models.Trend, error)
	Create(ctx context.Context, trend *models.Trend) (bool, error)
	GetActive(ctx context.Context) ([]*models.Trend, error)
	UpdateScore(ctx context.Context, trend *models.Trend, newScore int, now time.Time) (bool, error)
	DeactivateStale(ctx context.Context, createdBefore time.Time, maxScore int, now time.Time) (int64, error)
}

// PatternStore persists the per-trend structural metadata.
type PatternStore interface {
	Create(ctx context.Context, pattern *models.TrendPattern) error
}

// HashtagStore persists extracted hashtags.
type HashtagStore interface {
	CreateBatch(ctx context.Context, hashtags []models.TrendHashtag) error
}

// MetricsStore persists and reads the engagement time-series.
type MetricsStore interface {
	Create(ctx context.Context, snapshot *models.MetricsSnapshot) error
	GetLatestByTrend(ctx context.Context, trendID int64) (*models.MetricsSnapshot, error)
}

// Coordinator serializes batch runs and invalidates cached list
// responses. The redis cache implements it; a nil coordinator is a no-op.
type Coordinator interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name string) error
	InvalidateTrendLists(ctx context.Context) error
}

// IngestSummary is the structured result of one ingestion run.
type IngestSummary struct {
	Success    bool  `json:"success"`
	Processed  int   `json:"processed"`
	Duplicates int   `json:"duplicates"`
	Errors     int   `json:"errors"`
	Total      int   `json:"total"`
	DurationMS int64 `json:"duration_ms"`
}

// RefreshSummary is the structured result of one refresh run.
type RefreshSummary struct {
	Success     bool  `json:"success"`
	TotalTrends int   `json:"totalTrends"`
	Updated     int   `json:"updated"`
	Deactivated int64 `json:"deactivated"`
	DurationMS  int64 `json:"duration_ms"`
}
