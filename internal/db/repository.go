package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clipsmith/trendscout/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RawRecordRepository provides raw-record database operations
type RawRecordRepository struct {
	*Repository
}

// NewRawRecordRepository creates a new raw record repository
func NewRawRecordRepository(repo *Repository) *RawRecordRepository {
	return &RawRecordRepository{Repository: repo}
}

// GetUnprocessed retrieves up to limit unprocessed raw records, oldest first
func (r *RawRecordRepository) GetUnprocessed(ctx context.Context, limit int) ([]*models.RawRecord, error) {
	var records []*models.RawRecord
	if err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("scraped_at ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create creates a new raw record
func (r *RawRecordRepository) Create(ctx context.Context, record *models.RawRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// MarkStored marks a record processed with the trend it produced
func (r *RawRecordRepository) MarkStored(ctx context.Context, id, trendID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.RawRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed":          true,
			"processed_trend_id": sql.NullInt64{Int64: trendID, Valid: true},
			"error_message":      sql.NullString{},
		}).Error
}

// MarkFailed marks a record processed with a terminal error message
func (r *RawRecordRepository) MarkFailed(ctx context.Context, id int64, message string) error {
	return r.db.WithContext(ctx).
		Model(&models.RawRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processed":     true,
			"error_message": sql.NullString{String: message, Valid: true},
		}).Error
}

// TrendRepository provides trend database operations
type TrendRepository struct {
	*Repository
}

// NewTrendRepository creates a new trend repository
func NewTrendRepository(repo *Repository) *TrendRepository {
	return &TrendRepository{Repository: repo}
}

// GetByID retrieves a trend by ID
func (r *TrendRepository) GetByID(ctx context.Context, id int64) (*models.Trend, error) {
	var trend models.Trend
	if err := r.db.WithContext(ctx).First(&trend, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trend, nil
}

// GetBySourceURL retrieves a trend by its canonical source URL
func (r *TrendRepository) GetBySourceURL(ctx context.Context, url string) (*models.Trend, error) {
	var trend models.Trend
	if err := r.db.WithContext(ctx).
		Where("source_url = ?", url).
		First(&trend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trend, nil
}

// Create inserts a new trend. The unique index on source_url is the last
// line of defense against concurrent ingestion runs: a conflicting insert
// does nothing and is reported as inserted=false, not as an error.
func (r *TrendRepository) Create(ctx context.Context, trend *models.Trend) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_url"}},
			DoNothing: true,
		}).
		Create(trend)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListActive retrieves active trends ordered by score, optionally filtered
// by platform and format type
func (r *TrendRepository) ListActive(ctx context.Context, platform, format string, limit int) ([]*models.Trend, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if format != "" {
		query = query.Where("format_type = ?", format)
	}

	var trends []*models.Trend
	if err := query.
		Order("trend_score DESC").
		Limit(limit).
		Find(&trends).Error; err != nil {
		return nil, err
	}
	return trends, nil
}

// GetActive retrieves every active trend for the refresh pipeline
func (r *TrendRepository) GetActive(ctx context.Context) ([]*models.Trend, error) {
	var trends []*models.Trend
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&trends).Error; err != nil {
		return nil, err
	}
	return trends, nil
}

// UpdateScore persists a rescored trend using an optimistic check on
// updated_at; it returns false when another writer got there first.
func (r *TrendRepository) UpdateScore(ctx context.Context, trend *models.Trend, newScore int, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Trend{}).
		Where("id = ? AND updated_at = ?", trend.ID, trend.UpdatedAt).
		Updates(map[string]interface{}{
			"trend_score": newScore,
			"updated_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeactivateStale flips is_active off for trends older than the cutoff
// whose score fell below maxScore, returning how many were retired.
func (r *TrendRepository) DeactivateStale(ctx context.Context, createdBefore time.Time, maxScore int, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Trend{}).
		Where("is_active = ? AND created_at < ? AND trend_score < ?", true, createdBefore, maxScore).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// PatternRepository provides trend pattern database operations
type PatternRepository struct {
	*Repository
}

// NewPatternRepository creates a new pattern repository
func NewPatternRepository(repo *Repository) *PatternRepository {
	return &PatternRepository{Repository: repo}
}

// Create creates a trend pattern row
func (r *PatternRepository) Create(ctx context.Context, pattern *models.TrendPattern) error {
	return r.db.WithContext(ctx).Create(pattern).Error
}

// GetByTrendID retrieves the pattern for a trend
func (r *PatternRepository) GetByTrendID(ctx context.Context, trendID int64) (*models.TrendPattern, error) {
	var pattern models.TrendPattern
	if err := r.db.WithContext(ctx).
		Where("trend_id = ?", trendID).
		First(&pattern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pattern, nil
}

// HashtagRepository provides trend hashtag database operations
type HashtagRepository struct {
	*Repository
}

// NewHashtagRepository creates a new hashtag repository
func NewHashtagRepository(repo *Repository) *HashtagRepository {
	return &HashtagRepository{Repository: repo}
}

// CreateBatch inserts hashtag rows for a trend
func (r *HashtagRepository) CreateBatch(ctx context.Context, hashtags []models.TrendHashtag) error {
	if len(hashtags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&hashtags).Error
}

// MetricsRepository provides metrics snapshot database operations
type MetricsRepository struct {
	*Repository
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(repo *Repository) *MetricsRepository {
	return &MetricsRepository{Repository: repo}
}

// Create appends a metrics snapshot
func (r *MetricsRepository) Create(ctx context.Context, snapshot *models.MetricsSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// GetLatestByTrend retrieves the most recent snapshot for a trend
func (r *MetricsRepository) GetLatestByTrend(ctx context.Context, trendID int64) (*models.MetricsSnapshot, error) {
	var snapshot models.MetricsSnapshot
	if err := r.db.WithContext(ctx).
		Where("trend_id = ?", trendID).
		Order("collected_at DESC").
		First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
