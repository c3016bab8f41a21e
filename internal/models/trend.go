package models

import (
	"database/sql"
	"time"
)

// Platform labels recognized by the classifier and scorer.
const (
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
)

// KnownPlatform reports whether p is one of the supported platform labels.
func KnownPlatform(p string) bool {
	switch p {
	case PlatformTikTok, PlatformInstagram, PlatformYouTube, PlatformTwitter, PlatformFacebook:
		return true
	}
	return false
}

// Trend is a normalized, deduplicated piece of trending content.
// SourceURL is the dedup key. Score is a cached derived value: it is set at
// ingestion and recomputed only by the refresh pipeline from the latest
// metrics snapshot.
type Trend struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string         `gorm:"type:varchar(512);not null;column:title"`
	Description sql.NullString `gorm:"type:text;column:description"`
	Platform    string         `gorm:"type:varchar(16);not null;column:platform"`
	SourceURL   string         `gorm:"type:varchar(1024);not null;uniqueIndex:trends_source_url_ux;column:source_url"`
	Score       int            `gorm:"not null;default:0;column:trend_score"`
	FormatType  string         `gorm:"type:varchar(32);not null;column:format_type"`
	HookStyle   string         `gorm:"type:varchar(64);column:hook_style"`
	AvgDuration sql.NullInt64  `gorm:"column:avg_duration"`
	DurationMin sql.NullInt64  `gorm:"column:duration_min"`
	DurationMax sql.NullInt64  `gorm:"column:duration_max"`
	AudioName   sql.NullString `gorm:"type:varchar(255);column:audio_name"`
	IsActive    bool           `gorm:"not null;default:true;column:is_active"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time      `gorm:"not null;column:updated_at"`

	// Relationships
	Pattern  *TrendPattern     `gorm:"foreignKey:TrendID;references:ID"`
	Hashtags []TrendHashtag    `gorm:"foreignKey:TrendID;references:ID"`
	Metrics  []MetricsSnapshot `gorm:"foreignKey:TrendID;references:ID"`
}

// TableName specifies the table name for Trend
func (Trend) TableName() string {
	return "trends"
}

// TrendPattern holds the structural metadata derived at ingestion time.
// One row per trend, immutable after insert.
type TrendPattern struct {
	ID               int64  `gorm:"primaryKey;autoIncrement;column:id"`
	TrendID          int64  `gorm:"not null;uniqueIndex:trend_patterns_trend_ux;column:trend_id"`
	IntroType        string `gorm:"type:varchar(64);column:intro_type"`
	PacingPattern    string `gorm:"type:varchar(64);column:pacing_pattern"`
	EditingStyle     string `gorm:"type:varchar(64);column:editing_style"`
	CaptionStructure string `gorm:"type:varchar(128);column:caption_structure"`
}

// TableName specifies the table name for TrendPattern
func (TrendPattern) TableName() string {
	return "trend_patterns"
}

// TrendHashtag is one extracted hashtag with its relevance score.
type TrendHashtag struct {
	ID        int64   `gorm:"primaryKey;autoIncrement;column:id"`
	TrendID   int64   `gorm:"not null;index:trend_hashtags_trend_ix;column:trend_id"`
	Tag       string  `gorm:"type:varchar(128);not null;column:tag"`
	Relevance float64 `gorm:"type:decimal(5,2);not null;default:0;column:relevance"`
}

// TableName specifies the table name for TrendHashtag
func (TrendHashtag) TableName() string {
	return "trend_hashtags"
}

// MetricsSnapshot is one point of the engagement time-series for a trend.
// Rows are append-only; the refresh pipeline reads the latest per trend.
type MetricsSnapshot struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id"`
	TrendID        int64           `gorm:"not null;index:trend_metrics_trend_ix;column:trend_id"`
	Views          int64           `gorm:"not null;default:0;column:views"`
	Likes          int64           `gorm:"not null;default:0;column:likes"`
	Shares         int64           `gorm:"not null;default:0;column:shares"`
	Comments       int64           `gorm:"not null;default:0;column:comments"`
	EngagementRate sql.NullFloat64 `gorm:"type:decimal(8,3);column:engagement_rate"`
	CollectedAt    time.Time       `gorm:"not null;column:collected_at"`
}

// TableName specifies the table name for MetricsSnapshot
func (MetricsSnapshot) TableName() string {
	return "trend_metrics"
}
