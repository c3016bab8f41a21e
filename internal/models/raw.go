package models

import (
	"database/sql"
	"time"
)

// RawRecord is an unprocessed scrape result handed over by the collectors.
// Records are kept forever as an audit trail; the ingestion pipeline flips
// Processed exactly once and records the outcome.
type RawRecord struct {
	ID               int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Source           string         `gorm:"type:varchar(64);not null;column:source"`
	Payload          string         `gorm:"type:text;not null;column:payload"`
	Processed        bool           `gorm:"not null;default:false;column:processed"`
	ProcessedTrendID sql.NullInt64  `gorm:"column:processed_trend_id"`
	ErrorMessage     sql.NullString `gorm:"type:text;column:error_message"`
	ScrapedAt        time.Time      `gorm:"not null;column:scraped_at"`

	// Relationships
	ProcessedTrend *Trend `gorm:"foreignKey:ProcessedTrendID;references:ID"`
}

// TableName specifies the table name for RawRecord
func (RawRecord) TableName() string {
	return "trend_raw_records"
}
