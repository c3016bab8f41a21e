package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/classify"
	"github.com/clipsmith/trendscout/internal/models"
	"github.com/clipsmith/trendscout/internal/score"
	"github.com/clipsmith/trendscout/pkg/config"
	"github.com/clipsmith/trendscout/pkg/logging"
	"github.com/clipsmith/trendscout/pkg/telemetry"
)

const ingestLockName = "ingest"

// ErrBatchInProgress is returned when another ingestion run holds the
// batch lock.
var ErrBatchInProgress = errors.New("ingestion batch already in progress")

// Ingester consumes unprocessed raw records and turns them into
// normalized trends. Every record reaches a terminal state in one pass:
// stored, duplicate, or error.
type Ingester struct {
	raws     RawStore
	trends   TrendStore
	patterns PatternStore
	hashtags HashtagStore
	metrics  MetricsStore
	coord    Coordinator

	batchSize   int
	maxHashtags int
	lockTTL     time.Duration

	logger *zap.Logger
	now    func() time.Time
}

// NewIngester creates a new ingestion pipeline
func NewIngester(
	raws RawStore,
	trends TrendStore,
	patterns PatternStore,
	hashtags HashtagStore,
	metrics MetricsStore,
	coord Coordinator,
	cfg *config.PipelineConfig,
) *Ingester {
	return &Ingester{
		raws:        raws,
		trends:      trends,
		patterns:    patterns,
		hashtags:    hashtags,
		metrics:     metrics,
		coord:       coord,
		batchSize:   cfg.IngestBatchSize,
		maxHashtags: cfg.MaxHashtags,
		lockTTL:     time.Duration(cfg.LockTTLSeconds) * time.Second,
		logger:      logging.GetLogger().With(zap.String("component", "ingest-pipeline")),
		now:         time.Now,
	}
}

type outcome int

const (
	outcomeStored outcome = iota
	outcomeDuplicate
	outcomeError
)

// Run processes one batch of unprocessed raw records. A single record's
// failure never aborts the batch; only being unable to fetch the batch at
// all is fatal.
func (i *Ingester) Run(ctx context.Context) (*IngestSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "pipeline.ingest")
	defer span.End()

	start := i.now()
	summary := &IngestSummary{}

	if i.coord != nil {
		ok, err := i.coord.AcquireLock(ctx, ingestLockName, i.lockTTL)
		if err != nil {
			return summary, fmt.Errorf("failed to acquire ingest lock: %w", err)
		}
		if !ok {
			return summary, ErrBatchInProgress
		}
		defer func() {
			if err := i.coord.ReleaseLock(ctx, ingestLockName); err != nil {
				i.logger.Warn("Failed to release ingest lock", zap.Error(err))
			}
		}()
	}

	records, err := i.raws.GetUnprocessed(ctx, i.batchSize)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch unprocessed records: %w", err)
	}

	for _, record := range records {
		switch i.processRecord(ctx, record) {
		case outcomeStored:
			summary.Processed++
		case outcomeDuplicate:
			summary.Processed++
			summary.Duplicates++
		case outcomeError:
			summary.Errors++
		}
	}

	summary.Total = len(records)
	summary.Success = true
	summary.DurationMS = i.now().Sub(start).Milliseconds()

	if i.coord != nil && summary.Processed > 0 {
		if err := i.coord.InvalidateTrendLists(ctx); err != nil {
			i.logger.Warn("Failed to invalidate trend list cache", zap.Error(err))
		}
	}

	i.logger.Info("Ingestion batch complete",
		zap.Int("total", summary.Total),
		zap.Int("processed", summary.Processed),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("errors", summary.Errors),
		zap.Int64("duration_ms", summary.DurationMS))

	return summary, nil
}

// processRecord takes one raw record to a terminal state.
func (i *Ingester) processRecord(ctx context.Context, record *models.RawRecord) outcome {
	payload, err := models.ParsePayload(record.Payload)
	if err != nil {
		return i.fail(ctx, record, err)
	}

	labels := classify.Classify(classify.Input{
		Title:       payload.Title,
		Description: payload.Description,
		Hashtags:    payload.Hashtags,
		Platform:    payload.Platform,
		Duration:    models.Counter(payload.Duration),
	})

	initialScore := score.ViralScore(
		models.Counter(payload.Views),
		models.Counter(payload.Likes),
		models.Counter(payload.Shares),
		models.Counter(payload.Comments),
		payload.Platform,
	)

	// Dedup by canonical source URL before inserting
	existing, err := i.trends.GetBySourceURL(ctx, payload.SourceURL)
	if err != nil {
		return i.fail(ctx, record, fmt.Errorf("dedup lookup failed: %w", err))
	}
	if existing != nil {
		return i.markDuplicate(ctx, record, existing.ID)
	}

	now := i.now()
	trend := &models.Trend{
		Title:      payload.Title,
		Platform:   payload.Platform,
		SourceURL:  payload.SourceURL,
		Score:      initialScore,
		FormatType: labels.FormatType,
		HookStyle:  labels.HookStyle,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if payload.Description != "" {
		trend.Description = sql.NullString{String: payload.Description, Valid: true}
	}
	if payload.AudioName != "" {
		trend.AudioName = sql.NullString{String: payload.AudioName, Valid: true}
	}
	if d := models.Counter(payload.Duration); d > 0 {
		trend.AvgDuration = sql.NullInt64{Int64: d, Valid: true}
		trend.DurationMin = sql.NullInt64{Int64: d, Valid: true}
		trend.DurationMax = sql.NullInt64{Int64: d, Valid: true}
	}

	inserted, err := i.trends.Create(ctx, trend)
	if err != nil {
		return i.fail(ctx, record, fmt.Errorf("trend insert failed: %w", err))
	}
	if !inserted {
		// Lost the check-then-insert race; resolve to the winner's row
		winner, err := i.trends.GetBySourceURL(ctx, payload.SourceURL)
		if err != nil || winner == nil {
			return i.fail(ctx, record, fmt.Errorf("duplicate insert could not be resolved for %s", payload.SourceURL))
		}
		return i.markDuplicate(ctx, record, winner.ID)
	}

	if err := i.patterns.Create(ctx, &models.TrendPattern{
		TrendID:          trend.ID,
		IntroType:        labels.IntroType,
		PacingPattern:    labels.PacingPattern,
		EditingStyle:     labels.EditingStyle,
		CaptionStructure: labels.CaptionStructure,
	}); err != nil {
		return i.fail(ctx, record, fmt.Errorf("pattern insert failed: %w", err))
	}

	tags := classify.ExtractHashtags(payload.Title, payload.Description, payload.Hashtags, i.maxHashtags)
	if len(tags) > 0 {
		rows := make([]models.TrendHashtag, 0, len(tags))
		for _, tag := range tags {
			rows = append(rows, models.TrendHashtag{
				TrendID:   trend.ID,
				Tag:       tag.Tag,
				Relevance: tag.Relevance,
			})
		}
		if err := i.hashtags.CreateBatch(ctx, rows); err != nil {
			return i.fail(ctx, record, fmt.Errorf("hashtag insert failed: %w", err))
		}
	}

	if payload.HasEngagement() {
		snapshot := &models.MetricsSnapshot{
			TrendID:     trend.ID,
			Views:       models.Counter(payload.Views),
			Likes:       models.Counter(payload.Likes),
			Shares:      models.Counter(payload.Shares),
			Comments:    models.Counter(payload.Comments),
			CollectedAt: now,
		}
		if rate, ok := score.EngagementRate(snapshot.Views, snapshot.Likes); ok {
			snapshot.EngagementRate = sql.NullFloat64{Float64: rate, Valid: true}
		}
		if err := i.metrics.Create(ctx, snapshot); err != nil {
			return i.fail(ctx, record, fmt.Errorf("metrics insert failed: %w", err))
		}
	}

	if err := i.raws.MarkStored(ctx, record.ID, trend.ID); err != nil {
		return i.fail(ctx, record, fmt.Errorf("failed to mark record stored: %w", err))
	}

	i.logger.Debug("Stored trend",
		zap.Int64("trend_id", trend.ID),
		zap.String("platform", trend.Platform),
		zap.String("format", trend.FormatType),
		zap.Int("score", trend.Score))

	return outcomeStored
}

// markDuplicate finishes a record whose content is already ingested. This
// is a success path, not an error.
func (i *Ingester) markDuplicate(ctx context.Context, record *models.RawRecord, trendID int64) outcome {
	if err := i.raws.MarkStored(ctx, record.ID, trendID); err != nil {
		return i.fail(ctx, record, fmt.Errorf("failed to mark record duplicate: %w", err))
	}
	i.logger.Debug("Duplicate record",
		zap.Int64("record_id", record.ID),
		zap.Int64("trend_id", trendID))
	return outcomeDuplicate
}

// fail marks a record terminally errored. The record is never retried;
// the error message is the audit trail for the scraper dashboards.
func (i *Ingester) fail(ctx context.Context, record *models.RawRecord, cause error) outcome {
	i.logger.Warn("Record failed",
		zap.Int64("record_id", record.ID),
		zap.String("source", record.Source),
		zap.Error(cause))

	if err := i.raws.MarkFailed(ctx, record.ID, cause.Error()); err != nil {
		i.logger.Error("Failed to mark record as errored",
			zap.Int64("record_id", record.ID),
			zap.Error(err))
	}
	return outcomeError
}
