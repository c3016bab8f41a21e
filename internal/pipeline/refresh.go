package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clipsmith/trendscout/internal/score"
	"github.com/clipsmith/trendscout/pkg/config"
	"github.com/clipsmith/trendscout/pkg/logging"
	"github.com/clipsmith/trendscout/pkg/telemetry"
)

// Refresher re-scores active trends from their latest metrics snapshot
// and retires trends that are both old and low-scoring. The two steps are
// independent: a failure in one does not block the other.
type Refresher struct {
	trends  TrendStore
	metrics MetricsStore
	coord   Coordinator

	decay      score.DecayParams
	hysteresis int
	maxAgeDays int
	minScore   int

	logger *zap.Logger
	now    func() time.Time
}

// NewRefresher creates a new refresh pipeline
func NewRefresher(trends TrendStore, metrics MetricsStore, coord Coordinator, cfg *config.ScoringConfig) *Refresher {
	return &Refresher{
		trends:  trends,
		metrics: metrics,
		coord:   coord,
		decay: score.DecayParams{
			GraceDays: cfg.DecayGraceDays,
			PerDay:    cfg.DecayPerDay,
			Floor:     cfg.DecayFloor,
		},
		hysteresis: cfg.ScoreHysteresis,
		maxAgeDays: cfg.RetirementAgeDays,
		minScore:   cfg.RetirementMaxScore,
		logger:     logging.GetLogger().With(zap.String("component", "refresh-pipeline")),
		now:        time.Now,
	}
}

// Run executes one refresh cycle over all active trends.
func (r *Refresher) Run(ctx context.Context) (*RefreshSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "pipeline.refresh")
	defer span.End()

	start := r.now()
	summary := &RefreshSummary{}

	rescoreErr := r.rescore(ctx, summary)
	deactivateErr := r.deactivate(ctx, summary)

	// Both steps failing means storage is gone; surface it as fatal
	if rescoreErr != nil && deactivateErr != nil {
		return summary, fmt.Errorf("refresh failed: %v; deactivation failed: %v", rescoreErr, deactivateErr)
	}
	if rescoreErr != nil {
		r.logger.Error("Rescoring step failed", zap.Error(rescoreErr))
	}
	if deactivateErr != nil {
		r.logger.Error("Deactivation step failed", zap.Error(deactivateErr))
	}

	summary.Success = true
	summary.DurationMS = r.now().Sub(start).Milliseconds()

	if r.coord != nil && (summary.Updated > 0 || summary.Deactivated > 0) {
		if err := r.coord.InvalidateTrendLists(ctx); err != nil {
			r.logger.Warn("Failed to invalidate trend list cache", zap.Error(err))
		}
	}

	r.logger.Info("Refresh cycle complete",
		zap.Int("total_trends", summary.TotalTrends),
		zap.Int("updated", summary.Updated),
		zap.Int64("deactivated", summary.Deactivated),
		zap.Int64("duration_ms", summary.DurationMS))

	return summary, nil
}

// rescore recomputes every active trend's score from its latest snapshot.
// Per-trend failures are logged and skipped.
func (r *Refresher) rescore(ctx context.Context, summary *RefreshSummary) error {
	trends, err := r.trends.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active trends: %w", err)
	}
	summary.TotalTrends = len(trends)

	now := r.now()
	for _, trend := range trends {
		snapshot, err := r.metrics.GetLatestByTrend(ctx, trend.ID)
		if err != nil {
			r.logger.Warn("Failed to load metrics snapshot",
				zap.Int64("trend_id", trend.ID),
				zap.Error(err))
			continue
		}
		if snapshot == nil {
			// No metrics collected yet; nothing to recompute this cycle
			continue
		}

		base := score.ViralScore(snapshot.Views, snapshot.Likes, snapshot.Shares, snapshot.Comments, trend.Platform)
		newScore := score.ApplyDecay(base, trend.CreatedAt, now, r.decay)

		// Hysteresis: tiny movements are churn, not signal
		if abs(newScore-trend.Score) < r.hysteresis {
			continue
		}

		updated, err := r.trends.UpdateScore(ctx, trend, newScore, now)
		if err != nil {
			r.logger.Warn("Failed to update trend score",
				zap.Int64("trend_id", trend.ID),
				zap.Error(err))
			continue
		}
		if !updated {
			// Concurrent writer touched the row; next cycle will catch up
			r.logger.Debug("Skipped stale trend update", zap.Int64("trend_id", trend.ID))
			continue
		}

		summary.Updated++
	}

	return nil
}

// deactivate retires old low-scoring trends in one bulk update.
func (r *Refresher) deactivate(ctx context.Context, summary *RefreshSummary) error {
	now := r.now()
	cutoff := now.AddDate(0, 0, -r.maxAgeDays)

	deactivated, err := r.trends.DeactivateStale(ctx, cutoff, r.minScore, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate stale trends: %w", err)
	}
	summary.Deactivated = deactivated
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
