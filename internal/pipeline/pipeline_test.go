package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/clipsmith/trendscout/internal/models"
)

// fakeStore is an in-memory implementation of every store interface, with
// per-entity failure injection for the isolation tests.
type fakeStore struct {
	raws      []*models.RawRecord
	trends    []*models.Trend
	patterns  []*models.TrendPattern
	hashtags  []models.TrendHashtag
	snapshots []*models.MetricsSnapshot

	nextTrendID int64

	failTrendInsert map[string]bool // source_url -> fail
	failMetricsFor  map[int64]bool  // trend_id -> fail latest lookup
	hideFromLookup  map[string]bool // source_url -> GetBySourceURL misses once
	failGetActive   bool
	failDeactivate  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextTrendID:     1,
		failTrendInsert: make(map[string]bool),
		failMetricsFor:  make(map[int64]bool),
		hideFromLookup:  make(map[string]bool),
	}
}

func (s *fakeStore) GetUnprocessed(ctx context.Context, limit int) ([]*models.RawRecord, error) {
	var out []*models.RawRecord
	for _, r := range s.raws {
		if !r.Processed {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *fakeStore) MarkStored(ctx context.Context, id, trendID int64) error {
	for _, r := range s.raws {
		if r.ID == id {
			r.Processed = true
			r.ProcessedTrendID.Int64 = trendID
			r.ProcessedTrendID.Valid = true
			return nil
		}
	}
	return fmt.Errorf("raw record %d not found", id)
}

func (s *fakeStore) MarkFailed(ctx context.Context, id int64, message string) error {
	for _, r := range s.raws {
		if r.ID == id {
			r.Processed = true
			r.ErrorMessage.String = message
			r.ErrorMessage.Valid = true
			return nil
		}
	}
	return fmt.Errorf("raw record %d not found", id)
}

func (s *fakeStore) GetBySourceURL(ctx context.Context, url string) (*models.Trend, error) {
	if s.hideFromLookup[url] {
		// Simulates a concurrent run inserting between the dedup check
		// and our insert: the first lookup misses, later ones hit.
		s.hideFromLookup[url] = false
		return nil, nil
	}
	for _, t := range s.trends {
		if t.SourceURL == url {
			return t, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Create(ctx context.Context, trend *models.Trend) (bool, error) {
	if s.failTrendInsert[trend.SourceURL] {
		return false, fmt.Errorf("injected insert failure")
	}
	for _, t := range s.trends {
		if t.SourceURL == trend.SourceURL {
			return false, nil // unique index conflict
		}
	}
	trend.ID = s.nextTrendID
	s.nextTrendID++
	s.trends = append(s.trends, trend)
	return true, nil
}

func (s *fakeStore) GetActive(ctx context.Context) ([]*models.Trend, error) {
	if s.failGetActive {
		return nil, fmt.Errorf("injected load failure")
	}
	var out []*models.Trend
	for _, t := range s.trends {
		if t.IsActive {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateScore(ctx context.Context, trend *models.Trend, newScore int, now time.Time) (bool, error) {
	for _, t := range s.trends {
		if t.ID == trend.ID {
			if !t.UpdatedAt.Equal(trend.UpdatedAt) {
				return false, nil // concurrent writer won
			}
			t.Score = newScore
			t.UpdatedAt = now
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) DeactivateStale(ctx context.Context, createdBefore time.Time, maxScore int, now time.Time) (int64, error) {
	if s.failDeactivate {
		return 0, fmt.Errorf("injected deactivation failure")
	}
	var n int64
	for _, t := range s.trends {
		if t.IsActive && t.CreatedAt.Before(createdBefore) && t.Score < maxScore {
			t.IsActive = false
			t.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CreatePattern(ctx context.Context, pattern *models.TrendPattern) error {
	s.patterns = append(s.patterns, pattern)
	return nil
}

func (s *fakeStore) CreateBatch(ctx context.Context, hashtags []models.TrendHashtag) error {
	s.hashtags = append(s.hashtags, hashtags...)
	return nil
}

func (s *fakeStore) CreateSnapshot(ctx context.Context, snapshot *models.MetricsSnapshot) error {
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func (s *fakeStore) GetLatestByTrend(ctx context.Context, trendID int64) (*models.MetricsSnapshot, error) {
	if s.failMetricsFor[trendID] {
		return nil, fmt.Errorf("injected snapshot failure")
	}
	var latest *models.MetricsSnapshot
	for _, m := range s.snapshots {
		if m.TrendID != trendID {
			continue
		}
		if latest == nil || m.CollectedAt.After(latest.CollectedAt) {
			latest = m
		}
	}
	return latest, nil
}

// patternStore / metricsStore adapters so fakeStore satisfies the
// separately-named interface methods.
type fakePatterns struct{ *fakeStore }

func (f fakePatterns) Create(ctx context.Context, p *models.TrendPattern) error {
	return f.CreatePattern(ctx, p)
}

type fakeMetrics struct{ *fakeStore }

func (f fakeMetrics) Create(ctx context.Context, m *models.MetricsSnapshot) error {
	return f.CreateSnapshot(ctx, m)
}

func (f fakeMetrics) GetLatestByTrend(ctx context.Context, trendID int64) (*models.MetricsSnapshot, error) {
	return f.fakeStore.GetLatestByTrend(ctx, trendID)
}

// fakeCoordinator records lock traffic and can refuse the lock.
type fakeCoordinator struct {
	locked        bool
	refuse        bool
	invalidations int
}

func (c *fakeCoordinator) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if c.refuse {
		return false, nil
	}
	c.locked = true
	return true, nil
}

func (c *fakeCoordinator) ReleaseLock(ctx context.Context, name string) error {
	c.locked = false
	return nil
}

func (c *fakeCoordinator) InvalidateTrendLists(ctx context.Context) error {
	c.invalidations++
	return nil
}

func rawRecord(id int64, payload string) *models.RawRecord {
	return &models.RawRecord{
		ID:        id,
		Source:    "test-scraper",
		Payload:   payload,
		ScrapedAt: time.Now().Add(-time.Hour),
	}
}
