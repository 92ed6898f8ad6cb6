package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/creatorcoach/creator-coach-go/internal/domain"
	"go.uber.org/zap"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS trend_snapshots (
	id              BIGSERIAL PRIMARY KEY,
	country         TEXT        NOT NULL,
	genre           TEXT        NOT NULL DEFAULT '',
	video_count     INTEGER     NOT NULL,
	avg_views       DOUBLE PRECISION NOT NULL,
	avg_likes       DOUBLE PRECISION NOT NULL,
	avg_comments    DOUBLE PRECISION NOT NULL,
	avg_engagement  DOUBLE PRECISION NOT NULL,
	category_counts JSONB       NOT NULL,
	top_keywords    JSONB       NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trend_snapshots_country_time
	ON trend_snapshots (country, created_at DESC);
`

// SnapshotRepository records computed trend summaries for offline
// inspection. Writes are best-effort: the request path never blocks or
// fails on a snapshot insert.
type SnapshotRepository struct {
	postgres *PostgresService
	logger   *zap.Logger
}

func NewSnapshotRepository(postgres *PostgresService, logger *zap.Logger) (*SnapshotRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := postgres.DB().ExecContext(ctx, snapshotSchema); err != nil {
		return nil, err
	}

	return &SnapshotRepository{
		postgres: postgres,
		logger:   logger,
	}, nil
}

func (r *SnapshotRepository) Insert(ctx context.Context, genre string, summary *domain.TrendSummary) error {
	categories, err := json.Marshal(summary.CategoryCounts)
	if err != nil {
		return err
	}
	keywords, err := json.Marshal(summary.TopKeywords)
	if err != nil {
		return err
	}

	_, err = r.postgres.DB().ExecContext(ctx, `
		INSERT INTO trend_snapshots
			(country, genre, video_count, avg_views, avg_likes, avg_comments,
			 avg_engagement, category_counts, top_keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		summary.Country, genre, summary.VideoCount,
		summary.Engagement.AvgViews, summary.Engagement.AvgLikes,
		summary.Engagement.AvgComments, summary.Engagement.AvgEngagementRate,
		categories, keywords,
	)
	if err != nil {
		r.logger.Error("Failed to insert trend snapshot",
			zap.String("country", summary.Country),
			zap.Error(err))
		return err
	}

	r.logger.Debug("Trend snapshot recorded",
		zap.String("country", summary.Country),
		zap.Int("videos", summary.VideoCount))
	return nil
}

// RecordAsync inserts a snapshot without holding up the request.
func (r *SnapshotRepository) RecordAsync(genre string, summary *domain.TrendSummary, timeout time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = r.Insert(ctx, genre, summary)
	}()
}
