package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mfp-stats/internal/api"
	"mfp-stats/internal/db"
	"mfp-stats/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type SeriesRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSeriesRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SeriesRepository {
	return &SeriesRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *SeriesRepository) Get(ctx context.Context, seriesID int) (*api.SeriesDetail, error) {
	row, err := r.queries.GetSeries(ctx, int64(seriesID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("series %d: %w", seriesID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeSeries(row)
}

func (r *SeriesRepository) List(ctx context.Context) ([]api.SeriesDetail, error) {
	rows, err := r.queries.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]api.SeriesDetail, 0, len(rows))
	for _, row := range rows {
		detail, err := decodeSeries(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func decodeSeries(row db.SeriesCache) (*api.SeriesDetail, error) {
	var detail api.SeriesDetail
	if err := json.Unmarshal(row.Payload, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode cached series %d: %w", row.SeriesID, err)
	}
	return &detail, nil
}

func (r *SeriesRepository) Upsert(ctx context.Context, detail *api.SeriesDetail, fetchedAt time.Time) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode series %d: %w", detail.SeriesID, err)
	}

	now := time.Now()
	return r.queries.UpsertSeries(ctx, db.UpsertSeriesParams{
		SeriesID:  int64(detail.SeriesID),
		Title:     detail.Name,
		Status:    detail.Status,
		Payload:   payload,
		FetchedAt: fetchedAt,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// ShouldRefresh reports whether a series must be fetched again. Completed
// series never change upstream and are kept forever once cached.
func (r *SeriesRepository) ShouldRefresh(ctx context.Context, seriesID int, ttl time.Duration) (bool, error) {
	info, err := r.queries.GetSeriesFetchInfo(ctx, int64(seriesID))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Int("series_id", seriesID).Msg("series not cached, should refresh")
		return true, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Int("series_id", seriesID).Msg("failed to get series fetch info")
		return false, err
	}
	if domain.SeasonStatus(info.Status) == domain.StatusCompleted {
		return false, nil
	}

	timeSince := time.Since(info.FetchedAt)
	shouldRefresh := timeSince > ttl
	r.logger.Debug().
		Int("series_id", seriesID).
		Str("status", info.Status).
		Time("fetched_at", info.FetchedAt).
		Dur("time_since", timeSince).
		Dur("ttl", ttl).
		Bool("should_refresh", shouldRefresh).
		Msg("checking if series should refresh")

	return shouldRefresh, nil
}
