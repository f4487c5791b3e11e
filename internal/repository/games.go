package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"mfp-stats/internal/api"
	"mfp-stats/internal/constants"
	"mfp-stats/internal/db"

	"github.com/rs/zerolog"
)

type GamesRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGamesRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GamesRepository {
	return &GamesRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// UpsertBatch stores the games of several tournaments of one series in a
// single transaction.
func (r *GamesRepository) UpsertBatch(ctx context.Context, seriesID int, games map[int][]api.Game, fetchedAt time.Time) error {
	if len(games) == 0 {
		return nil
	}

	tids := make([]int, 0, len(games))
	for tid := range games {
		tids = append(tids, tid)
	}
	sort.Ints(tids)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(tids); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(tids) {
			end = len(tids)
		}

		for _, tid := range tids[i:end] {
			payload, err := json.Marshal(games[tid])
			if err != nil {
				return fmt.Errorf("failed to encode games of tournament %d: %w", tid, err)
			}
			err = qtx.UpsertTournamentGames(ctx, db.UpsertTournamentGamesParams{
				TournamentID: int64(tid),
				SeriesID:     int64(seriesID),
				Payload:      payload,
				FetchedAt:    fetchedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert games of tournament %d: %w", tid, err)
			}
		}
	}

	return tx.Commit()
}

// ListBySeries returns tournament id -> games for every cached tournament of
// a series.
func (r *GamesRepository) ListBySeries(ctx context.Context, seriesID int) (map[int][]api.Game, error) {
	rows, err := r.queries.ListTournamentGamesBySeries(ctx, int64(seriesID))
	if err != nil {
		return nil, err
	}

	result := make(map[int][]api.Game, len(rows))
	for _, row := range rows {
		var games []api.Game
		if err := json.Unmarshal(row.Payload, &games); err != nil {
			return nil, fmt.Errorf("failed to decode games of tournament %d: %w", row.TournamentID, err)
		}
		result[int(row.TournamentID)] = games
	}
	return result, nil
}
