package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mfp-stats/internal/db"
	"mfp-stats/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type FinalsRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewFinalsRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *FinalsRepository {
	return &FinalsRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *FinalsRepository) UpsertBatch(ctx context.Context, tournamentID int, results []domain.FinalsResult, fetchedAt time.Time) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for _, res := range results {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}

		err = qtx.UpsertFinalsStanding(ctx, db.UpsertFinalsStandingParams{
			ID:           id,
			TournamentID: int64(tournamentID),
			PlayerID:     int64(res.PlayerID),
			Position:     int64(res.Position),
			FetchedAt:    fetchedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert finals standing: %w", err)
		}
	}

	return tx.Commit()
}

// Get returns the cached standings of a finals tournament ordered by
// position. ok is false when nothing is cached for it.
func (r *FinalsRepository) Get(ctx context.Context, tournamentID int) ([]domain.FinalsResult, bool, error) {
	rows, err := r.queries.ListFinalsStandings(ctx, int64(tournamentID))
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	result := make([]domain.FinalsResult, len(rows))
	for i, row := range rows {
		result[i] = domain.FinalsResult{
			PlayerID: int(row.PlayerID),
			Position: int(row.Position),
		}
	}
	return result, true, nil
}
