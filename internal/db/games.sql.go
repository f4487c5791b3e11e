package db

import (
	"context"
	"time"
)

const listTournamentGamesBySeries = `-- name: ListTournamentGamesBySeries :many
SELECT tournament_id, series_id, payload, fetched_at FROM tournament_games
WHERE series_id = ?
ORDER BY tournament_id ASC
`

func (q *Queries) ListTournamentGamesBySeries(ctx context.Context, seriesID int64) ([]TournamentGame, error) {
	rows, err := q.db.QueryContext(ctx, listTournamentGamesBySeries, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TournamentGame
	for rows.Next() {
		var i TournamentGame
		if err := rows.Scan(
			&i.TournamentID,
			&i.SeriesID,
			&i.Payload,
			&i.FetchedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertTournamentGames = `-- name: UpsertTournamentGames :exec
INSERT INTO tournament_games (tournament_id, series_id, payload, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (tournament_id) DO UPDATE SET
    series_id = excluded.series_id,
    payload = excluded.payload,
    fetched_at = excluded.fetched_at
`

type UpsertTournamentGamesParams struct {
	TournamentID int64
	SeriesID     int64
	Payload      []byte
	FetchedAt    time.Time
}

func (q *Queries) UpsertTournamentGames(ctx context.Context, arg UpsertTournamentGamesParams) error {
	_, err := q.db.ExecContext(ctx, upsertTournamentGames,
		arg.TournamentID,
		arg.SeriesID,
		arg.Payload,
		arg.FetchedAt,
	)
	return err
}
