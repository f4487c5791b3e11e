package db

import (
	"context"
	"time"
)

const listFinalsStandings = `-- name: ListFinalsStandings :many
SELECT id, tournament_id, player_id, position, fetched_at FROM finals_standings
WHERE tournament_id = ?
ORDER BY position ASC, player_id ASC
`

func (q *Queries) ListFinalsStandings(ctx context.Context, tournamentID int64) ([]FinalsStanding, error) {
	rows, err := q.db.QueryContext(ctx, listFinalsStandings, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FinalsStanding
	for rows.Next() {
		var i FinalsStanding
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.PlayerID,
			&i.Position,
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

const upsertFinalsStanding = `-- name: UpsertFinalsStanding :exec
INSERT INTO finals_standings (id, tournament_id, player_id, position, fetched_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (tournament_id, player_id) DO UPDATE SET
    position = excluded.position,
    fetched_at = excluded.fetched_at
`

type UpsertFinalsStandingParams struct {
	ID           string
	TournamentID int64
	PlayerID     int64
	Position     int64
	FetchedAt    time.Time
}

func (q *Queries) UpsertFinalsStanding(ctx context.Context, arg UpsertFinalsStandingParams) error {
	_, err := q.db.ExecContext(ctx, upsertFinalsStanding,
		arg.ID,
		arg.TournamentID,
		arg.PlayerID,
		arg.Position,
		arg.FetchedAt,
	)
	return err
}
