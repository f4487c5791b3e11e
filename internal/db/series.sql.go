package db

import (
	"context"
	"time"
)

const getSeries = `-- name: GetSeries :one
SELECT series_id, title, status, payload, fetched_at, created_at, updated_at FROM series_cache
WHERE series_id = ?
`

func (q *Queries) GetSeries(ctx context.Context, seriesID int64) (SeriesCache, error) {
	row := q.db.QueryRowContext(ctx, getSeries, seriesID)
	var i SeriesCache
	err := row.Scan(
		&i.SeriesID,
		&i.Title,
		&i.Status,
		&i.Payload,
		&i.FetchedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getSeriesFetchInfo = `-- name: GetSeriesFetchInfo :one
SELECT status, fetched_at FROM series_cache
WHERE series_id = ?
`

type GetSeriesFetchInfoRow struct {
	Status    string
	FetchedAt time.Time
}

func (q *Queries) GetSeriesFetchInfo(ctx context.Context, seriesID int64) (GetSeriesFetchInfoRow, error) {
	row := q.db.QueryRowContext(ctx, getSeriesFetchInfo, seriesID)
	var i GetSeriesFetchInfoRow
	err := row.Scan(&i.Status, &i.FetchedAt)
	return i, err
}

const listSeries = `-- name: ListSeries :many
SELECT series_id, title, status, payload, fetched_at, created_at, updated_at FROM series_cache
ORDER BY series_id ASC
`

func (q *Queries) ListSeries(ctx context.Context) ([]SeriesCache, error) {
	rows, err := q.db.QueryContext(ctx, listSeries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SeriesCache
	for rows.Next() {
		var i SeriesCache
		if err := rows.Scan(
			&i.SeriesID,
			&i.Title,
			&i.Status,
			&i.Payload,
			&i.FetchedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const upsertSeries = `-- name: UpsertSeries :exec
INSERT INTO series_cache (series_id, title, status, payload, fetched_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (series_id) DO UPDATE SET
    title = excluded.title,
    status = excluded.status,
    payload = excluded.payload,
    fetched_at = excluded.fetched_at,
    updated_at = excluded.updated_at
`

type UpsertSeriesParams struct {
	SeriesID  int64
	Title     string
	Status    string
	Payload   []byte
	FetchedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) UpsertSeries(ctx context.Context, arg UpsertSeriesParams) error {
	_, err := q.db.ExecContext(ctx, upsertSeries,
		arg.SeriesID,
		arg.Title,
		arg.Status,
		arg.Payload,
		arg.FetchedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
