package service

import (
	"context"

	"mfp-stats/internal/api"
)

// Upstream is the part of the Matchplay API the services read from.
type Upstream interface {
	ListAllSeries(ctx context.Context, ownerID int) ([]api.SeriesSummary, error)
	GetSeries(ctx context.Context, seriesID int) (*api.SeriesDetailResponse, error)
	GetTournamentGames(ctx context.Context, tournamentID int) (*api.GamesResponse, error)
	GetTournamentStandings(ctx context.Context, tournamentID int) ([]api.Standing, error)
}

var _ Upstream = (*api.MatchplayClient)(nil)
