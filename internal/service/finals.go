package service

import (
	"context"
	"fmt"
	"time"

	"mfp-stats/internal/constants"
	"mfp-stats/internal/domain"
	"mfp-stats/internal/finals"
	"mfp-stats/internal/repository"
	"mfp-stats/internal/season"
	"mfp-stats/internal/standings"

	"github.com/rs/zerolog"
)

type FinalsService struct {
	upstream Upstream
	repo     *repository.FinalsRepository
	mapping  finals.Mapping
	logger   zerolog.Logger
}

func NewFinalsService(upstream Upstream, repo *repository.FinalsRepository, mapping finals.Mapping, logger zerolog.Logger) *FinalsService {
	return &FinalsService{
		upstream: upstream,
		repo:     repo,
		mapping:  mapping,
		logger:   logger,
	}
}

// Resolve looks up the finals of a season. Unmapped seasons have no finals; a
// mapped season whose standings cannot be loaded is reported as unavailable.
func (s *FinalsService) Resolve(ctx context.Context, c season.Classified) standings.Finals {
	ids, ok := s.mapping.LookupSeason(c)
	if !ok {
		return standings.None()
	}

	var results []domain.FinalsResult
	for _, tid := range ids {
		r, err := s.standings(ctx, tid)
		if err != nil {
			s.logger.Warn().Err(err).Int("series_id", c.ID).Int("tournament_id", tid).Msg("failed to load finals standings")
			continue
		}
		results = append(results, r...)
	}

	if len(results) == 0 {
		s.logger.Warn().
			Int("series_id", c.ID).
			Str("season", c.Label()).
			Ints("tournament_ids", ids).
			Msg("finals linked but no standings available")
		return standings.Unavailable(ids)
	}
	return standings.Available(ids, results)
}

// Prefetch loads the standings of every finals tournament mapped to the
// season into the cache.
func (s *FinalsService) Prefetch(ctx context.Context, c season.Classified) error {
	ids, ok := s.mapping.LookupSeason(c)
	if !ok {
		return nil
	}
	for _, tid := range ids {
		if _, err := s.standings(ctx, tid); err != nil {
			return fmt.Errorf("failed to prefetch finals %d for series %d: %w", tid, c.ID, err)
		}
	}
	return nil
}

func (s *FinalsService) standings(ctx context.Context, tournamentID int) ([]domain.FinalsResult, error) {
	cached, ok, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached finals: %w", err)
	}
	if ok {
		s.logger.Debug().Int("tournament_id", tournamentID).Msg("finals standings cache hit")
		return cached, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.upstream.GetTournamentStandings(fetchCtx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch finals standings: %w", err)
	}
	results := toFinalsResults(raw)
	if len(results) == 0 {
		return nil, nil
	}

	if err := s.repo.UpsertBatch(ctx, tournamentID, results, time.Now()); err != nil {
		s.logger.Warn().Err(err).Int("tournament_id", tournamentID).Msg("failed to cache finals standings")
	}
	s.logger.Info().Int("tournament_id", tournamentID).Int("players", len(results)).Msg("fetched finals standings")
	return results, nil
}
