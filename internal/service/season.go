package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"mfp-stats/internal/api"
	"mfp-stats/internal/config"
	"mfp-stats/internal/constants"
	"mfp-stats/internal/domain"
	"mfp-stats/internal/repository"
	"mfp-stats/internal/season"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type SeasonService struct {
	upstream   Upstream
	seriesRepo *repository.SeriesRepository
	gamesRepo  *repository.GamesRepository
	finalsSvc  *FinalsService
	cfg        *config.Config
	logger     zerolog.Logger
}

// RefreshResult counts what a refresh did with each listed series.
type RefreshResult struct {
	Listed   int
	Fetched  int
	Fresh    int
	Excluded int
}

func NewSeasonService(
	upstream Upstream,
	seriesRepo *repository.SeriesRepository,
	gamesRepo *repository.GamesRepository,
	finalsSvc *FinalsService,
	cfg *config.Config,
	logger zerolog.Logger,
) *SeasonService {
	return &SeasonService{
		upstream:   upstream,
		seriesRepo: seriesRepo,
		gamesRepo:  gamesRepo,
		finalsSvc:  finalsSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Refresh pulls every series of the configured owner into the cache. Completed
// series already cached are left alone; others are refetched once older than
// the cache TTL.
func (s *SeasonService) Refresh(ctx context.Context) (RefreshResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RefreshTimeout)
	defer cancel()

	start := time.Now()
	summaries, err := s.upstream.ListAllSeries(ctx, s.cfg.Matchplay.OwnerID)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to list series: %w", err)
	}

	result := RefreshResult{Listed: len(summaries)}
	var fetched, fresh atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.FetchConcurrency)
	for _, sum := range summaries {
		if s.cfg.IsExcluded(sum.Name) {
			s.logger.Debug().Int("series_id", sum.SeriesID).Str("name", sum.Name).Msg("skipping excluded series")
			result.Excluded++
			continue
		}

		g.Go(func() error {
			refreshed, err := s.refreshSeries(gctx, sum.SeriesID)
			if err != nil {
				return err
			}
			if refreshed {
				fetched.Add(1)
			} else {
				fresh.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RefreshResult{}, err
	}
	result.Fetched = int(fetched.Load())
	result.Fresh = int(fresh.Load())

	s.prefetchFinals(ctx)

	s.logger.Info().
		Int("listed", result.Listed).
		Int("fetched", result.Fetched).
		Int("fresh", result.Fresh).
		Int("excluded", result.Excluded).
		Dur("duration", time.Since(start)).
		Msg("series refresh complete")

	return result, nil
}

func (s *SeasonService) refreshSeries(ctx context.Context, seriesID int) (bool, error) {
	should, err := s.seriesRepo.ShouldRefresh(ctx, seriesID, s.cfg.CacheTTL)
	if err != nil {
		return false, fmt.Errorf("failed to check cache for series %d: %w", seriesID, err)
	}
	if !should {
		s.logger.Debug().Int("series_id", seriesID).Msg("series cache is fresh")
		return false, nil
	}

	resp, err := s.upstream.GetSeries(ctx, seriesID)
	if err != nil {
		return false, s.keepCached(ctx, seriesID, err)
	}
	detail := resp.Data

	games := make(map[int][]api.Game, len(detail.TournamentIDs))
	for _, tid := range detail.TournamentIDs {
		gr, err := s.upstream.GetTournamentGames(ctx, tid)
		if err != nil {
			if api.IsNotFound(err) {
				s.logger.Warn().Int("series_id", seriesID).Int("tournament_id", tid).Msg("tournament not found, skipping games")
				continue
			}
			return false, fmt.Errorf("failed to fetch games of tournament %d: %w", tid, err)
		}
		games[tid] = gr.Data
	}

	now := time.Now()
	if err := s.seriesRepo.Upsert(ctx, &detail, now); err != nil {
		return false, fmt.Errorf("failed to cache series %d: %w", seriesID, err)
	}
	if err := s.gamesRepo.UpsertBatch(ctx, seriesID, games, now); err != nil {
		return false, fmt.Errorf("failed to cache games of series %d: %w", seriesID, err)
	}

	s.logger.Info().
		Int("series_id", seriesID).
		Str("name", detail.Name).
		Int("tournaments", len(detail.TournamentIDs)).
		Msg("series cached")
	return true, nil
}

// keepCached tolerates a failed fetch of a stale series when an older copy is
// cached; that copy keeps serving until the next refresh.
func (s *SeasonService) keepCached(ctx context.Context, seriesID int, fetchErr error) error {
	cached, err := s.seriesRepo.Get(ctx, seriesID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to fetch series %d: %w", seriesID, fetchErr)
	}
	if err != nil {
		return fmt.Errorf("failed to read cached series %d: %w", seriesID, err)
	}
	s.logger.Warn().
		Err(fetchErr).
		Int("series_id", seriesID).
		Str("name", cached.Name).
		Msg("series fetch failed, keeping cached copy")
	return nil
}

func (s *SeasonService) prefetchFinals(ctx context.Context) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load seasons for finals prefetch")
		return
	}
	for _, c := range season.ClassifyAll(records, season.DefaultCorrectionPolicy()) {
		if err := s.finalsSvc.Prefetch(ctx, c); err != nil {
			s.logger.Warn().Err(err).Msg("finals prefetch failed")
		}
	}
}

// LoadAll reads every cached season, dropping excluded titles.
func (s *SeasonService) LoadAll(ctx context.Context) ([]domain.SeasonRecord, error) {
	details, err := s.seriesRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached series: %w", err)
	}

	records := make([]domain.SeasonRecord, 0, len(details))
	for i := range details {
		d := &details[i]
		if s.cfg.IsExcluded(d.Name) {
			continue
		}
		games, err := s.gamesRepo.ListBySeries(ctx, d.SeriesID)
		if err != nil {
			return nil, fmt.Errorf("failed to load games of series %d: %w", d.SeriesID, err)
		}
		records = append(records, ToSeasonRecord(d, games, s.logger))
	}

	s.logger.Debug().Int("seasons", len(records)).Msg("loaded cached seasons")
	return records, nil
}
