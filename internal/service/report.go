package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"mfp-stats/internal/config"
	"mfp-stats/internal/constants"
	"mfp-stats/internal/leaderboard"
	"mfp-stats/internal/metrics"
	"mfp-stats/internal/report"
	"mfp-stats/internal/season"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const bestSeasonMaxPosition = 10

// ReportService builds the full report from the cache and keeps the latest
// one in memory until it expires or is invalidated.
type ReportService struct {
	seasonSvc *SeasonService
	finalsSvc *FinalsService
	cfg       *config.Config
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	builds singleflight.Group

	mu      sync.Mutex
	cached  *report.Report
	builtAt time.Time
}

func NewReportService(
	seasonSvc *SeasonService,
	finalsSvc *FinalsService,
	cfg *config.Config,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		seasonSvc: seasonSvc,
		finalsSvc: finalsSvc,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
	}
}

// Report returns the in-memory report, building it when there is none or the
// current one is older than the cache TTL. Concurrent callers share one build,
// which runs detached from the caller's context.
func (s *ReportService) Report(ctx context.Context) (*report.Report, error) {
	if r := s.current(); r != nil {
		return r, nil
	}

	ch := s.builds.DoChan("report", func() (any, error) {
		if r := s.current(); r != nil {
			return r, nil
		}

		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ReportBuildTimeout)
		defer cancel()

		r, err := s.Build(buildCtx)
		if err != nil {
			return nil, err
		}
		if err := buildCtx.Err(); err != nil {
			return nil, fmt.Errorf("failed to build report: %w", err)
		}

		s.mu.Lock()
		s.cached = r
		s.builtAt = time.Now()
		s.mu.Unlock()
		return r, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*report.Report), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ReportService) current() *report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && time.Since(s.builtAt) < s.cfg.CacheTTL {
		return s.cached
	}
	return nil
}

func (s *ReportService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
}

// Build runs the whole pipeline over the cached seasons without touching the
// in-memory report.
func (s *ReportService) Build(ctx context.Context) (*report.Report, error) {
	start := time.Now()

	records, err := s.seasonSvc.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasons: %w", err)
	}

	idx := season.NewIndex(season.ClassifyAll(records, season.DefaultCorrectionPolicy()))
	analyses := make([]report.Analysis, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range records {
		g.Go(func() error {
			rec := &records[i]
			c := idx[rec.ID]
			a := report.Analyze(c, rec, s.finalsSvc.Resolve(gctx, c))
			if a.Outcomes.SkippedGames > 0 {
				s.logger.Debug().
					Int("series_id", rec.ID).
					Int("skipped_games", a.Outcomes.SkippedGames).
					Msg("games without a valid result skipped")
			}
			analyses[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := report.Assemble(analyses, s.leaderboardConfig())

	duration := time.Since(start)
	s.metrics.ReportBuilt(duration, len(records))
	s.logger.Info().
		Int("seasons", len(records)).
		Int("players", len(r.Profiles)).
		Dur("duration", duration).
		Msg("report built")
	return r, nil
}

func (s *ReportService) leaderboardConfig() leaderboard.Config {
	return leaderboard.Config{
		Limit:                  s.cfg.Leaderboard.Limit,
		MinWeeksForImprovement: s.cfg.Leaderboard.MinWeeksForImprovement,
		BestSeasonMaxPosition:  bestSeasonMaxPosition,
	}
}
