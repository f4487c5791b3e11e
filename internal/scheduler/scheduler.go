package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mfp-stats/internal/config"
	"mfp-stats/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Scheduler runs the daily cache refresh. It does nothing unless the refresh
// schedule is enabled.
type Scheduler struct {
	s         gocron.Scheduler
	seasonSvc *service.SeasonService
	reportSvc *service.ReportService
	cfg       *config.Config
	logger    zerolog.Logger
}

func NewScheduler(seasonSvc *service.SeasonService, reportSvc *service.ReportService, cfg *config.Config, logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:         s,
		seasonSvc: seasonSvc,
		reportSvc: reportSvc,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func (s *Scheduler) Start() error {
	if !s.cfg.Refresh.Enabled {
		s.logger.Info().Msg("scheduled refresh disabled")
		return nil
	}

	hour, minute, err := parseAt(s.cfg.Refresh.At)
	if err != nil {
		return err
	}

	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(s.refresh),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	s.s.Start()
	s.logger.Info().Str("at", s.cfg.Refresh.At).Msg("scheduled refresh enabled")
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refresh() {
	res, err := s.seasonSvc.Refresh(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("scheduled refresh failed")
		return
	}
	s.reportSvc.Invalidate()
	s.logger.Info().Int("fetched", res.Fetched).Msg("scheduled refresh done")
}

// parseAt reads a "HH:MM" wall clock time.
func parseAt(at string) (uint, uint, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(at), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid refresh time %q, want HH:MM", at)
	}
	hour, err := strconv.ParseUint(h, 10, 8)
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("invalid refresh hour in %q", at)
	}
	minute, err := strconv.ParseUint(m, 10, 8)
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("invalid refresh minute in %q", at)
	}
	return uint(hour), uint(minute), nil
}
