package fx

import (
	"database/sql"

	"mfp-stats/internal/api"
	"mfp-stats/internal/config"
	"mfp-stats/internal/database"
	"mfp-stats/internal/db"
	"mfp-stats/internal/finals"
	"mfp-stats/internal/logger"
	"mfp-stats/internal/metrics"
	"mfp-stats/internal/repository"
	"mfp-stats/internal/scheduler"
	"mfp-stats/internal/server"
	"mfp-stats/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideFinalsMapping(cfg *config.Config, logger zerolog.Logger) (finals.Mapping, error) {
	return finals.LoadMapping(cfg.FinalsPath, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(repository.NewSeriesRepository),
	fx.Provide(repository.NewGamesRepository),
	fx.Provide(repository.NewFinalsRepository),
	// api client
	fx.Provide(fx.Annotate(api.NewMatchplayClient, fx.As(new(service.Upstream)))),
	fx.Provide(ProvideFinalsMapping),
	// svc
	fx.Provide(service.NewFinalsService),
	fx.Provide(service.NewSeasonService),
	fx.Provide(fx.Annotate(service.NewReportService, fx.As(fx.Self()), fx.As(new(server.ReportSource)))),
	fx.Provide(scheduler.NewScheduler),
	// server
	fx.Provide(server.NewStatsServer),
)
