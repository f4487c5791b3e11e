package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"mfp-stats/internal/config"
	"mfp-stats/internal/constants"
	fxmodules "mfp-stats/internal/fx"
	"mfp-stats/internal/metrics"
	"mfp-stats/internal/middleware"
	"mfp-stats/internal/scheduler"
	"mfp-stats/internal/season"
	"mfp-stats/internal/server"
	"mfp-stats/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func main() {
	app := &cli.App{
		Name:  "mfpstats",
		Usage: "pinball league season statistics",
		Commands: []*cli.Command{
			serveCommand(),
			fetchCommand(),
			reportCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the statistics API",
		Action: func(c *cli.Context) error {
			fx.New(
				fxmodules.Module,
				fx.Invoke(runServer),
			).Run()
			return nil
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "refresh the local cache from Matchplay and exit",
		Action: func(c *cli.Context) error {
			var (
				seasonSvc *service.SeasonService
				sqlDB     *sql.DB
			)
			app := fx.New(fxmodules.Module, fx.NopLogger, fx.Populate(&seasonSvc, &sqlDB))
			if err := app.Err(); err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer sqlDB.Close()

			res, err := seasonSvc.Refresh(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "listed %d, fetched %d, fresh %d, excluded %d\n",
				res.Listed, res.Fetched, res.Fresh, res.Excluded)
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "build the report from the cache and print one leaderboard group as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "group",
				Value: string(season.GroupCombined),
				Usage: "mfp, ladies or combined",
			},
		},
		Action: func(c *cli.Context) error {
			g, err := season.ParseGroup(c.String("group"))
			if err != nil {
				return err
			}
			// stdout carries the JSON
			if os.Getenv("LOG_LEVEL") == "" {
				_ = os.Setenv("LOG_LEVEL", "warn")
			}

			var (
				reportSvc *service.ReportService
				sqlDB     *sql.DB
			)
			app := fx.New(fxmodules.Module, fx.NopLogger, fx.Populate(&reportSvc, &sqlDB))
			if err := app.Err(); err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer sqlDB.Close()

			r, err := reportSvc.Build(c.Context)
			if err != nil {
				return err
			}
			board, _ := r.Board(g)

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(board)
		},
	}
}

func runServer(
	lc fx.Lifecycle,
	statsServer *server.StatsServer,
	sched *scheduler.Scheduler,
	m *metrics.Metrics,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	handler := middleware.Metrics(m)(statsServer.Routes())
	handler = middleware.RequestID(logger)(c.Handler(handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sched.Start(); err != nil {
				return err
			}
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := sched.Stop(); err != nil {
				logger.Warn().Err(err).Msg("error stopping scheduler")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
