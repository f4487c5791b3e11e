package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	Matchplay   Matchplay
	Leaderboard Leaderboard
	Refresh     Refresh

	DBPath     string        `envconfig:"DB_PATH" default:"mfpstats.db"`
	ServerPort string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string        `envconfig:"LOG_FORMAT" default:"json"`
	FinalsPath string        `envconfig:"FINALS_MAPPING_PATH" default:"finals_mapping.json"`
	CacheTTL   time.Duration `envconfig:"CACHE_TTL" default:"24h"`

	ExcludedSeries []string `envconfig:"EXCLUDED_SERIES" default:"The Beforefore Times,Tuesday Night Strikes Winter 2020,MFPinball 2019 Spring Season (clone)"`
}

type Matchplay struct {
	APIKey            string  `envconfig:"MATCHPLAY_API_KEY" required:"true"`
	OwnerID           int     `envconfig:"MATCHPLAY_OWNER_ID" required:"true"`
	BaseURL           string  `envconfig:"MATCHPLAY_BASE_URL" default:"https://app.matchplay.events/api"`
	RequestsPerSecond float64 `envconfig:"API_REQUESTS_PER_SECOND" default:"2"`
}

type Leaderboard struct {
	Limit                  int `envconfig:"LEADERBOARD_LIMIT" default:"25"`
	MinWeeksForImprovement int `envconfig:"MIN_WEEKS_FOR_IMPROVEMENT" default:"5"`
}

type Refresh struct {
	Enabled bool   `envconfig:"REFRESH_SCHEDULE_ENABLED" default:"false"`
	At      string `envconfig:"REFRESH_AT" default:"04:00"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Matchplay.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("API_REQUESTS_PER_SECOND must be positive, got %v", cfg.Matchplay.RequestsPerSecond)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("finals_mapping", cfg.FinalsPath).
		Int("owner_id", cfg.Matchplay.OwnerID).
		Int("excluded_series", len(cfg.ExcludedSeries)).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("refresh_schedule", cfg.Refresh.Enabled).
		Msg("configuration loaded")

	return &cfg, nil
}

// IsExcluded reports whether a series title is administratively excluded.
func (c *Config) IsExcluded(title string) bool {
	for _, t := range c.ExcludedSeries {
		if t == title {
			return true
		}
	}
	return false
}

var Module = fx.Provide(Load)
