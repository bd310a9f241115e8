package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Extraction engine
	ExtractURLsWithoutProtocol bool          `env:"EXTRACT_URLS_WITHOUT_PROTOCOL" envDefault:"true"`
	CheckURLOverlap            bool          `env:"CHECK_URL_OVERLAP" envDefault:"true"`
	MatchTimeout               time.Duration `env:"MATCH_TIMEOUT" envDefault:"0s"`
	NormalizeNFC               bool          `env:"NORMALIZE_NFC" envDefault:"false"`

	// HTTP server
	HTTPPort          int           `env:"HTTP_PORT" envDefault:"8080"`
	RateLimitRPS      float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	MaxTextLength     int           `env:"MAX_TEXT_LENGTH" envDefault:"10000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyAliases(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyAliases honours the older HEALTH_PORT name when HTTP_PORT is unset.
func applyAliases(cfg *Config) {
	if !hasEnv("HTTP_PORT") {
		setIntFromEnv("HEALTH_PORT", &cfg.HTTPPort)
	}
}

func (c *Config) validate() error {
	if c.MatchTimeout < 0 {
		return fmt.Errorf("%w: MATCH_TIMEOUT must not be negative", errs.ErrInvalidInput)
	}

	if c.MaxTextLength <= 0 {
		return fmt.Errorf("%w: MAX_TEXT_LENGTH must be positive", errs.ErrInvalidInput)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive", errs.ErrInvalidInput)
	}

	return nil
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setIntFromEnv(key string, target *int) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
