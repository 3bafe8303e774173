package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvPrefix         = "COINBOARD_"
	defaultAPIBaseURL = "https://api.coingecko.com/api/v3"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL, default=https://api.coingecko.com/api/v3"`
	APIKey      string        `env:"API_KEY"`
	DBPath      string        `env:"DB_PATH, default=coinboard.db"`
	ExportDir   string        `env:"EXPORT_DIR, default=."`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=10s"`
	QuoteAsset  string        `env:"QUOTE_ASSET, default=USDT"`

	Redis   RedisConfig   `env:", prefix=REDIS_"`
	Fetch   FetchConfig   `env:", prefix=FETCH_"`
	Logging LoggingConfig `env:", prefix=LOG_"`
}

// RedisConfig points at the remote preference document store. An empty
// Addr disables remote sync.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB, default=0"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// FetchConfig drives retry behaviour for market data requests.
type FetchConfig struct {
	Attempts  int           `env:"ATTEMPTS, default=4"`
	BaseDelay time.Duration `env:"BASE_DELAY, default=500ms"`
	MaxDelay  time.Duration `env:"MAX_DELAY, default=30s"`
}

type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=text"`
	Path   string `env:"PATH, default=coinboard.log"`
}

func LoadFromEnv(ctx context.Context) (Config, error) {
	return Load(ctx, envconfig.OsLookuper())
}

// Load reads COINBOARD_* settings through lookuper and validates them.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	cfg.QuoteAsset = strings.ToUpper(strings.TrimSpace(cfg.QuoteAsset))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.QuoteAsset == "" {
		return errors.New("QuoteAsset is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive: %s", c.HTTPTimeout)
	}
	if c.Fetch.Attempts < 1 {
		return fmt.Errorf("Fetch.Attempts must be at least 1: %d", c.Fetch.Attempts)
	}
	if c.Fetch.BaseDelay <= 0 {
		return fmt.Errorf("Fetch.BaseDelay must be positive: %s", c.Fetch.BaseDelay)
	}
	if c.Fetch.MaxDelay < c.Fetch.BaseDelay {
		return fmt.Errorf("Fetch.MaxDelay must not be below Fetch.BaseDelay: %s < %s", c.Fetch.MaxDelay, c.Fetch.BaseDelay)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("Redis.DB must not be negative: %d", c.Redis.DB)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("Logging.Format must be text or json: %s", c.Logging.Format)
	}
	return nil
}
