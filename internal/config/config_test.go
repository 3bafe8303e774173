package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func validConfig() Config {
	return Config{
		APIBaseURL:  defaultAPIBaseURL,
		DBPath:      "coinboard.db",
		ExportDir:   ".",
		HTTPTimeout: 10 * time.Second,
		QuoteAsset:  "USDT",
		Fetch: FetchConfig{
			Attempts:  4,
			BaseDelay: 500 * time.Millisecond,
			MaxDelay:  30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text", Path: "coinboard.log"},
	}
}

func TestLoad_UsesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected API base URL: %s", cfg.APIBaseURL)
	}
	if cfg.DBPath != "coinboard.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
	if cfg.Fetch.Attempts != 4 || cfg.Fetch.BaseDelay != 500*time.Millisecond || cfg.Fetch.MaxDelay != 30*time.Second {
		t.Fatalf("unexpected fetch defaults: %+v", cfg.Fetch)
	}
	if cfg.QuoteAsset != "USDT" {
		t.Fatalf("unexpected quote asset: %s", cfg.QuoteAsset)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("remote sync must be disabled without a redis address")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" || cfg.Logging.Path != "coinboard.log" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad_ReadsPrefixedValues(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"COINBOARD_API_BASE_URL":     "http://localhost:9000/api",
		"COINBOARD_API_KEY":          "demo-key",
		"COINBOARD_REDIS_ADDR":       "localhost:6379",
		"COINBOARD_REDIS_DB":         "2",
		"COINBOARD_FETCH_ATTEMPTS":   "2",
		"COINBOARD_FETCH_BASE_DELAY": "50ms",
		"COINBOARD_QUOTE_ASSET":      "usdc",
		"COINBOARD_LOG_FORMAT":       "json",
		"API_KEY":                    "unprefixed-ignored",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9000/api" || cfg.APIKey != "demo-key" {
		t.Fatalf("unexpected API settings: %s %s", cfg.APIBaseURL, cfg.APIKey)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis settings: %+v", cfg.Redis)
	}
	if cfg.Fetch.Attempts != 2 || cfg.Fetch.BaseDelay != 50*time.Millisecond {
		t.Fatalf("unexpected fetch settings: %+v", cfg.Fetch)
	}
	if cfg.QuoteAsset != "USDC" {
		t.Fatalf("expected quote asset to be upper-cased, got %s", cfg.QuoteAsset)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %s", cfg.Logging.Format)
	}
}

func TestLoadFromEnv_UsesProcessEnvironment(t *testing.T) {
	t.Setenv("COINBOARD_DB_PATH", "/tmp/coinboard-test.db")
	t.Setenv("COINBOARD_FETCH_ATTEMPTS", "3")

	cfg, err := LoadFromEnv(context.Background())
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.DBPath != "/tmp/coinboard-test.db" || cfg.Fetch.Attempts != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_RejectsMalformedDuration(t *testing.T) {
	_, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"COINBOARD_FETCH_BASE_DELAY": "soon",
	}))
	if err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestValidate_APIBaseURLTrailingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = "https://api.coingecko.com/api/v3/"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate_Fetch(t *testing.T) {
	cases := map[string]func(*Config){
		"zero attempts":       func(c *Config) { c.Fetch.Attempts = 0 },
		"zero base delay":     func(c *Config) { c.Fetch.BaseDelay = 0 },
		"max below base":      func(c *Config) { c.Fetch.MaxDelay = time.Millisecond },
		"zero http timeout":   func(c *Config) { c.HTTPTimeout = 0 },
		"negative redis db":   func(c *Config) { c.Redis.DB = -1 },
		"unknown log format":  func(c *Config) { c.Logging.Format = "xml" },
		"missing db path":     func(c *Config) { c.DBPath = "" },
		"missing quote asset": func(c *Config) { c.QuoteAsset = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
