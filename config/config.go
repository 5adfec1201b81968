package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host       string
		Port       int
		Storage    string
		Token      string
		LogQueries bool
	}
	Console Console
	Live    Live
}

// Console configures the admin console client.
type Console struct {
	BaseURL  string
	Token    string
	Debounce time.Duration
	PerPage  int
	Timeout  time.Duration
}

type Live struct {
	URL          string
	PollInterval time.Duration
}

func Default() Config {
	var cfg Config
	cfg.App.Host = "0.0.0.0"
	cfg.App.Port = 3000
	cfg.App.Storage = StorageMemory
	cfg.Console = Console{
		BaseURL:  "http://localhost:3000",
		Debounce: 300 * time.Millisecond,
		Timeout:  15 * time.Second,
	}
	cfg.Live = Live{
		URL:          "ws://localhost:3000/ws/posts",
		PollInterval: 30 * time.Second,
	}

	return cfg
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	if cfg.App.Storage != StorageMemory && cfg.App.Storage != StoragePostgres {
		return cfg, fmt.Errorf("unknown storage %q", cfg.App.Storage)
	}

	return cfg, nil
}

// ParseDatabaseURL builds pg.Options from a connection URL, applying pool settings.
func ParseDatabaseURL(databaseURL string, maxConns int, maxConnLifetime string) (*pg.Options, error) {
	opt, err := pg.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	opt.MaxRetries = 3
	if maxConns > 0 {
		opt.PoolSize = maxConns
	}

	if maxConnLifetime != "" {
		lifetime, err := time.ParseDuration(maxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse db max conn lifetime: %w", err)
		}
		opt.MaxConnAge = lifetime
	}

	return opt, nil
}
