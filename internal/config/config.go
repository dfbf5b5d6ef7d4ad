// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Storage StorageConfig
	Render  RenderConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"3000"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Encoding   string `envconfig:"LOG_ENCODING" default:"json"`
	OutputPath string `envconfig:"LOG_OUTPUT"`
}

type StorageConfig struct {
	Backend     string `envconfig:"STORAGE_BACKEND" default:"file"`
	Path        string `envconfig:"STORAGE_PATH" default:"resume-data"`
	Key         string `envconfig:"STORAGE_KEY" default:"rb_saved_resumes_v1"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPrefix string `envconfig:"REDIS_PREFIX" default:"resume-builder:"`
}

type RenderConfig struct {
	ChromePath   string        `envconfig:"CHROME_PATH"`
	Scale        float64       `envconfig:"RENDER_SCALE" default:"2"`
	SettleDelay  time.Duration `envconfig:"SETTLE_DELAY" default:"400ms"`
	Timeout      time.Duration `envconfig:"RENDER_TIMEOUT" default:"60s"`
	Pagination   string        `envconfig:"PAGINATION_MODE" default:"crop"`
	SurfaceWidth int           `envconfig:"SURFACE_WIDTH" default:"800"`
	Attempts     int           `envconfig:"RENDER_ATTEMPTS" default:"3"`
	Backoff      time.Duration `envconfig:"RENDER_BACKOFF" default:"1s"`
	ExportDir    string        `envconfig:"EXPORT_DIR" default:"."`
}

// Load reads .env files if present, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises and checks settings.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	c.Render.Pagination = strings.ToLower(strings.TrimSpace(c.Render.Pagination))
	if c.Render.Pagination != "crop" && c.Render.Pagination != "clip" {
		return fmt.Errorf("config: unknown PAGINATION_MODE %q", c.Render.Pagination)
	}
	if c.Render.Scale < 2 {
		c.Render.Scale = 2
	}
	if c.Render.SurfaceWidth <= 0 {
		return fmt.Errorf("config: SURFACE_WIDTH must be positive")
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("config: STORAGE_KEY must not be empty")
	}
	return nil
}
