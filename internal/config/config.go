package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// storage: file | memory | redis | postgres
	StoreBackend   string `toml:"store_backend"`
	StorePath      string `toml:"store_path"`
	StoreCacheMB   int    `toml:"store_cache_mb"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	RedisKeyPrefix string `toml:"redis_key_prefix"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// http
	AllowedOrigins    []string `toml:"allowed_origins"`
	RateLimitPerMin   int      `toml:"rate_limit_per_min"`
	RateLimitRequests bool     `toml:"rate_limit_requests"`
	// tracker
	ExercisesPath             string `toml:"exercises_path"`
	// nil when the key is omitted, applyDefaults turns that into true
	AllowNavigationDuringRest *bool `toml:"allow_navigation_during_rest"`
	ConsoleEnabled            bool   `toml:"console_enabled"`
	SoundEnabled              bool   `toml:"sound_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the table for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return Parse(env, &t)
}

// Parse picks the env table, fills defaults and validates it.
func Parse(env string, t *Toml) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreFile
	}
	if c.StoreBackend == StoreFile && c.StorePath == "" {
		c.StorePath = "./data/workouttracker.json"
	}
	if c.RedisKeyPrefix == "" {
		c.RedisKeyPrefix = "workouttracker||"
	}
	if c.RateLimitPerMin <= 0 {
		c.RateLimitPerMin = 120
	}
	if c.AllowNavigationDuringRest == nil {
		allow := true
		c.AllowNavigationDuringRest = &allow
	}
}

// NavigationDuringRest reports whether next/prev work while resting.
// Defaults to true when unset.
func (c *Config) NavigationDuringRest() bool {
	return c.AllowNavigationDuringRest == nil || *c.AllowNavigationDuringRest
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	switch c.StoreBackend {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			errs = append(errs, errors.New("redis store needs redis_host and redis_port"))
		}
	case StorePostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			errs = append(errs, errors.New("postgres store needs postgres_host, postgres_port and postgres_db_name"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend: %s", c.StoreBackend))
	}
	if c.RateLimitRequests && (c.RedisHost == "" || c.RedisPort == "") {
		errs = append(errs, errors.New("rate limiting needs redis_host and redis_port"))
	}
	return errors.Join(errs...)
}

// NeedsRedis reports whether any configured component talks to redis.
func (c *Config) NeedsRedis() bool {
	return c.StoreBackend == StoreRedis || c.RateLimitRequests
}
