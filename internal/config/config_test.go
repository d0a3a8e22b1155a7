package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
port = 9100
log_level = "debug"
log_to_stdout = true
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "9101"
store_backend = "file"
store_path = "/tmp/wt/store.json"
allowed_origins = ["http://localhost:3000"]
allow_navigation_during_rest = true
console_enabled = true

[production]
environment = "prod-eu"
port = 9100
log_level = "info"
logs_path = "/var/log/workouttracker/service.log"
store_backend = "redis"
redis_host = "localhost"
redis_port = "6379"
rate_limit_requests = true
rate_limit_per_min = 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, testToml)

	dev, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "dev", dev.Environment)
	assert.Equal(t, 9100, dev.Port)
	assert.Equal(t, "localhost", dev.Host)
	assert.Equal(t, "debug", dev.LogLevel)
	assert.Equal(t, StoreFile, dev.StoreBackend)
	assert.Equal(t, "/tmp/wt/store.json", dev.StorePath)
	assert.Equal(t, []string{"http://localhost:3000"}, dev.AllowedOrigins)
	assert.True(t, dev.NavigationDuringRest())
	assert.True(t, dev.ConsoleEnabled)
	assert.Equal(t, 120, dev.RateLimitPerMin)
	assert.False(t, dev.NeedsRedis())

	prod, err := Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, "prod-eu", prod.Environment)
	assert.Equal(t, StoreRedis, prod.StoreBackend)
	assert.Equal(t, "workouttracker||", prod.RedisKeyPrefix)
	assert.Equal(t, 30, prod.RateLimitPerMin)
	assert.True(t, prod.NeedsRedis())
	// key omitted in the production table
	require.NotNil(t, prod.AllowNavigationDuringRest)
	assert.True(t, *prod.AllowNavigationDuringRest)
	assert.True(t, prod.NavigationDuringRest())
}

func TestLoad_NavigationDuringRest(t *testing.T) {
	path := writeConfig(t, "[development]\nport = 9100\n")
	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.True(t, cfg.NavigationDuringRest())

	path = writeConfig(t, "[development]\nport = 9100\nallow_navigation_during_rest = false\n")
	cfg, err = Load("dev", path)
	require.NoError(t, err)
	assert.False(t, cfg.NavigationDuringRest())

	assert.True(t, (&Config{}).NavigationDuringRest())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, testToml)
	_, err = Load("staging", path)
	assert.ErrorContains(t, err, "unknown env: staging")

	path = writeConfig(t, "[development]\nport = 9100\n")
	_, err = Load("prod", path)
	assert.ErrorContains(t, err, "no config for env")

	path = writeConfig(t, "[development\nport = ")
	_, err = Load("dev", path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid memory",
			cfg:  Config{Port: 80, StoreBackend: StoreMemory},
		},
		{
			name:    "bad port",
			cfg:     Config{Port: 0, StoreBackend: StoreMemory},
			wantErr: "invalid port",
		},
		{
			name:    "unknown backend",
			cfg:     Config{Port: 80, StoreBackend: "sqlite"},
			wantErr: "unknown store backend",
		},
		{
			name:    "redis without host",
			cfg:     Config{Port: 80, StoreBackend: StoreRedis},
			wantErr: "redis store needs",
		},
		{
			name:    "postgres without db",
			cfg:     Config{Port: 80, StoreBackend: StorePostgres, PostgresHost: "h", PostgresPort: "5432"},
			wantErr: "postgres store needs",
		},
		{
			name:    "rate limit without redis",
			cfg:     Config{Port: 80, StoreBackend: StoreMemory, RateLimitRequests: true},
			wantErr: "rate limiting needs",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
