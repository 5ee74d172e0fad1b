package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9000
  read_timeout_sec: 5
  write_timeout_sec: 10
  idle_timeout_sec: 30
  cors_origins:
    - https://dashboard.example.com
auth:
  api_keys:
    - key-1
    - key-2
ratelimit:
  rps: 10
  burst: 20
cache:
  ttl_sec: 600
  max_entries: 500
provider:
  latency_ms: 150
  failure_rate: 0.1
  seed: 42
aggregator:
  fetch_timeout_sec: 3
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: green
  password: pulse
  name: greenpulse
storage:
  enabled: true
  endpoint: minio.internal:9000
  accessKey: ak
  secretKey: sk
  bucket: reports
  region: us-east-1
  useSSL: false
ai:
  api_key: sk-test
  model: gpt-4o
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
	assert.Equal(t, 10, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 500, cfg.Cache.MaxEntries)
	assert.Equal(t, 150*time.Millisecond, cfg.ProviderLatency())
	assert.Equal(t, 0.1, cfg.Provider.FailureRate)
	assert.Equal(t, int64(42), cfg.Provider.Seed)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "reports", cfg.Storage.Bucket)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, 15, cfg.Server.WriteTimeoutSec)
	assert.Equal(t, 60, cfg.Server.IdleTimeoutSec)
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())

	// optional subsystems stay off without explicit config
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Zero(t, cfg.RateLimit.RPS)
	assert.Empty(t, cfg.Database.Driver)
	assert.False(t, cfg.Storage.Enabled)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not a mapping"))
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	var cfg Config
	cfg.Database.User = "green"
	cfg.Database.Password = "pulse"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 3306
	cfg.Database.Name = "greenpulse"

	assert.Equal(t,
		"green:pulse@tcp(db.internal:3306)/greenpulse?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())

	cfg.Database.Params = "parseTime=true"
	assert.Equal(t, "green:pulse@tcp(db.internal:3306)/greenpulse?parseTime=true", cfg.MySQLDSN())
}

func TestPostgresDSN(t *testing.T) {
	var cfg Config
	cfg.Database.User = "green"
	cfg.Database.Password = "pulse"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5432
	cfg.Database.Name = "greenpulse"

	assert.Equal(t,
		"host=db.internal port=5432 user=green password=pulse dbname=greenpulse sslmode=disable",
		cfg.PostgresDSN())

	cfg.Database.Params = "require"
	assert.Equal(t,
		"host=db.internal port=5432 user=green password=pulse dbname=greenpulse sslmode=require",
		cfg.PostgresDSN())
}
