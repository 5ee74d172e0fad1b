package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int      `yaml:"port"`
		ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
		WriteTimeoutSec int      `yaml:"write_timeout_sec"`
		IdleTimeoutSec  int      `yaml:"idle_timeout_sec"`
		CORSOrigins     []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Auth struct {
		APIKeys []string `yaml:"api_keys"` // empty disables auth
	} `yaml:"auth"`

	RateLimit struct {
		RPS   int `yaml:"rps"` // zero disables
		Burst int `yaml:"burst"`
	} `yaml:"ratelimit"`

	Cache struct {
		TTLSec     int `yaml:"ttl_sec"`
		MaxEntries int `yaml:"max_entries"` // zero means unbounded
	} `yaml:"cache"`

	Provider struct {
		LatencyMS   int     `yaml:"latency_ms"`
		FailureRate float64 `yaml:"failure_rate"`
		Seed        int64   `yaml:"seed"` // zero means time-based
	} `yaml:"provider"`

	Aggregator struct {
		FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
	} `yaml:"aggregator"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql, postgres or none
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Params   string `yaml:"params"`
	} `yaml:"database"`

	Storage struct {
		Enabled   bool   `yaml:"enabled"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		UseSSL    bool   `yaml:"useSSL"`
	} `yaml:"storage"`

	AI struct {
		APIKey string `yaml:"api_key"` // empty disables the advisor
		Model  string `yaml:"model"`
	} `yaml:"ai"`
}

// Load reads and parses the YAML config file, then applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = 15
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 15
	}
	if c.Server.IdleTimeoutSec == 0 {
		c.Server.IdleTimeoutSec = 60
	}
	if c.Cache.TTLSec == 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Aggregator.FetchTimeoutSec == 0 {
		c.Aggregator.FetchTimeoutSec = 10
	}
}

// CacheTTL returns the bundle cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// FetchTimeout returns the per-source fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Aggregator.FetchTimeoutSec) * time.Second
}

// ProviderLatency returns the simulated provider latency as a duration.
func (c *Config) ProviderLatency() time.Duration {
	return time.Duration(c.Provider.LatencyMS) * time.Millisecond
}

// MySQLDSN builds the MySQL connection string.
func (c *Config) MySQLDSN() string {
	params := c.Database.Params
	if params == "" {
		params = "parseTime=true&charset=utf8mb4&loc=UTC"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		params,
	)
}

// PostgresDSN builds the Postgres connection string.
func (c *Config) PostgresDSN() string {
	sslmode := "disable"
	if c.Database.Params != "" {
		sslmode = c.Database.Params
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		sslmode,
	)
}
