package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dateq/pkg/domain"
)

// DefaultPath is where Load looks when no config path is given.
const DefaultPath = "dateq.yaml"

// Config holds all dateq configuration.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Search defaults applied to every request
	Search SearchConfig `yaml:"search"`

	// HTTP server settings
	Server ServerConfig `yaml:"server"`

	// Result cache backend (disabled unless addr is set)
	Redis RedisConfig `yaml:"redis"`

	// File-backed result cache, used when Redis is not configured
	Cache CacheConfig `yaml:"cache"`
}

// SearchConfig mirrors domain.SearchOptions in config-file form.
// Zero values defer to the engine defaults.
type SearchConfig struct {
	Operators string  `yaml:"operators"`
	Factorial bool    `yaml:"factorial"`
	MaxGroups int     `yaml:"max_groups"`
	Tolerance float64 `yaml:"tolerance"`
	Workers   int     `yaml:"workers"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig configures the Redis result store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
	// TTL is a Go duration string ("24h", "90m"). Empty means no expiry.
	TTL string `yaml:"ttl"`
}

// CacheConfig configures the file-backed result store.
type CacheConfig struct {
	Dir string `yaml:"dir"`
	// EncryptionKey is a hex-encoded 32-byte AES key. When set, cached
	// results are encrypted at rest regardless of backend.
	EncryptionKey string `yaml:"encryption_key"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error: the defaults are returned as-is. Environment variables
// override the file for deployment-sensitive values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DATEQ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DATEQ_HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATEQ_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("DATEQ_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("DATEQ_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("DATEQ_CACHE_ENCRYPTION_KEY"); v != "" {
		c.Cache.EncryptionKey = v
	}
}

// SearchOptions converts the config block to engine options. Zero
// fields stay zero; the engine normalizes them.
func (c *Config) SearchOptions() domain.SearchOptions {
	return domain.SearchOptions{
		Operators: domain.OperatorSet(c.Search.Operators),
		Factorial: c.Search.Factorial,
		MaxGroups: c.Search.MaxGroups,
		Tolerance: c.Search.Tolerance,
		Workers:   c.Search.Workers,
	}
}

// CacheEnabled reports whether any result store backend is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != "" || c.Cache.Dir != ""
}

// EncryptionKey decodes the configured cache encryption key. Returns
// nil when no key is set.
func (c *Config) EncryptionKey() ([]byte, error) {
	if c.Cache.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.Cache.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid cache encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("cache encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// RedisTTL parses the configured TTL. Empty means no expiry.
func (c *Config) RedisTTL() (time.Duration, error) {
	if c.Redis.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", c.Redis.TTL, err)
	}
	return ttl, nil
}
