// Package config loads dashboard settings from config.yaml and DASHBOARD_* env vars.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DASHBOARD"

// Config holds all configuration for the dashboard API
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// GeneratorConfig controls seeded dataset generation
type GeneratorConfig struct {
	DefaultSeed    int64 `mapstructure:"default_seed"`
	InitialAttacks int   `mapstructure:"initial_attacks"` // attacks per dashboard dataset
	MaxAttacks     int   `mapstructure:"max_attacks"`     // upper bound for ?count=
}

// FeedConfig controls the simulated live feed
type FeedConfig struct {
	Capacity    int           `mapstructure:"capacity"`
	Initial     int           `mapstructure:"initial"` // seeded attacks the feed starts with
	MinInterval time.Duration `mapstructure:"min_interval"`
	Jitter      time.Duration `mapstructure:"jitter"`
}

// RedisConfig configures the optional live feed mirror
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
	Channel  string `mapstructure:"channel"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads config.yaml from the working directory or ./config if present,
// then applies DASHBOARD_* environment overrides (DASHBOARD_FEED_CAPACITY, ...).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	return load(v)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8888")
	v.SetDefault("server.mode", "release")

	v.SetDefault("generator.default_seed", 42)
	v.SetDefault("generator.initial_attacks", 50)
	v.SetDefault("generator.max_attacks", 1000)

	v.SetDefault("feed.capacity", 20)
	v.SetDefault("feed.initial", 20)
	v.SetDefault("feed.min_interval", "2s")
	v.SetDefault("feed.jitter", "1s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", "feed:attacks")
	v.SetDefault("redis.channel", "attacks:live")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

var validModes = map[string]bool{"": true, "debug": true, "release": true, "test": true}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errors.New("server.addr must not be empty")
	case !validModes[c.Server.Mode]:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	case c.Generator.MaxAttacks < 0:
		return fmt.Errorf("generator.max_attacks must not be negative, got %d", c.Generator.MaxAttacks)
	case c.Feed.Capacity <= 0:
		return fmt.Errorf("feed.capacity must be positive, got %d", c.Feed.Capacity)
	case c.Feed.MinInterval <= 0:
		return fmt.Errorf("feed.min_interval must be positive, got %s", c.Feed.MinInterval)
	case c.Feed.Jitter < 0:
		return fmt.Errorf("feed.jitter must not be negative, got %s", c.Feed.Jitter)
	case c.Redis.Enabled && c.Redis.Addr == "":
		return errors.New("redis.addr is required when redis is enabled")
	}
	return nil
}
