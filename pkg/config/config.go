// Package config loads the steering configuration file.
//
// The file is TOML with four optional tables:
//
//	[search]
//	max_depth = 5
//	max_paths = 100
//	min_influence = 0.1
//	top = 5
//
//	[cache]
//	backend = "redis"        # file, redis, mongo or none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[log]
//	level = "debug"
//
// Missing keys keep their defaults. [Load] with an empty path reads
// [DefaultPath] and treats a missing file as empty.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/metasystem/steering/pkg/cache"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/influence"
)

const appName = "steering"

// Config is the complete configuration.
type Config struct {
	Search SearchConfig `toml:"search"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// SearchConfig holds the default search limits and recommendation count.
type SearchConfig struct {
	MaxDepth     int     `toml:"max_depth" validate:"gt=0"`
	MaxPaths     int     `toml:"max_paths" validate:"gt=0"`
	MinInfluence float64 `toml:"min_influence"`
	Top          int     `toml:"top" validate:"gte=0"`
}

// Limits returns the search limits.
func (s SearchConfig) Limits() influence.Limits {
	return influence.Limits{
		MaxDepth:     s.MaxDepth,
		MaxPaths:     s.MaxPaths,
		MinInfluence: s.MinInfluence,
	}
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string        `toml:"backend" validate:"oneof=file redis mongo none"`
	Dir             string        `toml:"dir"`
	TTL             time.Duration `toml:"ttl" validate:"gte=0"`
	RedisAddr       string        `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword   string        `toml:"redis_password"`
	RedisDB         int           `toml:"redis_db" validate:"gte=0"`
	MongoURI        string        `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
}

// Options converts the section into cache.Open options.
func (c CacheConfig) Options() cache.Options {
	return cache.Options{
		Backend: c.Backend,
		Dir:     c.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
	}
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" validate:"gte=0"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			MaxDepth:     influence.MaxDepth,
			MaxPaths:     influence.MaxPaths,
			MinInfluence: influence.MinInfluenceThreshold,
			Top:          influence.DefaultTop,
		},
		Cache: CacheConfig{
			Backend:         cache.BackendFile,
			TTL:             cache.SimulationTTL,
			MongoDatabase:   appName,
			MongoCollection: "simulations",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.New(apperrors.ErrCodeInvalidInput, "config: %s fails %q", tomlPath(fe.Namespace()), fe.Tag())
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "config")
	}
	return nil
}

// tomlPath turns "Config.Search.MaxDepth" into "search.max_depth".
func tomlPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Load reads path over the defaults and validates the result. An empty path
// means DefaultPath, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/steering/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
