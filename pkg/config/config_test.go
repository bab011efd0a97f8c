package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/influence"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Search.Limits() != influence.DefaultLimits() {
		t.Errorf("search limits = %+v, want %+v", cfg.Search.Limits(), influence.DefaultLimits())
	}
	if cfg.Search.Top != influence.DefaultTop {
		t.Errorf("top = %d", cfg.Search.Top)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[search]
max_depth = 3
min_influence = 0.25

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "1h"

[server]
addr = "127.0.0.1:9000"
read_timeout = "2s"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Search.MaxDepth != 3 || cfg.Search.MinInfluence != 0.25 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Search.MaxPaths != influence.MaxPaths {
		t.Errorf("unset max_paths should keep default, got %d", cfg.Search.MaxPaths)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if opts := cfg.Cache.Options(); opts.Redis.Addr != "cache:6379" || opts.Backend != "redis" {
		t.Errorf("cache options = %+v", opts)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("unset write_timeout should keep default, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode apperrors.Code
		wantMsg  string
	}{
		{"Syntax", "[search\n", apperrors.ErrCodeInvalidFormat, "parse config"},
		{"ZeroDepth", "[search]\nmax_depth = 0\n", apperrors.ErrCodeInvalidInput, "search.max_depth"},
		{"UnknownBackend", "[cache]\nbackend = \"memcached\"\n", apperrors.ErrCodeInvalidInput, "cache.backend"},
		{"RedisWithoutAddr", "[cache]\nbackend = \"redis\"\n", apperrors.ErrCodeInvalidInput, "cache.redis_addr"},
		{"MongoWithoutURI", "[cache]\nbackend = \"mongo\"\n", apperrors.ErrCodeInvalidInput, "cache.mongo_uri"},
		{"BadLevel", "[log]\nlevel = \"loud\"\n", apperrors.ErrCodeInvalidInput, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !apperrors.Is(err, tt.wantCode) {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file error = %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing default file should yield defaults")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "steering", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestTOMLPath(t *testing.T) {
	tests := map[string]string{
		"Config.Search.MaxDepth": "search.max_depth",
		"Config.Cache.RedisDB":   "cache.redis_db",
		"Config.Cache.TTL":       "cache.ttl",
		"Config.Log.Level":       "log.level",
	}
	for in, want := range tests {
		if got := tomlPath(in); got != want {
			t.Errorf("tomlPath(%q) = %q, want %q", in, got, want)
		}
	}
}
