// Package config loads settings for the command line, the server and the
// lambda from a TOML file, a .env file and the environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/chiply/cn-diagrams/internal/graph"
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/parser"
	"github.com/chiply/cn-diagrams/internal/render"
)

// DefaultFile is read when no config path is given and the file exists.
const DefaultFile = "cndiagram.toml"

// Environment variables that override file settings.
const (
	EnvAddr             = "CNDIAGRAM_ADDR"
	EnvLogLevel         = "CNDIAGRAM_LOG_LEVEL"
	EnvDescriptionLimit = "CNDIAGRAM_DESCRIPTION_LIMIT"
	EnvCacheSize        = "CNDIAGRAM_CACHE_SIZE"
	EnvRankDir          = "CNDIAGRAM_RANK_DIR"
)

// ErrInvalid is returned when a setting is out of range.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel string       `toml:"log_level"`
	Parse    ParseConfig  `toml:"parse"`
	Graph    GraphConfig  `toml:"graph"`
	Render   RenderConfig `toml:"render"`
	Server   ServerConfig `toml:"server"`
}

type ParseConfig struct {
	ValidateReferences bool `toml:"validate_references"`
}

type GraphConfig struct {
	DescriptionLimit int `toml:"description_limit"`
}

type RenderConfig struct {
	RankDir string `toml:"rank_dir"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// CacheSize is the number of parse results kept in memory.
	CacheSize int `toml:"cache_size"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Parse:    ParseConfig{ValidateReferences: parser.DefaultOptions().ValidateReferences},
		Graph:    GraphConfig{DescriptionLimit: graph.DefaultDescriptionLimit},
		Render:   RenderConfig{RankDir: render.DefaultRankDir},
		Server: ServerConfig{
			Addr:         ":8080",
			CacheSize:    256,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load builds the configuration. An explicit path must exist; with an empty
// path DefaultFile is read if present. A .env file in the working directory
// is loaded into the environment first, without replacing variables that are
// already set.
func Load(path string) (Config, error) {
	cfg := Default()
	_ = godotenv.Load()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRankDir)); v != "" {
		c.Render.RankDir = v
	}
	if err := envInt(EnvDescriptionLimit, &c.Graph.DescriptionLimit); err != nil {
		return err
	}
	return envInt(EnvCacheSize, &c.Server.CacheSize)
}

func envInt(key string, dst *int) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, raw)
	}
	*dst = v
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Graph.DescriptionLimit < 1 {
		return fmt.Errorf("%w: description_limit must be positive", ErrInvalid)
	}
	switch c.Render.RankDir {
	case "TB", "LR", "BT", "RL":
	default:
		return fmt.Errorf("%w: rank_dir %q is not one of TB, LR, BT, RL", ErrInvalid, c.Render.RankDir)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server addr is empty", ErrInvalid)
	}
	if c.Server.CacheSize <= 0 {
		return fmt.Errorf("%w: cache_size must be positive", ErrInvalid)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalid)
	}
	return nil
}

// ParserOptions returns the parser settings.
func (c Config) ParserOptions() parser.Options {
	return parser.Options{ValidateReferences: c.Parse.ValidateReferences}
}

// GraphOptions returns the projection settings.
func (c Config) GraphOptions() graph.Options {
	return graph.Options{DescriptionLimit: c.Graph.DescriptionLimit}
}

// RenderOptions returns the DOT settings.
func (c Config) RenderOptions() render.Options {
	return render.Options{RankDir: c.Render.RankDir}
}
