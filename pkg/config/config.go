// Package config loads seatchart's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/seatchart/config.toml (or the
// platform's user config directory) unless a path is given explicitly. A
// missing default file is not an error: every setting has a default.
//
//	[chart]
//	layout = "stacked"
//	part_order = ["Soprano", "Alto", "Tenor", "Bass"]
//	staggered = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/seating"
)

// Backend names.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the whole configuration file.
type Config struct {
	Chart  ChartConfig  `toml:"chart"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// ChartConfig holds defaults for new charts. Command-line flags and request
// options override them.
type ChartConfig struct {
	Layout    string   `toml:"layout"`
	PartOrder []string `toml:"part_order"`
	Strict    bool     `toml:"strict"`
	Staggered bool     `toml:"staggered"`
	Flipped   bool     `toml:"flipped"`
	Formats   []string `toml:"formats"`
}

// CacheConfig selects the plan and artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"` // none, memory, file or redis
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Namespace     string `toml:"namespace"`
}

// ServerConfig configures `seatchart serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// StoreConfig selects where the server keeps charts.
type StoreConfig struct {
	Backend  string   `toml:"backend"` // memory, file or mongo
	Dir      string   `toml:"dir"`
	MongoURI string   `toml:"mongo_uri"`
	Database string   `toml:"database"`
	Timeout  Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Layout:  string(seating.ModeSideBySide),
			Formats: []string{"json"},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Timeout: Duration{10 * time.Second},
		},
	}
}

// DefaultPath returns the default location of the config file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "seatchart", "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "seatchart", "config.toml"), nil
}

// Load reads the config file at path over the defaults. An empty path means
// [DefaultPath], which may be absent; an explicit path must exist. Unknown
// keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that can be checked without connecting to
// anything.
func (c *Config) Validate() error {
	if _, err := seating.ParseMode(c.Chart.Layout); err != nil {
		return err
	}
	if len(c.Chart.PartOrder) > 0 {
		if err := errors.ValidatePartOrder(c.Chart.PartOrder); err != nil {
			return err
		}
	}
	if err := checkBackend("cache", c.Cache.Backend, BackendNone, BackendMemory, BackendFile, BackendRedis); err != nil {
		return err
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_addr")
	}
	if err := checkBackend("store", c.Store.Backend, BackendMemory, BackendFile, BackendMongo); err != nil {
		return err
	}
	if c.Store.Backend == BackendMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store backend mongo needs mongo_uri")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_body_bytes must not be negative")
	}
	return nil
}

func checkBackend(section, name string, allowed ...string) error {
	if !slices.Contains(allowed, name) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown %s backend %q (must be one of: %s)", section, name, strings.Join(allowed, ", "))
	}
	return nil
}
