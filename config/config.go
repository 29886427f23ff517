package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/revelaction/namefocus/proxy"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "namefocus.toml"

// ErrInvalid wraps every validation error.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// DocPath is a directory of JSON docs or a SQLite file.
	DocPath string `toml:"doc_path"`

	// OutPath is where refined docs are written. Empty means DocPath.
	OutPath string `toml:"out_path"`

	Workers int `toml:"workers"`

	Log Log `toml:"log"`

	Resolver Resolver `toml:"resolver"`

	MetricsFile string `toml:"metrics_file"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Resolver struct {
	Anchor string `toml:"anchor"`

	// Policy overrides the action for dependency labels: "transparent",
	// "ignored" or "terminal".
	Policy map[string]string `toml:"policy"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the TOML file at path. A missing file is not an error when
// path is the default file name.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultFile:
	default:
		return nil, err
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("NAMEFOCUS_DOC_PATH"); v != "" {
		cfg.DocPath = v
	}
	if v := os.Getenv("NAMEFOCUS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NAMEFOCUS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: NAMEFOCUS_WORKERS must be a non negative integer, got %q", ErrInvalid, v)
		}
		cfg.Workers = n
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}
	if strings.TrimSpace(cfg.Resolver.Anchor) == "" {
		cfg.Resolver.Anchor = proxy.DefaultAnchor
	}
}

func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}

	if _, err := proxy.ParsePolicy(c.Resolver.Policy); err != nil {
		return fmt.Errorf("%w: resolver policy: %v", ErrInvalid, err)
	}

	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return l, nil
}

// ResolverOptions returns the resolver options for the config.
func (c *Config) ResolverOptions() ([]proxy.Option, error) {
	p, err := proxy.ParsePolicy(c.Resolver.Policy)
	if err != nil {
		return nil, err
	}
	return []proxy.Option{proxy.WithAnchor(c.Resolver.Anchor), proxy.WithPolicy(p)}, nil
}

// Output returns where refined docs are written.
func (c *Config) Output() string {
	if c.OutPath != "" {
		return c.OutPath
	}
	return c.DocPath
}
