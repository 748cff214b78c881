package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/pagination"
)

// Environment variables that override file configuration.
const (
	EnvHome     = "CONTENTLIST_HOME"
	EnvAPIURL   = "CONTENTLIST_API_URL"
	EnvToken    = "CONTENTLIST_TOKEN"
	EnvOrgID    = "CONTENTLIST_ORG_ID"
	EnvLogLevel = "CONTENTLIST_LOG_LEVEL"
	EnvLogFile  = "CONTENTLIST_LOG_FILE"
)

// Defaults written by config init.
const (
	DefaultAPIURL           = "http://localhost:8000/api/content-sources/v1"
	DefaultTimeoutSeconds   = 30
	DefaultRateLimit        = 10.0
	DefaultSearchDebounceMS = 300
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	configFileName          = "config.yaml"
)

// Validation errors.
var (
	ErrInvalidPageSize = errors.New("listing.default_page_size must be one of 10, 20, 50, 100")
	ErrInvalidTimeout  = errors.New("api.timeout_seconds must be positive")
	ErrInvalidDebounce = errors.New("listing.search_debounce_ms must not be negative")
	ErrInvalidLogLevel = errors.New("logging.level must be one of trace, debug, info, warn, error")
	ErrInvalidCacheTTL = errors.New("cache.ttl_seconds out of range")
)

// Config is the contentlist configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Listing ListingConfig `yaml:"listing" json:"listing"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	configPath string
}

// APIConfig points the HTTP source at the content API.
type APIConfig struct {
	URL            string  `yaml:"url"             json:"url"`
	Token          string  `yaml:"token,omitempty" json:"-"`
	OrgID          string  `yaml:"org_id,omitempty" json:"org_id,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit"      json:"rate_limit"`
}

// ListingConfig holds listing behaviour.
type ListingConfig struct {
	// DefaultPageSize is used when no page size preference has been stored.
	DefaultPageSize  int `yaml:"default_page_size"  json:"default_page_size"`
	SearchDebounceMS int `yaml:"search_debounce_ms" json:"search_debounce_ms"`
}

// CacheConfig configures the on-disk result cache used by the CLI.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Default returns the built-in configuration without reading any files.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:            DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			RateLimit:      DefaultRateLimit,
		},
		Listing: ListingConfig{
			DefaultPageSize:  pagination.DefaultPageSize,
			SearchDebounceMS: DefaultSearchDebounceMS,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: cache.DefaultTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns the default configuration overlaid with the global config file
// (when present) and environment overrides. Read errors leave the defaults
// in place.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err != nil {
		cfg.ApplyEnv()
		return cfg
	}
	cfg.configPath = filepath.Join(dir, configFileName)
	_ = cfg.loadFile(cfg.configPath)
	cfg.ApplyEnv()
	return cfg
}

// Load reads the configuration from path on top of the defaults and applies
// environment overrides. A missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvOrgID); v != "" {
		c.API.OrgID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	c.Cache.Enabled = cache.GetCacheEnabledFromEnv(c.Cache.Enabled)
	c.Cache.TTLSeconds = cache.GetTTLFromEnv(c.Cache.TTLSeconds)
	if dir := cache.GetCacheDirFromEnv(); dir != "" {
		c.Cache.Directory = dir
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !pagination.IsAllowedPageSize(c.Listing.DefaultPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Listing.DefaultPageSize)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.API.TimeoutSeconds)
	}
	if c.Listing.SearchDebounceMS < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDebounce, c.Listing.SearchDebounceMS)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Cache.TTLSeconds < cache.MinTTLSeconds || c.Cache.TTLSeconds > cache.MaxTTLSeconds {
		return fmt.Errorf("%w: got %d, want %d..%d",
			ErrInvalidCacheTTL, c.Cache.TTLSeconds, cache.MinTTLSeconds, cache.MaxTTLSeconds)
	}
	return nil
}

// Save writes the configuration to its path, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return err
		}
		c.configPath = filepath.Join(dir, configFileName)
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// ConfigPath returns the file the configuration was loaded from or will be
// saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Timeout returns the API request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// TTL returns the cache TTL.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// CacheDir returns the configured cache directory or the default under the
// config directory.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	return GetCacheDir()
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.API.Token != "" {
		cp.API.Token = "********"
	}
	return &cp
}
