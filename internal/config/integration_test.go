package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/logging"
)

// clearEnv isolates a test from the caller's environment.
func clearEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	for _, key := range []string{
		EnvAPIURL, EnvToken, EnvOrgID, EnvLogLevel, EnvLogFile,
		cache.EnvCacheEnabled, cache.EnvTTLSeconds, cache.EnvCacheDir,
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestGlobalConfig(t *testing.T) {
	clearEnv(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultAPIURL, cfg.API.URL)

	// Subsequent calls return the same instance.
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())

	replacement := Default()
	replacement.Logging.Level = "warn"
	SetGlobalConfig(replacement)
	assert.Same(t, replacement, GetGlobalConfig())
	assert.Equal(t, "warn", GetLogLevel())
}

func TestConfigGetters(t *testing.T) {
	clearEnv(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/contentlist-test.log"

	assert.Equal(t, "debug", GetLogLevel())
	assert.Equal(t, "/tmp/contentlist-test.log", GetLogFile())

	lc := GetLoggingConfig()
	lcfg := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, lcfg.Output)
	assert.Equal(t, "/tmp/contentlist-test.log", lcfg.File)

	lc.File = ""
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)
}

func TestDirectories(t *testing.T) {
	home := clearEnv(t)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	cacheDir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), cacheDir)

	prefsPath, err := GetPrefsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "preferences.json"), prefsPath)

	GetGlobalConfig().Logging.File = filepath.Join(home, "logs", "contentlist.log")
	require.NoError(t, EnsureSubDirs())

	for _, d := range []string{home, cacheDir, filepath.Join(home, "logs")} {
		info, statErr := os.Stat(d)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}
}

func TestGetConfigDir_DefaultsToHome(t *testing.T) {
	t.Setenv(EnvHome, "")
	userHome := t.TempDir()
	t.Setenv("HOME", userHome)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, ".contentlist"), dir)
}

func TestNew_ReadsGlobalFileAndEnv(t *testing.T) {
	home := clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
api:
  url: https://file.example.com/api
  timeout_seconds: 12
listing:
  default_page_size: 50
  search_debounce_ms: 200
`), 0o600))
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(cache.EnvTTLSeconds, "60")

	cfg := New()
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, "https://file.example.com/api", cfg.API.URL)
	assert.Equal(t, 12*time.Second, cfg.API.Timeout())
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 50, cfg.Listing.DefaultPageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
	require.NoError(t, cfg.Validate())
}

func TestNew_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg := New()
	assert.Equal(t, Default().API, cfg.API)
	assert.Equal(t, Default().Listing, cfg.Listing)
	require.NoError(t, cfg.Validate())
}

func TestLoadAndSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.SetConfigPath(path)
	cfg.API.OrgID = "org-7"
	cfg.Listing.DefaultPageSize = 100
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "org-7", loaded.API.OrgID)
	assert.Equal(t, 100, loaded.Listing.DefaultPageSize)
	assert.Equal(t, path, loaded.ConfigPath())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listing:\n  default_page_size: 25\n"), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "page size", mutate: func(c *Config) { c.Listing.DefaultPageSize = 7 }, want: ErrInvalidPageSize},
		{name: "timeout", mutate: func(c *Config) { c.API.TimeoutSeconds = 0 }, want: ErrInvalidTimeout},
		{name: "debounce", mutate: func(c *Config) { c.Listing.SearchDebounceMS = -1 }, want: ErrInvalidDebounce},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, want: ErrInvalidLogLevel},
		{name: "cache ttl", mutate: func(c *Config) { c.Cache.TTLSeconds = 1 }, want: ErrInvalidCacheTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.API.Token = "secret"

	red := cfg.Redacted()
	assert.Equal(t, "********", red.API.Token)
	assert.Equal(t, "secret", cfg.API.Token)
}

func TestCacheDir(t *testing.T) {
	home := clearEnv(t)

	cfg := Default()
	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), dir)

	t.Setenv(cache.EnvCacheDir, "/var/tmp/contentlist")
	cfg.ApplyEnv()
	dir, err = cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/contentlist", dir)
}
