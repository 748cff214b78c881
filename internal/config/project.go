package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/contentlist/internal/logging"
)

// EnvProjectDir points at a project directory explicitly.
const EnvProjectDir = "CONTENTLIST_PROJECT_DIR"

// projectDirName is the per-project configuration directory.
const projectDirName = ".contentlist"

// resolvedProjectDir holds the resolved project directory path for use
// by other config functions during the lifetime of a CLI invocation.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .contentlist directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. CONTENTLIST_PROJECT_DIR env var
//  3. the nearest ancestor of startDir holding a .contentlist directory
//
// Returns an absolute path or "" if no project is found. The global
// configuration directory is never treated as a project. Does not create
// anything.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir := toAbsProjectDir(ctx, startDir)
	globalDir, _ := GetConfigDir()
	for {
		if dir != globalDir {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
		parent := filepath.Dir(filepath.Dir(dir))
		next := filepath.Join(parent, projectDirName)
		if next == dir {
			return ""
		}
		dir = next
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error; use global settings.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return cfg
	}
	// Environment overrides still win over the project file.
	cfgCopy.ApplyEnv()

	return cfgCopy
}

// toAbsProjectDir converts dir to an absolute path and appends ".contentlist".
// If the path already ends with ".contentlist", it is returned as-is (after
// resolving to an absolute path) to prevent double-append.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
