package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/prefs"
	"github.com/rshade/contentlist/internal/remote"
)

// demoItemCount is the number of repositories served by --demo.
const demoItemCount = 137

// cacheKind selects the result cache an engine is built with.
type cacheKind int

const (
	cacheNone cacheKind = iota
	// cacheFile persists pages across invocations.
	cacheFile
	// cacheMemory lives for one process, for the interactive browser.
	cacheMemory
)

// newSource returns the listing source for this invocation.
func newSource(cmd *cobra.Command, cfg *config.Config) (listing.Source, error) {
	if demo, _ := cmd.Flags().GetBool(flagDemo); demo {
		return remote.NewMemorySource(remote.DemoItems(demoItemCount)...), nil
	}
	src, err := remote.NewHTTPSource(remote.HTTPOptions{
		BaseURL:   cfg.API.URL,
		Token:     cfg.API.Token,
		OrgID:     cfg.API.OrgID,
		Timeout:   cfg.API.Timeout(),
		RateLimit: cfg.API.RateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return src, nil
}

// newEngine builds a listing engine over the configured source with the
// page size persisted in the preferences file.
func newEngine(cmd *cobra.Command, kind cacheKind) (*listing.Engine, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	src, err := newSource(cmd, cfg)
	if err != nil {
		return nil, err
	}

	prefsPath, err := config.GetPrefsPath()
	if err != nil {
		return nil, fmt.Errorf("resolving preferences path: %w", err)
	}
	store, err := prefs.NewFileStore(prefsPath)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	log := logging.ComponentLogger(logging.Default(), "listing")
	if loadErr := store.LoadError(); loadErr != nil {
		log.Warn().Err(loadErr).Str("path", prefsPath).
			Msg("preferences file is unreadable, using defaults")
	}

	// Demo data lives in this process only; deletes must not survive in a
	// persistent cache.
	if demo, _ := cmd.Flags().GetBool(flagDemo); demo && kind == cacheFile {
		kind = cacheMemory
	}
	results, err := newResultCache(cfg, kind)
	if err != nil {
		return nil, err
	}

	return listing.NewEngine(src, listing.Options{
		Cache:           results,
		CacheNamespace:  sourceNamespace(cmd, cfg),
		DefaultPageSize: cfg.Listing.DefaultPageSize,
		Prefs:           prefs.NewAdapter(store, log),
		Logger:          log,
	})
}

// sourceNamespace identifies the data source for cache keys, so one cache
// directory can hold pages from several APIs, organizations or tokens.
func sourceNamespace(cmd *cobra.Command, cfg *config.Config) string {
	if demo, _ := cmd.Flags().GetBool(flagDemo); demo {
		return "demo"
	}
	sum := sha256.Sum256([]byte(cfg.API.URL + "\x00" + cfg.API.OrgID + "\x00" + cfg.API.Token))
	return hex.EncodeToString(sum[:8])
}

// newResultCache returns a nil Store when caching is off.
func newResultCache(cfg *config.Config, kind cacheKind) (cache.Store, error) {
	if !cfg.Cache.Enabled || kind == cacheNone {
		return nil, nil //nolint:nilnil // A nil store disables caching.
	}
	if kind == cacheMemory {
		return cache.NewMemoryStore(cache.DefaultMemoryEntries, cfg.Cache.TTL()), nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	fs, err := cache.NewFileStore(dir, true, cfg.Cache.TTL())
	if err != nil {
		return nil, err
	}
	return fs, nil
}
