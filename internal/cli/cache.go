package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/config"
)

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Result cache commands"}
	cmd.AddCommand(newCacheClearCmd(), newCacheStatusCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached listing pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openFileCache()
			if err != nil {
				return err
			}
			if expiredOnly {
				err = store.CleanupExpired()
			} else {
				err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			newCmdPrinter(cmd).Success("Cache cleared (%s)", store.Directory())
			return nil
		},
	}
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired entries")
	return cmd
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache location, TTL and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cfg.Cache.Enabled {
				cmd.Println("Cache: disabled")
				return nil
			}
			store, err := openFileCache()
			if err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			cmd.Printf("Directory: %s\n", store.Directory())
			cmd.Printf("TTL: %s\n", cache.FormatDuration(store.TTL()))
			cmd.Printf("Entries: %d\n", count)
			return nil
		},
	}
}

// openFileCache opens the persistent result cache even when caching is
// disabled, so stale entries can still be cleared.
func openFileCache() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	store, err := cache.NewFileStore(dir, true, cfg.Cache.TTL())
	if err != nil {
		return nil, err
	}
	return store, nil
}
