package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names shared by every subcommand.
const (
	flagDebug      = "debug"
	flagConfig     = "config"
	flagAPIURL     = "api-url"
	flagProjectDir = "project-dir"
	flagDemo       = "demo"
	flagCacheTTL   = "cache-ttl"
	flagNoColor    = "no-color"
)

// NewRootCmd creates the root Cobra command for the contentlist CLI.
// It wires up configuration, logging and tracing, and the list, delete,
// browse, config and cache subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "contentlist",
		Short:        "Browse and manage content repositories",
		Long:         "contentlist: list, filter, page through and delete content repositories",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Negative TTLs would make every cached page expire before it is written.
			cacheTTL, _ := cmd.Flags().GetInt(flagCacheTTL)
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagConfig, "", "config file (default is $CONTENTLIST_HOME/config.yaml)")
	cmd.PersistentFlags().String(flagAPIURL, "", "content-sources API base URL (overrides config and env)")
	cmd.PersistentFlags().String(flagProjectDir, "", "project directory holding a .contentlist overlay")
	cmd.PersistentFlags().Bool(flagDemo, false, "use built-in demo repositories instead of the API")
	cmd.PersistentFlags().
		Int(flagCacheTTL, 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")
	cmd.PersistentFlags().Bool(flagNoColor, false, "disable colored output")

	cmd.AddCommand(
		NewListCmd(), NewDeleteCmd(), NewBrowseCmd(),
		newConfigCmd(), newCacheCmd(),
	)

	return cmd
}

// loadConfig resolves the project overlay and builds the configuration for
// this invocation. CLI flags override config file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	projectFlag, _ := cmd.Flags().GetString(flagProjectDir)
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, projectFlag, wd)
	config.SetResolvedProjectDir(projectDir)

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.NewWithProjectDir(ctx, projectDir)
	}

	if cmd.Flags().Changed(flagAPIURL) {
		cfg.API.URL, _ = cmd.Flags().GetString(flagAPIURL)
	}
	if ttl, _ := cmd.Flags().GetInt(flagCacheTTL); ttl > 0 {
		cfg.Cache.TTLSeconds = ttl
	}
	return cfg, nil
}

const rootCmdExample = `  # List the first page of repositories
  contentlist list

  # Search and filter, 50 per page (the page size is remembered)
  contentlist list --search epel --version 9 --arch x86_64 --page-size 50

  # JSON output including pagination metadata
  contentlist list --status Invalid --output json

  # Delete repositories by UUID
  contentlist delete 2b1c9a3e-5f0d-4c1e-9d6a-0e7f1b2c3d4e

  # Browse interactively
  contentlist browse

  # Try it without an API
  contentlist browse --demo

  # Initialize configuration
  contentlist config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
