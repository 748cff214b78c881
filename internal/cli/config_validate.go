package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/listing"
)

// connectionCheckTimeout bounds the API probe of config validate --check-api.
const connectionCheckTimeout = 10 * time.Second

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration with the token redacted.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging the global file, the project
overlay, environment variables and flags. The API token is redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if path := cfg.ConfigPath(); path != "" {
				cmd.Printf("# %s\n", path)
			}
			if dir := config.GetResolvedProjectDir(); dir != "" {
				cmd.Printf("# project overlay: %s\n", dir)
			}
			data, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var (
		verbose  bool
		checkAPI bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration for semantic correctness.

This includes:
- API URL, timeout and rate limit
- Default page size (one of the allowed sizes)
- Search debounce, cache TTL and log level

With --check-api the configured API is also contacted.`,
		Example: `  # Validate current configuration
  contentlist config validate

  # Validate and show detailed information
  contentlist config validate --verbose

  # Also check that the API answers
  contentlist config validate --check-api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose, checkAPI)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	cmd.Flags().BoolVar(&checkAPI, "check-api", false, "contact the API to check connectivity")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose, checkAPI bool) error {
	cfg := config.GetGlobalConfig()
	p := newCmdPrinter(cmd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if checkAPI {
		if err := checkConnection(cmd, cfg); err != nil {
			return fmt.Errorf("API check failed: %w", err)
		}
		p.Success("API at %s is reachable", cfg.API.URL)
	}

	p.Success("Configuration is valid")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// checkConnection asks the source for its filter parameters, which needs
// no repositories to exist.
func checkConnection(cmd *cobra.Command, cfg *config.Config) error {
	src, err := newSource(cmd, cfg)
	if err != nil {
		return err
	}
	ps, ok := src.(listing.ParameterSource)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), connectionCheckTimeout)
	defer cancel()
	_, err = ps.Parameters(ctx)
	return err
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  API URL: %s\n", cfg.API.URL)
	cmd.Printf("  API token: %s\n", presence(cfg.API.Token))
	cmd.Printf("  Org ID: %s\n", valueOr(cfg.API.OrgID, "(none)"))
	cmd.Printf("  Timeout: %s\n", cfg.API.Timeout())
	cmd.Printf("  Default page size: %d\n", cfg.Listing.DefaultPageSize)
	cmd.Printf("  Search debounce: %dms\n", cfg.Listing.SearchDebounceMS)
	if cfg.Cache.Enabled {
		dir, _ := cfg.CacheDir()
		cmd.Printf("  Cache: %s, TTL %s\n", dir, cfg.Cache.TTL())
	} else {
		cmd.Println("  Cache: disabled")
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", valueOr(cfg.Logging.File, "(stderr)"))
}

func presence(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not set"
	}
	return "set"
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
