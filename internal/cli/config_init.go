package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/pagination"
)

// ErrConfigExists is returned by config init when the target file exists and
// --force was not given.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// configInitOptions are the flags of config init.
type configInitOptions struct {
	force    bool
	global   bool
	pageSize int
}

// NewConfigInitCmd creates the config init command. Inside a project it
// writes .contentlist/config.yaml plus a .gitignore for per-user state;
// otherwise, or with --global, it writes config.yaml in CONTENTLIST_HOME.
func NewConfigInitCmd() *cobra.Command {
	var opts configInitOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Writes a configuration file with default values.

A project is found through --project-dir, CONTENTLIST_PROJECT_DIR, or a
.contentlist directory in the current directory or above. Inside a project
the file is $PROJECT/.contentlist/config.yaml, and a .gitignore keeps the
page size preferences and cached pages out of version control. Otherwise
the file is $CONTENTLIST_HOME/config.yaml.

The API token is never written; set CONTENTLIST_TOKEN instead.`,
		Example: `  # Project configuration pointing at a staging API
  contentlist --api-url https://staging.example.com/api/content-sources/v1 config init --project-dir .

  # Global configuration showing 50 repositories per page
  contentlist config init --global --page-size 50

  # Replace an existing file
  contentlist config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&opts.global, "global", false, "write the global file even inside a project")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0,
		fmt.Sprintf("listing.default_page_size to write (one of %v, 0 = %d)",
			pagination.AllowedPageSizes, pagination.DefaultPageSize))

	return cmd
}

func runConfigInit(cmd *cobra.Command, opts configInitOptions) error {
	if opts.pageSize != 0 && !pagination.IsAllowedPageSize(opts.pageSize) {
		return fmt.Errorf("%w: got %d", pagination.ErrInvalidPageSize, opts.pageSize)
	}

	projectDir := config.GetResolvedProjectDir()
	inProject := projectDir != "" && !opts.global

	dir := projectDir
	if !inProject {
		var err error
		if dir, err = config.GetConfigDir(); err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
	}
	path := filepath.Join(dir, "config.yaml")

	if !opts.force {
		switch _, err := os.Stat(path); {
		case err == nil:
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		case !os.IsNotExist(err):
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	// Defaults only, so environment values such as the token stay out of
	// the file.
	cfg := config.Default()
	if apiURL, _ := cmd.Flags().GetString(flagAPIURL); apiURL != "" {
		cfg.API.URL = apiURL
	}
	if opts.pageSize != 0 {
		cfg.Listing.DefaultPageSize = opts.pageSize
	}
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	p := newCmdPrinter(cmd)
	if !inProject {
		p.Success("Configuration initialized successfully")
		p.Info("Configuration file: %s", path)
		return nil
	}

	p.Success("Configuration initialized at %s", path)
	cacheDir, err := config.GetGlobalConfig().CacheDir()
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}
	created, err := config.EnsureGitignore(dir, cacheDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}
	if created {
		p.Info("Created .gitignore ignoring %s",
			strings.Join(config.GitignoreEntries(dir, cacheDir), ", "))
	}
	return nil
}
