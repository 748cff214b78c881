package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/config"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/tui"
)

// ErrNotTerminal is returned when browse runs without a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use 'contentlist list' instead")

// NewBrowseCmd creates the browse command, which runs the interactive browser.
func NewBrowseCmd() *cobra.Command {
	var filters FilterFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse content repositories interactively",
		Long: `Opens a full-screen browser over the repository listing.

Keys: / search, v/a/s filter by version, architecture and status, c clear
filters, n/p next and previous page, +/- page size, d delete, r refresh,
? help, q quit.`,
		Example: `  # Browse everything
  contentlist browse

  # Start with filters applied
  contentlist browse --status Invalid --arch x86_64

  # Browse built-in demo data
  contentlist browse --demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBrowse(cmd, filters)
		},
	}

	cmd.Flags().StringVar(&filters.Search, "search", "", "initial search text")
	cmd.Flags().StringSliceVar(&filters.Versions, "version", nil, "initial version filter (repeatable)")
	cmd.Flags().StringSliceVar(&filters.Architectures, "arch", nil, "initial architecture filter (repeatable)")
	cmd.Flags().StringSliceVar(&filters.Statuses, "status", nil, "initial status filter (repeatable)")

	return cmd
}

func executeBrowse(cmd *cobra.Command, filters FilterFlags) error {
	ctx := cmd.Context()

	if !tui.IsTerminal(os.Stdout) || !tui.IsTerminal(os.Stdin) {
		return ErrNotTerminal
	}

	criteria, err := BuildCriteria(ctx, filters)
	if err != nil {
		return err
	}

	// Log lines on stderr would tear the full-screen view.
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug || config.GetLoggingConfig().File == "" {
		discard := zerolog.New(io.Discard)
		logging.SetDefault(discard)
		ctx = discard.WithContext(ctx)
	}

	engine, err := newEngine(cmd, cacheMemory)
	if err != nil {
		return err
	}
	engine.SetCriteria(criteria)

	cfg := config.GetGlobalConfig()
	debounce := time.Duration(cfg.Listing.SearchDebounceMS) * time.Millisecond
	if debounce == 0 {
		debounce = -1
	}
	width, height := tui.TerminalSize(os.Stdout)

	model := tui.NewBrowseModel(ctx, engine, tui.BrowseOptions{
		Debounce: debounce,
		Width:    width,
		Height:   height,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
