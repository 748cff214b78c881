package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/contentlist/internal/display"
	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/pagination"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrInvalidOutput is returned for an unsupported --output value.
var ErrInvalidOutput = errors.New("invalid output format")

// ListParams holds the flags of the list command.
type ListParams struct {
	Filters  FilterFlags
	Page     int
	PageSize int
	Output   string
	NoCache  bool
	// Wide adds the account and organization columns to table output.
	Wide bool
}

// ListOutput is the JSON and YAML shape of one listed page.
type ListOutput struct {
	State   display.State   `json:"state"   yaml:"state"`
	Filters filter.Criteria `json:"filters" yaml:"filters"`
	Meta    pagination.Meta `json:"meta"    yaml:"meta"`
	Items   []listing.Item  `json:"data"    yaml:"data"`
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var params ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content repositories",
		Long: `Lists one page of content repositories matching the given filters.

The page size is remembered between runs; --page-size changes it.
Changing any filter starts again at page 1 unless --page is given.`,
		Example: `  # First page at the remembered page size
  contentlist list

  # Page 3, 50 per page (remembered for next time)
  contentlist list --page 3 --page-size 50

  # Filter by search text, versions, architecture and status
  contentlist list --search epel --version 8,9 --arch x86_64 --status invalid

  # Machine-readable output
  contentlist list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeList(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0,
		fmt.Sprintf("items per page, one of %s (default: remembered, else %d)",
			joinInts(pagination.AllowedPageSizes), pagination.DefaultPageSize))
	cmd.Flags().StringVar(&params.Filters.Search, "search", "", "match repository name or URL")
	cmd.Flags().StringSliceVar(&params.Filters.Versions, "version", nil, "distribution version (repeatable)")
	cmd.Flags().StringSliceVar(&params.Filters.Architectures, "arch", nil, "distribution architecture (repeatable)")
	cmd.Flags().StringSliceVar(&params.Filters.Statuses, "status", nil,
		"repository status: "+strings.Join(filter.KnownStatuses, ", ")+" (repeatable)")
	cmd.Flags().StringVarP(&params.Output, "output", "o", OutputTable, "output format: table, json, yaml")
	cmd.Flags().BoolVar(&params.NoCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&params.Wide, "wide", false, "table output also shows account and organization IDs")

	return cmd
}

func executeList(cmd *cobra.Command, params ListParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	output := strings.ToLower(params.Output)
	switch output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w %q (want table, json or yaml)", ErrInvalidOutput, params.Output)
	}
	if params.Page < pagination.MinPage {
		return pagination.ErrInvalidPage
	}
	if params.PageSize != 0 && !pagination.IsAllowedPageSize(params.PageSize) {
		return pagination.ErrInvalidPageSize
	}

	criteria, err := BuildCriteria(ctx, params.Filters)
	if err != nil {
		return err
	}

	kind := cacheFile
	if params.NoCache {
		kind = cacheNone
	}
	engine, err := newEngine(cmd, kind)
	if err != nil {
		return err
	}

	engine.SetCriteria(criteria)
	if params.PageSize != 0 {
		err = engine.SetPageSize(params.PageSize, params.Page)
	} else {
		err = engine.SetPage(params.Page)
	}
	if err != nil {
		return err
	}

	view, err := engine.Refresh(ctx)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("operation", "list").
			Str("descriptor_key", engine.Descriptor().Key()).
			Err(err).
			Msg("listing failed")
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "list").
		Int("page", view.Page).
		Int("page_size", view.PageSize).
		Int("count", view.TotalCount).
		Str("state", view.State.String()).
		Msg("listed repositories")

	out := ListOutput{
		State:   view.State,
		Filters: view.Criteria,
		Meta:    view.Meta,
		Items:   view.Items,
	}
	if out.Items == nil {
		out.Items = []listing.Item{}
	}

	switch output {
	case OutputJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case OutputYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err = enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderListTable(cmd.OutOrStdout(), newCmdPrinter(cmd), view, params.Wide)
	}
}

// renderListTable writes the human-readable listing for view. wide adds the
// account and organization columns.
func renderListTable(w io.Writer, p *Printer, view listing.View, wide bool) error {
	switch view.State {
	case display.Loading, display.Error:
		// Refresh reports errors itself; nothing to render.
		return view.Err
	case display.EmptyNoFilter:
		_, err := fmt.Fprintln(w, "No content repositories yet.")
		return err
	case display.EmptyFiltered:
		_, err := fmt.Fprintf(w, "No repositories match the current filters.\n%s\n",
			p.Dim("Remove --search, --version, --arch or --status to see all repositories."))
		return err
	case display.Populated:
	}

	header := []string{"Name", "URL", "Arch", "Versions", "Status", "Packages", "UUID"}
	if wide {
		header = append(header, "Account ID", "Org ID")
	}
	rows := make([][]string, 0, len(view.Items))
	for _, it := range view.Items {
		row := []string{
			it.Name,
			it.URL,
			it.DistributionArch,
			strings.Join(it.DistributionVersions, ","),
			p.StatusBadge(it.Status),
			strconv.Itoa(it.PackageCount),
			it.UUID,
		}
		if wide {
			row = append(row, it.AccountID, it.OrgID)
		}
		rows = append(rows, row)
	}
	if err := renderTable(w, header, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, p.Dim(paginationSummary(view.Meta)))
	return err
}

// paginationSummary describes the page shown, e.g.
// "Showing 21-40 of 1,234 · page 2 of 62 · 20 per page".
func paginationSummary(m pagination.Meta) string {
	pr := message.NewPrinter(language.English)
	return pr.Sprintf("Showing %d-%d of %d · page %d of %d · %d per page",
		m.FirstItem(), m.LastItem(), m.TotalItems, m.CurrentPage, m.TotalPages, m.PageSize)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
