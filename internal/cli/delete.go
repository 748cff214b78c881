package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/remote"
	"github.com/rshade/contentlist/internal/tui"
)

// DefaultDeleteConcurrency bounds parallel delete requests.
const DefaultDeleteConcurrency = 4

// Delete command errors.
var (
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrNeedsConfirmation  = errors.New("refusing to delete without --yes when stdin is not a terminal")
)

// DeleteParams holds the flags of the delete command.
type DeleteParams struct {
	Yes         bool
	Concurrency int
}

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	var params DeleteParams

	cmd := &cobra.Command{
		Use:   "delete UUID...",
		Short: "Delete content repositories",
		Long: `Deletes the repositories with the given UUIDs.

Each UUID is deleted independently; one failure does not stop the others.
The result cache is cleared after any successful delete.`,
		Example: `  # Delete one repository, with confirmation
  contentlist delete 2b1c9a3e-5f0d-4c1e-9d6a-0e7f1b2c3d4e

  # Delete several without prompting
  contentlist delete --yes UUID1 UUID2 UUID3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDelete(cmd, args, params)
		},
	}

	cmd.Flags().BoolVarP(&params.Yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", DefaultDeleteConcurrency,
		"maximum parallel delete requests")

	return cmd
}

func executeDelete(cmd *cobra.Command, args []string, params DeleteParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	p := newCmdPrinter(cmd)

	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("%w: %q", remote.ErrInvalidUUID, arg)
		}
		if s := id.String(); !slices.Contains(ids, s) {
			ids = append(ids, s)
		}
	}

	if !params.Yes {
		if !stdinIsTerminal(cmd) {
			return ErrNeedsConfirmation
		}
		res := ConfirmDelete(cmd.OutOrStdout(), cmd.InOrStdin(), ids)
		if !res.Accepted {
			p.Warning("Delete cancelled")
			return ErrDeleteNotConfirmed
		}
	}

	engine, err := newEngine(cmd, cacheFile)
	if err != nil {
		return err
	}

	results := make([]error, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(params.Concurrency, 1))
	for i, id := range ids {
		g.Go(func() error {
			results[i] = engine.DeleteItem(gCtx, id)
			// One failed delete must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for i, id := range ids {
		if results[i] != nil {
			p.Error("%s: %v", id, deleteCause(results[i]))
			failed = append(failed, results[i])
			continue
		}
		p.Success("Deleted %s", id)
	}

	log.Info().Ctx(ctx).
		Str("operation", "delete").
		Int("requested", len(ids)).
		Int("failed", len(failed)).
		Msg("delete finished")

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d deletes failed: %w", len(failed), len(ids), errors.Join(failed...))
	}
	return nil
}

// deleteCause strips the DeleteError wrapper, which repeats the UUID.
func deleteCause(err error) error {
	var de *listing.DeleteError
	if errors.As(err, &de) && de.Err != nil {
		return de.Err
	}
	return err
}

// stdinIsTerminal reports whether cmd reads from an interactive terminal.
// Input injected with SetIn counts as interactive so tests can answer.
func stdinIsTerminal(cmd *cobra.Command) bool {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return tui.IsTerminal(f)
	}
	return true
}
