package cli_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/pagination"
	"github.com/rshade/contentlist/internal/remote"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"plain error", errors.New("boom"), cli.ExitGeneral},
		{"cancelled context", context.Canceled, cli.ExitGeneral},
		{"declined delete", cli.ErrDeleteNotConfirmed, cli.ExitCancelled},
		{"unknown status", fmt.Errorf("%w %q", cli.ErrUnknownStatus, "x"), cli.ExitUsage},
		{"invalid output", cli.ErrInvalidOutput, cli.ExitUsage},
		{"needs confirmation", cli.ErrNeedsConfirmation, cli.ExitUsage},
		{"not a terminal", cli.ErrNotTerminal, cli.ExitUsage},
		{"invalid uuid", fmt.Errorf("%w: %q", remote.ErrInvalidUUID, "x"), cli.ExitUsage},
		{"invalid page", pagination.ErrInvalidPage, cli.ExitUsage},
		{"invalid page size", pagination.ErrInvalidPageSize, cli.ExitUsage},
		{"fetch error", &listing.FetchError{Err: errors.New("down")}, cli.ExitRemote},
		{
			"joined delete errors",
			fmt.Errorf("1 of 2 deletes failed: %w",
				errors.Join(&listing.DeleteError{UUID: "a", Err: remote.ErrNotFound})),
			cli.ExitRemote,
		},
		{"api error", &remote.APIError{Method: "GET", URL: "u", StatusCode: 500}, cli.ExitRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
