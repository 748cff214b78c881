package cli

import (
	"errors"

	"github.com/rshade/contentlist/internal/listing"
	"github.com/rshade/contentlist/internal/pagination"
	"github.com/rshade/contentlist/internal/remote"
)

// Exit codes returned by the contentlist binary.
const (
	ExitSuccess   = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitRemote    = 3
	ExitCancelled = 4
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var (
		fetchErr  *listing.FetchError
		deleteErr *listing.DeleteError
		apiErr    *remote.APIError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDeleteNotConfirmed):
		return ExitCancelled
	case errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrInvalidOutput),
		errors.Is(err, ErrNeedsConfirmation),
		errors.Is(err, ErrNotTerminal),
		errors.Is(err, remote.ErrInvalidUUID),
		errors.Is(err, pagination.ErrInvalidPage),
		errors.Is(err, pagination.ErrInvalidPageSize):
		return ExitUsage
	case errors.As(err, &fetchErr), errors.As(err, &deleteErr), errors.As(err, &apiErr):
		return ExitRemote
	default:
		return ExitGeneral
	}
}
