package listing

import (
	"errors"
	"fmt"
)

// ErrNoSource is returned by NewEngine without a source.
var ErrNoSource = errors.New("listing source is required")

// FetchError wraps a failed List call. It is surfaced as is; the engine
// never retries.
type FetchError struct {
	Descriptor QueryDescriptor
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching page %d (size %d): %v", e.Descriptor.Page, e.Descriptor.PageSize, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DeleteError wraps a failed Delete call. The engine state is unchanged
// when one is returned.
type DeleteError struct {
	UUID string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("deleting %s: %v", e.UUID, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
