package pagination

import (
	"fmt"

	"github.com/rshade/contentlist/internal/prefs"
)

// State is the page state of one listing view. Page-size changes are
// persisted through the preference adapter.
type State struct {
	current PageState
	prefs   *prefs.Adapter
	key     string
}

// NewState starts at page 1 with the persisted page size, or def when
// nothing valid is stored. A def outside AllowedPageSizes is replaced by
// DefaultPageSize. A nil adapter disables persistence.
func NewState(adapter *prefs.Adapter, key string, def int) *State {
	if !IsAllowedPageSize(def) {
		def = DefaultPageSize
	}
	size := def
	if adapter != nil {
		size = adapter.PageSize(key, def)
		if !IsAllowedPageSize(size) {
			size = def
		}
	}
	return &State{
		current: PageState{Page: DefaultPage, PageSize: size},
		prefs:   adapter,
		key:     key,
	}
}

// Current returns the page state.
func (s *State) Current() PageState {
	return s.current
}

// SetPage moves to page n. There is no upper bound check.
func (s *State) SetPage(n int) error {
	if n < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, n)
	}
	s.current.Page = n
	return nil
}

// SetPageSize switches to size n, persists it and moves to newPage.
func (s *State) SetPageSize(n, newPage int) error {
	if !IsAllowedPageSize(n) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	if newPage < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, newPage)
	}
	if s.prefs != nil {
		if err := s.prefs.SetPageSize(s.key, n); err != nil {
			return fmt.Errorf("persisting page size: %w", err)
		}
	}
	s.current.PageSize = n
	s.current.Page = newPage
	return nil
}

// ResetPage returns to page 1 and reports whether the page changed.
func (s *State) ResetPage() bool {
	if s.current.Page == DefaultPage {
		return false
	}
	s.current.Page = DefaultPage
	return true
}
