package pagination

import (
	"errors"
	"fmt"
	"slices"
)

// Paging defaults and limits.
const (
	DefaultPage     = 1
	MinPage         = 1
	DefaultPageSize = 20
)

// AllowedPageSizes are the page sizes a user may choose.
//
//nolint:gochecknoglobals // Fixed lookup table.
var AllowedPageSizes = []int{10, 20, 50, 100}

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = fmt.Errorf("page size must be one of %v", AllowedPageSizes)
)

// PageState identifies one page of a listing.
type PageState struct {
	// Page is the 1-based page number.
	Page int `json:"page" yaml:"page"`
	// PageSize is the number of items per page.
	PageSize int `json:"page_size" yaml:"page_size"`
}

// NewPageState returns page 1 at the default page size.
func NewPageState() PageState {
	return PageState{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Validate checks the page is >= 1 and the size is an allowed value.
func (p PageState) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if !IsAllowedPageSize(p.PageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// Offset returns the zero-based index of the first item on the page.
func (p PageState) Offset() int {
	if p.Page < MinPage || p.PageSize <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// IsAllowedPageSize reports whether n is one of AllowedPageSizes.
func IsAllowedPageSize(n int) bool {
	return slices.Contains(AllowedPageSizes, n)
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// RecomputePage returns the page that still contains the first item of
// oldPage after switching from oldSize to newSize.
func RecomputePage(oldPage, oldSize, newSize int) int {
	if newSize <= 0 {
		return DefaultPage
	}
	offset := PageState{Page: oldPage, PageSize: oldSize}.Offset()
	return offset/newSize + 1
}

// NextPageSize returns the allowed size after current, wrapping to the
// smallest. An unknown current size yields the default.
func NextPageSize(current int) int {
	i := slices.Index(AllowedPageSizes, current)
	if i < 0 {
		return DefaultPageSize
	}
	return AllowedPageSizes[(i+1)%len(AllowedPageSizes)]
}

// PrevPageSize returns the allowed size before current, wrapping to the
// largest. An unknown current size yields the default.
func PrevPageSize(current int) int {
	i := slices.Index(AllowedPageSizes, current)
	if i < 0 {
		return DefaultPageSize
	}
	return AllowedPageSizes[(i-1+len(AllowedPageSizes))%len(AllowedPageSizes)]
}
