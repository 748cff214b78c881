package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/pagination"
)

// QueryDescriptor identifies one listing request. Descriptors built by
// BuildQueryDescriptor are normalized, so equal selections compare equal and
// share a cache key whatever order their tags were picked in.
type QueryDescriptor struct {
	Page     int             `json:"page"      yaml:"page"`
	PageSize int             `json:"page_size" yaml:"page_size"`
	Filters  filter.Criteria `json:"filters"   yaml:"filters"`
}

// BuildQueryDescriptor combines filter criteria and page state.
func BuildQueryDescriptor(c filter.Criteria, p pagination.PageState) QueryDescriptor {
	return QueryDescriptor{
		Page:     p.Page,
		PageSize: p.PageSize,
		Filters:  c.Normalized(),
	}
}

// PageState returns the page part of the descriptor.
func (d QueryDescriptor) PageState() pagination.PageState {
	return pagination.PageState{Page: d.Page, PageSize: d.PageSize}
}

// Offset returns the zero-based index of the first requested item.
func (d QueryDescriptor) Offset() int {
	return d.PageState().Offset()
}

// Equal reports whether d and other request the same items.
func (d QueryDescriptor) Equal(other QueryDescriptor) bool {
	return d.Page == other.Page &&
		d.PageSize == other.PageSize &&
		d.Filters.Equal(other.Filters)
}

// Key returns a deterministic SHA-256 hex key for caching.
func (d QueryDescriptor) Key() string {
	canonical := struct {
		Page          int      `json:"page"`
		PageSize      int      `json:"page_size"`
		Search        string   `json:"search"`
		Versions      []string `json:"versions"`
		Architectures []string `json:"architectures"`
		Statuses      []string `json:"statuses"`
	}{
		Page:     d.Page,
		PageSize: d.PageSize,
	}
	n := d.Filters.Normalized()
	canonical.Search = n.SearchQuery
	canonical.Versions = n.Versions
	canonical.Architectures = n.Architectures
	canonical.Statuses = n.Statuses

	// Marshalling a struct of strings, ints and string slices cannot fail.
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
