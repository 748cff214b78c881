package filter

import (
	"slices"
	"strings"
)

// Known repository status values.
const (
	StatusValid       = "Valid"
	StatusInvalid     = "Invalid"
	StatusPending     = "Pending"
	StatusUnavailable = "Unavailable"
)

// KnownStatuses lists the status values offered by the status filter.
//
//nolint:gochecknoglobals // Fixed lookup table.
var KnownStatuses = []string{StatusInvalid, StatusPending, StatusUnavailable, StatusValid}

// Category names a tag set.
type Category string

// Tag categories.
const (
	CategorySearch       Category = "search"
	CategoryVersion      Category = "version"
	CategoryArchitecture Category = "architecture"
	CategoryStatus       Category = "status"
)

// Criteria is the current filter selection.
// Tag lists keep insertion order for display; order carries no query meaning.
type Criteria struct {
	SearchQuery   string   `json:"search_query"  yaml:"search_query"`
	Versions      []string `json:"versions"      yaml:"versions"`
	Architectures []string `json:"architectures" yaml:"architectures"`
	Statuses      []string `json:"statuses"      yaml:"statuses"`
}

// Chip is one active filter value.
type Chip struct {
	Category Category
	Value    string
}

// NotFiltered reports whether no filter is active.
func (c Criteria) NotFiltered() bool {
	return strings.TrimSpace(c.SearchQuery) == "" &&
		len(c.Versions) == 0 &&
		len(c.Architectures) == 0 &&
		len(c.Statuses) == 0
}

// WithSearchQuery returns c with the search text replaced.
// The text is expected to be debounced already.
func (c Criteria) WithSearchQuery(text string) (Criteria, bool) {
	if strings.TrimSpace(text) == strings.TrimSpace(c.SearchQuery) {
		return c, false
	}
	next := c.Clone()
	next.SearchQuery = text
	return next, true
}

// ToggleVersion adds v if absent and removes it if present.
func (c Criteria) ToggleVersion(v string) (Criteria, bool) {
	next := c.Clone()
	var changed bool
	next.Versions, changed = toggle(next.Versions, v)
	return next, changed
}

// ToggleArchitecture adds a if absent and removes it if present.
func (c Criteria) ToggleArchitecture(a string) (Criteria, bool) {
	next := c.Clone()
	var changed bool
	next.Architectures, changed = toggle(next.Architectures, a)
	return next, changed
}

// ToggleStatus adds s if absent and removes it if present.
func (c Criteria) ToggleStatus(s string) (Criteria, bool) {
	next := c.Clone()
	var changed bool
	next.Statuses, changed = toggle(next.Statuses, s)
	return next, changed
}

// Cleared returns empty criteria and whether anything was set.
func (c Criteria) Cleared() (Criteria, bool) {
	return Criteria{}, !c.NotFiltered()
}

// Clone returns a deep copy of c.
func (c Criteria) Clone() Criteria {
	return Criteria{
		SearchQuery:   c.SearchQuery,
		Versions:      slices.Clone(c.Versions),
		Architectures: slices.Clone(c.Architectures),
		Statuses:      slices.Clone(c.Statuses),
	}
}

// Normalized returns the canonical form of c: trimmed search text and
// sorted, de-duplicated tag lists with empty values dropped. Empty lists
// are nil so equal criteria compare and serialise identically.
func (c Criteria) Normalized() Criteria {
	return Criteria{
		SearchQuery:   strings.TrimSpace(c.SearchQuery),
		Versions:      normalizeTags(c.Versions),
		Architectures: normalizeTags(c.Architectures),
		Statuses:      normalizeTags(c.Statuses),
	}
}

// Equal reports whether c and other select the same items.
func (c Criteria) Equal(other Criteria) bool {
	a, b := c.Normalized(), other.Normalized()
	return a.SearchQuery == b.SearchQuery &&
		slices.Equal(a.Versions, b.Versions) &&
		slices.Equal(a.Architectures, b.Architectures) &&
		slices.Equal(a.Statuses, b.Statuses)
}

// Chips returns the active filter values in display order.
func (c Criteria) Chips() []Chip {
	var chips []Chip
	if q := strings.TrimSpace(c.SearchQuery); q != "" {
		chips = append(chips, Chip{Category: CategorySearch, Value: q})
	}
	for _, v := range c.Versions {
		chips = append(chips, Chip{Category: CategoryVersion, Value: v})
	}
	for _, a := range c.Architectures {
		chips = append(chips, Chip{Category: CategoryArchitecture, Value: a})
	}
	for _, s := range c.Statuses {
		chips = append(chips, Chip{Category: CategoryStatus, Value: s})
	}
	return chips
}

func toggle(tags []string, value string) ([]string, bool) {
	if value == "" {
		return tags, false
	}
	if i := slices.Index(tags, value); i >= 0 {
		tags = slices.Delete(tags, i, i+1)
		if len(tags) == 0 {
			return nil, true
		}
		return tags, true
	}
	return append(tags, value), true
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
