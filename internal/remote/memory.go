package remote

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/listing"
)

// MemorySource is an in-memory listing.Source.
type MemorySource struct {
	mu    sync.RWMutex
	items []listing.Item
}

// NewMemorySource creates a source holding copies of items. Items without a
// UUID get a random one.
func NewMemorySource(items ...listing.Item) *MemorySource {
	s := &MemorySource{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends a copy of item and returns its UUID.
func (s *MemorySource) Add(item listing.Item) string {
	if item.UUID == "" {
		item.UUID = uuid.NewString()
	}
	item.DistributionVersions = slices.Clone(item.DistributionVersions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return item.UUID
}

// Len returns the number of stored items.
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns the requested page of items matching the descriptor's filters.
func (s *MemorySource) List(ctx context.Context, d listing.QueryDescriptor) (listing.ListResult, error) {
	if err := ctx.Err(); err != nil {
		return listing.ListResult{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]listing.Item, 0, len(s.items))
	for _, it := range s.items {
		if matches(it, d.Filters) {
			matched = append(matched, it)
		}
	}

	start := min(max(d.Offset(), 0), len(matched))
	end := min(start+d.PageSize, len(matched))
	page := listing.ListResult{Items: matched[start:end], TotalCount: len(matched)}
	return page.Clone(), nil
}

// Delete removes the item with the given UUID.
func (s *MemorySource) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.items, func(it listing.Item) bool { return it.UUID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

// Parameters returns every version and architecture in the stored items.
func (s *MemorySource) Parameters(ctx context.Context) (listing.Parameters, error) {
	if err := ctx.Err(); err != nil {
		return listing.Parameters{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var params listing.Parameters
	for _, it := range s.items {
		for _, v := range it.DistributionVersions {
			if !slices.Contains(params.Versions, v) {
				params.Versions = append(params.Versions, v)
			}
		}
		if it.DistributionArch != "" && !slices.Contains(params.Architectures, it.DistributionArch) {
			params.Architectures = append(params.Architectures, it.DistributionArch)
		}
	}
	SortVersions(params.Versions)
	slices.Sort(params.Architectures)
	return params, nil
}

// matches applies the filters the way the API does: the search text is a
// case-insensitive substring of the name or URL, and each non-empty tag set
// must contain the item's value.
func matches(it listing.Item, c filter.Criteria) bool {
	if q := strings.ToLower(strings.TrimSpace(c.SearchQuery)); q != "" {
		if !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.URL), q) {
			return false
		}
	}
	if len(c.Versions) > 0 && !slices.ContainsFunc(it.DistributionVersions, func(v string) bool {
		return slices.Contains(c.Versions, v)
	}) {
		return false
	}
	if len(c.Architectures) > 0 && !slices.Contains(c.Architectures, it.DistributionArch) {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, it.Status) {
		return false
	}
	return true
}

// DemoItems returns n generated repositories for demo mode. UUIDs are
// derived from the repository URL so they are stable across runs.
func DemoItems(n int) []listing.Item {
	arches := []string{"x86_64", "aarch64", "s390x", "ppc64le"}
	versions := [][]string{{"7"}, {"8"}, {"9"}, {"8", "9"}}
	statuses := []string{filter.StatusValid, filter.StatusValid, filter.StatusPending, filter.StatusInvalid, filter.StatusUnavailable}
	kinds := []string{"epel", "appstream", "baseos", "codeready", "extras"}

	items := make([]listing.Item, n)
	for i := range items {
		kind := kinds[i%len(kinds)]
		arch := arches[(i/len(kinds))%len(arches)]
		url := fmt.Sprintf("https://mirror.example.com/%s/%s/%03d/", kind, arch, i)
		items[i] = listing.Item{
			UUID:                 uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
			Name:                 fmt.Sprintf("%s-%s-%03d", kind, arch, i),
			URL:                  url,
			DistributionArch:     arch,
			DistributionVersions: slices.Clone(versions[i%len(versions)]),
			Status:               statuses[i%len(statuses)],
			PackageCount:         (i*37)%2000 + 10,
			AccountID:            "demo-account",
			OrgID:                "demo-org",
		}
	}
	return items
}

var (
	_ listing.Source          = (*MemorySource)(nil)
	_ listing.ParameterSource = (*MemorySource)(nil)
	_ listing.Source          = (*HTTPSource)(nil)
	_ listing.ParameterSource = (*HTTPSource)(nil)
)
