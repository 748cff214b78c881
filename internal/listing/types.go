package listing

import (
	"context"
	"slices"
)

// Item is one repository in the listing.
type Item struct {
	UUID                 string   `json:"uuid"                  yaml:"uuid"`
	Name                 string   `json:"name"                  yaml:"name"`
	URL                  string   `json:"url"                   yaml:"url"`
	DistributionArch     string   `json:"distribution_arch"     yaml:"distribution_arch"`
	DistributionVersions []string `json:"distribution_versions" yaml:"distribution_versions"`
	Status               string   `json:"status"                yaml:"status"`
	PackageCount         int      `json:"package_count"         yaml:"package_count"`
	AccountID            string   `json:"account_id"            yaml:"account_id"`
	OrgID                string   `json:"org_id"                yaml:"org_id"`
}

// ListResult is one page of items plus the total matching count.
type ListResult struct {
	Items      []Item `json:"data"  yaml:"data"`
	TotalCount int    `json:"count" yaml:"count"`
}

// Parameters are the filter values a source offers.
type Parameters struct {
	Versions      []string `json:"versions"      yaml:"versions"`
	Architectures []string `json:"architectures" yaml:"architectures"`
}

// Source is the remote listing the engine reads from and deletes through.
type Source interface {
	List(ctx context.Context, d QueryDescriptor) (ListResult, error)
	Delete(ctx context.Context, uuid string) error
}

// ParameterSource is implemented by sources that can enumerate filter values.
type ParameterSource interface {
	Parameters(ctx context.Context) (Parameters, error)
}

// Clone returns a deep copy of r.
func (r ListResult) Clone() ListResult {
	items := make([]Item, len(r.Items))
	for i, it := range r.Items {
		it.DistributionVersions = slices.Clone(it.DistributionVersions)
		items[i] = it
	}
	return ListResult{Items: items, TotalCount: r.TotalCount}
}
