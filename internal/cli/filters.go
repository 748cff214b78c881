package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/logging"
)

// ErrUnknownStatus is returned for a --status value that is not a known
// repository status.
var ErrUnknownStatus = errors.New("unknown status")

// FilterFlags are the filter options shared by list-style commands.
type FilterFlags struct {
	Search        string
	Versions      []string
	Architectures []string
	Statuses      []string
}

// BuildCriteria validates flags and folds them into a filter.Criteria.
//
// Repeated and comma-separated values are both accepted, so
// "--version 8 --version 9" equals "--version 8,9". Status values are
// matched case-insensitively against filter.KnownStatuses and stored in
// their canonical spelling. The result is normalized, so an empty
// FilterFlags yields the zero Criteria.
func BuildCriteria(ctx context.Context, flags FilterFlags) (filter.Criteria, error) {
	log := logging.FromContext(ctx)

	statuses := splitValues(flags.Statuses)
	for i, s := range statuses {
		canonical, ok := canonicalStatus(s)
		if !ok {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "build_criteria").
				Str("status", s).
				Msg("invalid status filter")
			return filter.Criteria{}, fmt.Errorf("%w %q (want one of %s)",
				ErrUnknownStatus, s, strings.Join(filter.KnownStatuses, ", "))
		}
		statuses[i] = canonical
	}

	c := filter.Criteria{
		SearchQuery:   strings.TrimSpace(flags.Search),
		Versions:      splitValues(flags.Versions),
		Architectures: splitValues(flags.Architectures),
		Statuses:      statuses,
	}.Normalized()

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "build_criteria").
		Str("search", c.SearchQuery).
		Strs("versions", c.Versions).
		Strs("architectures", c.Architectures).
		Strs("statuses", c.Statuses).
		Msg("built filter criteria")

	return c, nil
}

func canonicalStatus(s string) (string, bool) {
	for _, known := range filter.KnownStatuses {
		if strings.EqualFold(s, known) {
			return known, true
		}
	}
	return "", false
}

// splitValues flattens comma-separated flag values and drops blanks.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
