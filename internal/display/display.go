// Package display classifies a listing into the state a renderer should show.
package display

// State is what a listing view renders.
type State int

const (
	// Loading indicates a fetch for the current query is in flight.
	Loading State = iota
	// Error indicates the last fetch for the current query failed.
	Error
	// EmptyNoFilter indicates there are no items at all.
	EmptyNoFilter
	// EmptyFiltered indicates no items match the active filters.
	EmptyFiltered
	// Populated indicates there are items to show.
	Populated
)

// String returns the state's lower-case name.
func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case EmptyNoFilter:
		return "empty"
	case EmptyFiltered:
		return "empty_filtered"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ShowPagination reports whether pagination controls belong on screen.
func (s State) ShowPagination() bool {
	return s == Populated
}

// Classify maps the fetch status of a listing to a State.
// Loading wins over everything, then Error, then the empty states.
func Classify(isLoading, isError bool, totalCount int, notFiltered bool) State {
	switch {
	case isLoading:
		return Loading
	case isError:
		return Error
	case totalCount == 0 && notFiltered:
		return EmptyNoFilter
	case totalCount == 0:
		return EmptyFiltered
	default:
		return Populated
	}
}
