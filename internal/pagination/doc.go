// Package pagination holds the listing page state and the arithmetic around it.
//
// This package contains:
//   - PageState: the 1-based page number and page size of one listing request
//   - State: the mutable page state of a listing view, with the page size
//     persisted through a prefs.Adapter
//   - AdjustAfterRemoval: where to land after an item is deleted
//   - Meta: response metadata for paginated output
//
// Page numbers are never validated against the total count here; asking for a
// page past the end is the caller's mistake, not a runtime fault.
package pagination
