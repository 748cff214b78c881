// Package listing keeps a paginated, filterable view of a remote repository
// listing consistent with the user's filter and page choices.
//
// The Engine owns the filter criteria and page state, turns them into a
// QueryDescriptor, fetches through a Source, and classifies the outcome for a
// renderer. Fetches may overlap: each one carries a Ticket, and an outcome
// whose ticket no longer matches the current descriptor is dropped, so the
// last request always wins. Deletes step back a page when the removed item
// was the only one on the last page, and invalidate cached results.
package listing
