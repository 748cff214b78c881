// Package filter holds the listing filter criteria: a free-text search query
// plus version, architecture and status tag sets.
//
// All operations are pure: they return a new Criteria and report whether it
// differs from the receiver, so the caller can decide to reset pagination.
package filter
