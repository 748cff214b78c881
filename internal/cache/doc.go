// Package cache stores listing results keyed by query descriptor, with TTL
// expiration.
//
// Two stores implement Store:
//   - FileStore keeps entries as JSON files under ~/.contentlist/cache/, so
//     repeated CLI invocations reuse recent results
//   - MemoryStore keeps entries in an expiring LRU for the lifetime of an
//     interactive session
//
// Any successful mutation of the remote listing must Clear the store; a cached
// page is only valid until the data behind it changes.
package cache
