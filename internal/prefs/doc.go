// Package prefs persists small user preferences, such as the listing page
// size, across sessions.
//
// Storage is injected through the Persistence interface so callers can use
// the JSON-file FileStore in production and MemoryStore in tests. Adapter
// layers typed accessors on top and never surfaces malformed stored values:
// they are treated as absent and the caller's default is returned.
package prefs
