package prefs

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// PageSizeKey is the preference key the listing page size is stored under.
const PageSizeKey = "perPage"

// Adapter reads and writes typed preferences through a Persistence backend.
type Adapter struct {
	store  Persistence
	logger zerolog.Logger
}

// NewAdapter wraps store. A nil store gets an in-memory one.
func NewAdapter(store Persistence, logger zerolog.Logger) *Adapter {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Adapter{store: store, logger: logger}
}

// PageSize returns the stored page size for key, or def when the stored value
// is missing or not a positive integer.
func (a *Adapter) PageSize(key string, def int) int {
	raw, ok := a.store.Read(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		a.logger.Debug().
			Str("operation", "read_page_size").
			Str("key", key).
			Str("value", raw).
			Int("default", def).
			Msg("ignoring invalid stored page size")
		return def
	}
	return n
}

// SetPageSize stores value under key. The caller guarantees value is a
// positive integer.
func (a *Adapter) SetPageSize(key string, value int) error {
	return a.store.Write(key, strconv.Itoa(value))
}
