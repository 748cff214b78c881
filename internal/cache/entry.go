package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached value with TTL metadata.
type Entry struct {
	// Key is the cache key (the query descriptor key).
	Key string `json:"key"`
	// Data is the cached value.
	Data json.RawMessage `json:"data"`
	// CreatedAt is when the entry was stored.
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry that expires ttl from now.
func NewEntry(key string, data json.RawMessage, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiration time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the time since the entry was stored.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *Entry) TimeUntilExpiration() time.Duration {
	return max(time.Until(e.ExpiresAt), 0)
}
