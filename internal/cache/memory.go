package cache

import (
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryEntries is the default capacity of a MemoryStore.
const DefaultMemoryEntries = 128

// MemoryStore is an in-process LRU cache whose entries expire after a TTL.
type MemoryStore struct {
	lru *expirable.LRU[string, *Entry]
	ttl time.Duration
}

// NewMemoryStore creates a store holding at most size entries for ttl each.
// Non-positive arguments select the defaults.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTLSeconds * time.Second
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, *Entry](size, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the entry for key or ErrCacheNotFound.
func (s *MemoryStore) Get(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}
	entry, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrCacheNotFound
	}
	if entry.IsExpired() {
		s.lru.Remove(key)
		return nil, ErrCacheExpired
	}
	return entry, nil
}

// Set stores data under key.
func (s *MemoryStore) Set(key string, data json.RawMessage) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	s.lru.Add(key, NewEntry(key, data, s.ttl))
	return nil
}

// Delete removes the entry for key.
func (s *MemoryStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	s.lru.Remove(key)
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear() error {
	s.lru.Purge()
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
