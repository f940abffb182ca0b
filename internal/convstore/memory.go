package convstore

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore implements in-memory conversation storage
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a new memory store
func NewMemoryStore(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the store
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	if val, found := s.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the store
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all values from the store
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
