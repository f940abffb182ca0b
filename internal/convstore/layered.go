package convstore

import "time"

// LayeredStore keeps conversations in memory backed by disk
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a new layered store
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get retrieves a value (checks memory first, then disk)
func (s *LayeredStore) Get(key string) ([]byte, bool) {
	if val, found := s.memory.Get(key); found {
		return val, true
	}

	if val, found := s.disk.Get(key); found {
		// Promote to memory
		_ = s.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (s *LayeredStore) Set(key string, value []byte, ttl time.Duration) error {
	if err := s.memory.Set(key, value, ttl); err != nil {
		return err
	}

	if err := s.disk.Set(key, value, ttl); err != nil {
		return err
	}

	return nil
}

// Delete removes a value from both layers
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	_ = s.disk.Delete(key)
	return nil
}

// Clear removes all values from both layers
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	_ = s.disk.Clear()
	return nil
}
