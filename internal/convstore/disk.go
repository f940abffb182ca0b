package convstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskStore implements persistent disk-based conversation storage
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a new disk store
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{
		dir: dir,
		ttl: ttl,
	}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the disk store
func (s *DiskStore) Get(key string) ([]byte, bool) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Check expiration
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value on disk
func (s *DiskStore) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	entry := diskEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	path := s.path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	return nil
}

// Delete removes a value from the disk store
func (s *DiskStore) Delete(key string) error {
	path := s.path(key)
	return os.Remove(path)
}

// Clear removes all stored files
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path generates the file path for a store key
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, key+".conv")
}
