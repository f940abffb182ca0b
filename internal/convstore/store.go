package convstore

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store defines the interface for conversation state persistence
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a storage key from a conversation ID
func Key(conversationID string) string {
	hash := sha256.Sum256([]byte(conversationID))
	return "fnolgate:v1:" + hex.EncodeToString(hash[:])
}
