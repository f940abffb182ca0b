package convstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the state saved for a pending conversation. Body holds the
// cleaned text of the first message so a follow-up can replay it.
type Record struct {
	ConversationID string    `json:"conversation_id"`
	Body           string    `json:"body"`
	SavedAt        time.Time `json:"saved_at"`
}

// Conversations tracks pending claim conversations on top of a Store.
type Conversations struct {
	store Store
	ttl   time.Duration
}

// NewConversations creates a conversation tracker backed by store.
func NewConversations(store Store, ttl time.Duration) *Conversations {
	return &Conversations{store: store, ttl: ttl}
}

// Save records a pending conversation and its original message body.
func (c *Conversations) Save(conversationID, body string) error {
	rec := Record{
		ConversationID: conversationID,
		Body:           body,
		SavedAt:        time.Now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}

	return c.store.Set(Key(conversationID), data, c.ttl)
}

// Exists reports whether a conversation is pending.
func (c *Conversations) Exists(conversationID string) bool {
	_, found := c.store.Get(Key(conversationID))
	return found
}

// Fetch returns the saved record for a pending conversation.
func (c *Conversations) Fetch(conversationID string) (*Record, bool) {
	data, found := c.store.Get(Key(conversationID))
	if !found {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}

	return &rec, true
}

// Forget removes a conversation once it is resolved.
func (c *Conversations) Forget(conversationID string) error {
	return c.store.Delete(Key(conversationID))
}
