package convstore

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	key := Key("conv-123")
	if !strings.HasPrefix(key, "fnolgate:v1:") {
		t.Errorf("expected fnolgate:v1: prefix, got %s", key)
	}
	if key != Key("conv-123") {
		t.Error("key should be deterministic")
	}
	if key == Key("conv-124") {
		t.Error("distinct conversations should hash to distinct keys")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Minute)

	if _, found := s.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := s.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := s.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected v, got %q (found=%v)", val, found)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := s.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, time.Hour)

	if err := s.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := s.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("expected v, got %q (found=%v)", val, found)
	}

	// A fresh store over the same directory sees the entry.
	s2 := NewDiskStore(dir, time.Hour)
	if _, found := s2.Get("k"); !found {
		t.Error("expected entry to survive store restart")
	}
}

func TestDiskStore_Expiration(t *testing.T) {
	s := NewDiskStore(t.TempDir(), time.Hour)

	if err := s.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := s.Get("k"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredStore_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only.
	disk := NewDiskStore(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	s := NewLayeredStore(time.Minute, dir, time.Hour)
	val, found := s.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("expected disk hit, got %q (found=%v)", val, found)
	}

	// Now present in the memory layer too.
	if _, found := s.memory.Get("k"); !found {
		t.Error("expected promotion to memory layer")
	}
}

func TestConversations(t *testing.T) {
	c := NewConversations(NewMemoryStore(time.Minute, time.Minute), time.Minute)

	if c.Exists("conv-1") {
		t.Error("expected no pending conversation")
	}

	if err := c.Save("conv-1", "hail damage on 2025-06-15"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !c.Exists("conv-1") {
		t.Error("expected conversation to be pending")
	}

	rec, found := c.Fetch("conv-1")
	if !found {
		t.Fatal("expected to fetch saved conversation")
	}
	if rec.ConversationID != "conv-1" || rec.Body != "hail damage on 2025-06-15" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.SavedAt.IsZero() {
		t.Error("expected SavedAt to be set")
	}

	if err := c.Forget("conv-1"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if c.Exists("conv-1") {
		t.Error("expected conversation to be forgotten")
	}
}
