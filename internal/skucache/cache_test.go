package skucache

import (
	"testing"
	"time"
)

func TestGetReturnsWithinTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewWithClock(10*time.Minute, func() time.Time { return now })

	cache.Set("ABC-123", 999)

	now = now.Add(9 * time.Minute)
	id, ok := cache.Get("ABC-123")
	if !ok {
		t.Fatal("expected cache hit within TTL")
	}
	if id != 999 {
		t.Fatalf("unexpected id %d", id)
	}
}

func TestGetEvictsExpiredEntry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewWithClock(10*time.Minute, func() time.Time { return now })

	cache.Set("ABC-123", 999)

	now = now.Add(10 * time.Minute)
	if _, ok := cache.Get("ABC-123"); ok {
		t.Fatal("expected entry at TTL boundary to be treated as absent")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected lazy eviction, got %d entries", cache.Len())
	}
}

func TestSetOverwritesWithFreshTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewWithClock(10*time.Minute, func() time.Time { return now })

	cache.Set("ABC-123", 111)

	now = now.Add(8 * time.Minute)
	cache.Set("ABC-123", 222)

	// 12 minutes after the first write, 4 after the second
	now = now.Add(4 * time.Minute)
	id, ok := cache.Get("ABC-123")
	if !ok {
		t.Fatal("expected rewritten entry to still be valid")
	}
	if id != 222 {
		t.Fatalf("unexpected id %d", id)
	}
}

func TestGetMissingCode(t *testing.T) {
	cache := New(10 * time.Minute)
	if _, ok := cache.Get("NOPE"); ok {
		t.Fatal("expected miss for unknown code")
	}
}
