// Forkfeed - Social Food Discovery Feed and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkfeed

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_Basic(t *testing.T) {
	c := NewLRUCache(10, time.Minute)

	c.Set("a", []string{"u1"})
	v, ok := c.Get("a")
	if !ok {
		t.Fatal("Expected a to exist")
	}
	if ids, _ := v.([]string); len(ids) != 1 || ids[0] != "u1" {
		t.Errorf("unexpected value %v", v)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected missing key to be absent")
	}
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch a so b becomes the oldest
	c.Get("a")
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("Expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Expected %s to remain", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Expected 3 entries, got %d", c.Len())
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestLRUCache_TTL(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCacheWithClock(10, time.Minute, clock.Now)

	c.SetWithTTL("k", "v", time.Second)
	clock.Advance(time.Second)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected entry to expire exactly at its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry removed, Len() = %d", c.Len())
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := NewLRUCache(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)
	c.Set("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Expected a=10 to survive, got %v, %v", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Expected b to be evicted")
	}
}

func TestLRUCache_DeleteAndClear(t *testing.T) {
	c := NewLRUCache(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a deleted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", c.Len())
	}

	// The list must still be usable after Clear
	c.Set("c", 3)
	if _, ok := c.Get("c"); !ok {
		t.Error("Expected c after clear")
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	clock := newFakeClock()
	c := NewLRUCacheWithClock(10, time.Minute, clock.Now)

	c.SetWithTTL("a", 1, time.Second)
	c.SetWithTTL("b", 2, time.Hour)
	clock.Advance(2 * time.Second)

	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}
}

func TestLRUCache_Concurrency(t *testing.T) {
	c := NewLRUCache(100, time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (id*j)%150)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Expected at most 100 entries, got %d", c.Len())
	}
}
