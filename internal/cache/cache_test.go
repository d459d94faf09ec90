package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNewMinimumCapacity(t *testing.T) {
	tests := []struct {
		capacity int
		want     int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{64, 64},
	}
	for _, tt := range tests {
		if got := New[string, int](tt.capacity).Capacity(); got != tt.want {
			t.Errorf("New(%d).Capacity() = %d, want %d", tt.capacity, got, tt.want)
		}
	}
}

func TestGetSet(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits and 1 miss", s)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b is now oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() int {
		calls++
		return 100 + calls
	}

	if v := c.GetOrCreate("k", create); v != 101 {
		t.Errorf("first GetOrCreate = %d, want 101", v)
	}
	if v := c.GetOrCreate("k", create); v != 101 {
		t.Errorf("second GetOrCreate = %d, want cached 101", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[int, string](8)
	for i := range 5 {
		c.Set(i, strconv.Itoa(i))
	}
	if !c.Delete(2) {
		t.Error("Delete(2) = false, want true")
	}
	if c.Delete(2) {
		t.Error("second Delete(2) = true, want false")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	// The list must be usable after Clear.
	c.Set(7, "7")
	if v, ok := c.Get(7); !ok || v != "7" {
		t.Errorf("Get(7) = %q, %v", v, ok)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (g*31 + i) % 40
				c.GetOrCreate(k, func() int { return k * 2 })
				if v, ok := c.Get(k); ok && v != k*2 {
					t.Errorf("Get(%d) = %d, want %d", k, v, k*2)
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len() = %d, exceeds capacity", c.Len())
	}
}
