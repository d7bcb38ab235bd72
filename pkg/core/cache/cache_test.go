package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New(DefaultConfig())

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Set("NUMBER(2) BINARY_OPERATOR(+) NUMBER(3)", "tree")
	v, ok := c.Get("NUMBER(2) BINARY_OPERATOR(+) NUMBER(3)")
	if !ok || v != "tree" {
		t.Errorf("Get() = %v, %v", v, ok)
	}

	c.Set("NUMBER(2) BINARY_OPERATOR(+) NUMBER(3)", "other")
	if v, _ := c.Get("NUMBER(2) BINARY_OPERATOR(+) NUMBER(3)"); v != "other" {
		t.Errorf("overwrite: Get() = %v", v)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}

	hits, misses, rate := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses", hits, misses)
	}
	if rate < 66 || rate > 67 {
		t.Errorf("hitRate = %v", rate)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(Config{MaxItems: 2})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestCache_TTL(t *testing.T) {
	c := New(Config{MaxItems: 10, TTL: time.Minute})
	now := time.Date(2025, 12, 7, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(30 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be valid")
	}

	now = now.Add(time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if c.Size() != 0 {
		t.Errorf("expired entry not removed, Size() = %d", c.Size())
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New(DefaultConfig())
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be deleted")
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d", c.Size())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New(Config{MaxItems: 50})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (i*j)%80)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Size() > 50 {
		t.Errorf("Size() = %d exceeds MaxItems", c.Size())
	}
}
