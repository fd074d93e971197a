package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := NewMemory()
	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get(k) = miss, want hit")
	}
	if got != "v" {
		t.Errorf("Get(k) = %v, want v", got)
	}
}

func TestGetMissing(t *testing.T) {
	c := NewMemory()
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}
}

func TestInvalidate(t *testing.T) {
	c := NewMemory()
	c.Set("k", "v", time.Minute)
	c.Invalidate("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Get after Invalidate = hit, want miss")
	}
}

func TestExpiry(t *testing.T) {
	c := NewMemory().(*memoryCache)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("k", "v", time.Minute)

	c.now = func() time.Time { return base.Add(59 * time.Second) }
	if _, ok := c.Get("k"); !ok {
		t.Error("Get before TTL = miss, want hit")
	}

	c.now = func() time.Time { return base.Add(61 * time.Second) }
	if _, ok := c.Get("k"); ok {
		t.Error("Get after TTL = hit, want miss")
	}
}

func TestOverwrite(t *testing.T) {
	c := NewMemory()
	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)

	got, _ := c.Get("k")
	if got != "new" {
		t.Errorf("Get(k) = %v, want new", got)
	}
}
