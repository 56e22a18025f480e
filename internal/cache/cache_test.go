package cache

import (
	"testing"
	"time"
)

func TestGetSetDelete(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("empty cache must miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("got (%v,%v)", v, ok)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("deleted key must miss")
	}
}

func TestEvictionKeepsRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should have survived")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expired entry must miss")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("cleaned %d, want 2", n)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d after clean", c.Size())
	}
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager()
	c := NewLRUCache[int](10, time.Millisecond)
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	c.Set("a", 1)
	time.Sleep(25 * time.Millisecond)
	m.Stop()
	m.Stop()
	if c.Size() != 0 {
		t.Fatalf("manager should have swept expired entries")
	}
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager()
	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop must not block when cleanup never started")
	}
}
