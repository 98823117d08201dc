package cache

import (
	"testing"
	"time"
)

func TestNameCache_RoundTrip(t *testing.T) {
	c := NewNameCache(time.Minute)

	if _, found := c.Get("Smith"); found {
		t.Fatal("expected miss on empty cache")
	}

	variants := []string{"John A. Smith", "John B. Smith"}
	c.Set("Smith", variants)

	got, found := c.Get("Smith")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 2 {
		t.Errorf("got %d variants, want 2", len(got))
	}
}

func TestNameCache_KeyNormalization(t *testing.T) {
	c := NewNameCache(time.Minute)

	c.Set("  Smith ", []string{"John Smith"})
	if _, found := c.Get("smith"); !found {
		t.Error("expected case- and space-insensitive key lookup")
	}
}

func TestNameCache_Flush(t *testing.T) {
	c := NewNameCache(time.Minute)

	c.Set("Smith", []string{"John Smith"})
	c.Flush()
	if _, found := c.Get("Smith"); found {
		t.Error("expected miss after Flush")
	}
}
