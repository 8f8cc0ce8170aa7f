package caching

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://www.gutenberg.org/files/2701/2701-0.txt"

	if _, ok := cache.Get(url); ok {
		t.Error("Get() before Set() = hit, want miss")
	}

	want := []byte("Call me Ishmael.")
	if err := cache.Set(url, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get(url)
	if !ok {
		t.Fatal("Get() after Set() = miss, want hit")
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	// Different URL is a different key.
	if _, ok := cache.Get("https://www.gutenberg.org/files/345/345-0.txt"); ok {
		t.Error("Get() with other URL = hit, want miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://example.com/book.txt"
	if err := cache.Set(url, []byte("text")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, ok := cache.Get(url); ok {
		t.Error("Get() after TTL = hit, want miss (expired)")
	}
}
