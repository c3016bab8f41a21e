package cache

import (
	"context"
	"testing"
	"time"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"trends", "tiktok", "pov", "20"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestHashKeyDistinguishesParts(t *testing.T) {
	// "a"+"bc" and "ab"+"c" must not collide
	if HashKey("a", "bc") == HashKey("ab", "c") {
		t.Error("HashKey() should separate parts")
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "trendscout:test",
		},
		{
			name:     "key with colon",
			key:      "trends:list:abc",
			expected: "trendscout:trends:list:abc",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "trendscout:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNilCacheSafety(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if _, err := c.Get(ctx, "key"); err != ErrCacheDisabled {
		t.Errorf("Get() on nil cache = %v, want ErrCacheDisabled", err)
	}
	if err := c.Set(ctx, "key", "value", time.Minute); err != ErrCacheDisabled {
		t.Errorf("Set() on nil cache = %v, want ErrCacheDisabled", err)
	}

	// Locking degrades to a no-op grant without Redis
	ok, err := c.AcquireLock(ctx, "ingest", time.Minute)
	if err != nil || !ok {
		t.Errorf("AcquireLock() on nil cache = (%v, %v), want (true, nil)", ok, err)
	}
	if err := c.ReleaseLock(ctx, "ingest"); err != nil {
		t.Errorf("ReleaseLock() on nil cache = %v, want nil", err)
	}
	if err := c.InvalidateTrendLists(ctx); err != nil {
		t.Errorf("InvalidateTrendLists() on nil cache = %v, want nil", err)
	}
}
