package cache

import (
	"context"
	"testing"
	"time"

	"menu_projection_system/internal/authz"
)

func TestMemoryCacheMissBeforeSet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	if _, ok := c.Get(context.Background()); ok {
		t.Fatal("expected miss before first Set")
	}
}

func TestMemoryCacheHitWithinTTL(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	c.Set(context.Background(), []authz.PermissionItem{{ID: "1", Code: "order:list"}})

	items, ok := c.Get(context.Background())
	if !ok || len(items) != 1 || items[0].Code != "order:list" {
		t.Fatalf("expected cached items, got %v ok=%v", items, ok)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(context.Background(), []authz.PermissionItem{{ID: "1"}})

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(context.Background()); ok {
		t.Fatal("expected expiry after TTL elapsed")
	}
}

func TestMemoryCacheCopiesItems(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	src := []authz.PermissionItem{{ID: "1", Code: "order:list"}}
	c.Set(context.Background(), src)

	items, _ := c.Get(context.Background())
	items[0].Code = "tampered"

	again, _ := c.Get(context.Background())
	if again[0].Code != "order:list" {
		t.Fatal("cache content must not be affected by caller mutation")
	}
}
