package source

import (
	"context"
	"testing"
	"time"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/cache"
	"menu_projection_system/internal/menu"
)

// countingSource : 記錄權限項目被回源幾次
type countingSource struct {
	items      []authz.PermissionItem
	itemsCalls int
}

var _ Source = (*countingSource)(nil)

func (s *countingSource) FetchMenu(context.Context) ([]menu.Node, error) { return nil, nil }

func (s *countingSource) FetchPermissionItems(context.Context) ([]authz.PermissionItem, error) {
	s.itemsCalls++
	return s.items, nil
}

func (s *countingSource) FetchEndpoints(context.Context) ([]authz.Endpoint, error) {
	return nil, nil
}

func (s *countingSource) FetchUserPolicies(context.Context, string) ([]authz.Policy, error) {
	return nil, nil
}

func (s *countingSource) FetchRolePolicies(context.Context, string) ([]authz.Policy, error) {
	return nil, nil
}

func (s *countingSource) FetchUserRoles(context.Context, string) ([]string, error) {
	return nil, nil
}

func TestCachedSourceReadThrough(t *testing.T) {
	base := &countingSource{items: []authz.PermissionItem{{ID: "1", Code: "order:list"}}}
	src := WithItemCache(base, cache.NewMemoryCache(time.Minute))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		items, err := src.FetchPermissionItems(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 || items[0].Code != "order:list" {
			t.Fatalf("unexpected items: %+v", items)
		}
	}

	if base.itemsCalls != 1 {
		t.Fatalf("expected a single origin fetch, got %d", base.itemsCalls)
	}
}
