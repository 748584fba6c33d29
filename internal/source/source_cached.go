package source

import (
	"context"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/cache"
)

// cachedSource : 權限項目走快取的讀透包裝，
// 其餘讀取直接委派給底層來源
type cachedSource struct {
	Source
	items cache.ItemCache
}

// WithItemCache : 對權限項目清單掛上短效快取
func WithItemCache(base Source, items cache.ItemCache) Source {
	return &cachedSource{Source: base, items: items}
}

func (s *cachedSource) FetchPermissionItems(ctx context.Context) ([]authz.PermissionItem, error) {
	if items, ok := s.items.Get(ctx); ok {
		return items, nil
	}
	items, err := s.Source.FetchPermissionItems(ctx)
	if err != nil {
		return nil, err
	}
	s.items.Set(ctx, items)
	return items, nil
}
