package cache

import (
	"context"
	"sync"
	"time"

	"menu_projection_system/internal/authz"
)

// MemoryCache : 行程內的權限項目快取，寫入時設定下次刷新時間
type MemoryCache struct {
	mux         sync.RWMutex
	items       []authz.PermissionItem
	nextRefresh time.Time
	ttl         time.Duration
	now         func() time.Time
}

var _ ItemCache = (*MemoryCache)(nil)

// NewMemoryCache : 建立記憶體快取，ttl為每筆快取的存活時間
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get : 取出快取的權限項目，過期或尚未寫入時回傳未命中
func (c *MemoryCache) Get(_ context.Context) ([]authz.PermissionItem, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	if c.items == nil || !c.nextRefresh.After(c.now()) {
		return nil, false
	}
	items := make([]authz.PermissionItem, len(c.items))
	copy(items, c.items)
	return items, true
}

// Set : 寫入權限項目並重設刷新時間
func (c *MemoryCache) Set(_ context.Context, items []authz.PermissionItem) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.items = make([]authz.PermissionItem, len(items))
	copy(c.items, items)
	c.nextRefresh = c.now().Add(c.ttl)
}
