package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	mlog "github.com/mike504110403/goutils/log"
	"github.com/redis/go-redis/v9"

	"menu_projection_system/internal/authz"
)

const defaultRedisKey = "menuproj:permission_items"

// RedisCache : 跨行程共用的權限項目快取，多台後台實例共享同一份
type RedisCache struct {
	c   *redis.Client
	key string
	ttl time.Duration
}

var _ ItemCache = (*RedisCache)(nil)

// NewRedisCache : 建立redis快取，key為空時使用預設鍵名
func NewRedisCache(c *redis.Client, key string, ttl time.Duration) *RedisCache {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisCache{c: c, key: key, ttl: ttl}
}

// Get : 取出快取的權限項目，redis錯誤一律視為未命中
func (c *RedisCache) Get(ctx context.Context) ([]authz.PermissionItem, bool) {
	raw, err := c.c.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			mlog.Debug("redis快取讀取失敗: " + err.Error())
		}
		return nil, false
	}
	var items []authz.PermissionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		mlog.Debug("redis快取解析失敗: " + err.Error())
		return nil, false
	}
	return items, true
}

// Set : 寫入權限項目，寫入失敗僅記錄不回報
func (c *RedisCache) Set(ctx context.Context, items []authz.PermissionItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		mlog.Debug("redis快取序列化失敗: " + err.Error())
		return
	}
	if err := c.c.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		mlog.Debug("redis快取寫入失敗: " + err.Error())
	}
}
