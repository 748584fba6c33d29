package cache

import (
	"context"

	"menu_projection_system/internal/authz"
)

// ItemCache : 權限項目清單的短效快取。
// 僅作為讀取加速，未命中或過期時由呼叫端回源重抓，
// 快取層的任何錯誤都不可阻斷流程
type ItemCache interface {
	Get(ctx context.Context) ([]authz.PermissionItem, bool)
	Set(ctx context.Context, items []authz.PermissionItem)
}
