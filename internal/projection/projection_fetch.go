package projection

import (
	"context"
	"sync"

	mlog "github.com/mike504110403/goutils/log"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/menu"
	"menu_projection_system/internal/source"
)

// baseData : 三項基礎資料，彼此獨立所以並行取得
type baseData struct {
	tree      []menu.Node
	items     []authz.PermissionItem
	endpoints []authz.Endpoint
}

// fetchBase : 並行取得選單樹、權限項目與端點清單。
// 任一項失敗只記錄並以空集合代替，寧可少顯示也不中斷整個投影
func (s *Session) fetchBase(ctx context.Context) baseData {
	var base baseData
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		tree, err := s.src.FetchMenu(ctx)
		if err != nil {
			mlog.Debug("選單樹讀取失敗: " + err.Error())
			return
		}
		base.tree = tree
	}()
	go func() {
		defer wg.Done()
		items, err := s.src.FetchPermissionItems(ctx)
		if err != nil {
			mlog.Debug("權限項目讀取失敗: " + err.Error())
			return
		}
		base.items = items
	}()
	go func() {
		defer wg.Done()
		endpoints, err := s.src.FetchEndpoints(ctx)
		if err != nil {
			mlog.Debug("API端點讀取失敗: " + err.Error())
			return
		}
		base.endpoints = endpoints
	}()
	wg.Wait()

	return base
}

// MergedPolicies : 合併使用者直接策略與各角色策略。
// 角色策略並行取得且各自結算，單一角色失敗不影響其他角色的貢獻
func MergedPolicies(ctx context.Context, src source.Source, username string) []authz.Policy {
	merged := []authz.Policy{}

	direct, err := src.FetchUserPolicies(ctx, username)
	if err != nil {
		mlog.Debug("使用者策略讀取失敗: " + username + ": " + err.Error())
	} else {
		merged = append(merged, direct...)
	}

	roles, err := src.FetchUserRoles(ctx, username)
	if err != nil {
		mlog.Debug("使用者角色讀取失敗: " + username + ": " + err.Error())
		return merged
	}

	results := make([][]authz.Policy, len(roles))
	errs := make([]error, len(roles))
	var wg sync.WaitGroup
	for i, role := range roles {
		wg.Add(1)
		go func(i int, role string) {
			defer wg.Done()
			results[i], errs[i] = src.FetchRolePolicies(ctx, role)
		}(i, role)
	}
	wg.Wait()

	for i, role := range roles {
		if errs[i] != nil {
			mlog.Debug("角色策略讀取失敗，略過: " + role + ": " + errs[i].Error())
			continue
		}
		merged = append(merged, results[i]...)
	}
	return merged
}

// grantedMenuIDs : 以合併策略比對權限項目，取出授權到的選單ID
func grantedMenuIDs(base baseData, policies []authz.Policy) []string {
	index := authz.EndpointIndex(base.endpoints)
	granted := authz.GrantedItems(base.items, index, policies)
	return authz.MenuIDs(granted)
}
