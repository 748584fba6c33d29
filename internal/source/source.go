package source

import (
	"context"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/menu"
)

type (
	// PolicySource : casbin策略的讀取來源
	PolicySource interface {
		// FetchUserPolicies : 取得使用者的直接策略
		FetchUserPolicies(ctx context.Context, username string) ([]authz.Policy, error)
		// FetchRolePolicies : 取得單一角色的策略
		FetchRolePolicies(ctx context.Context, role string) ([]authz.Policy, error)
		// FetchUserRoles : 由g型策略取得使用者繼承的角色
		FetchUserRoles(ctx context.Context, username string) ([]string, error)
	}

	// Source : 選單投影流程需要的全部讀取來源
	Source interface {
		// FetchMenu : 取得完整選單樹
		FetchMenu(ctx context.Context) ([]menu.Node, error)
		// FetchPermissionItems : 取得全部權限項目
		FetchPermissionItems(ctx context.Context) ([]authz.PermissionItem, error)
		// FetchEndpoints : 取得攤平後的API端點清單
		FetchEndpoints(ctx context.Context) ([]authz.Endpoint, error)
		PolicySource
	}
)

// combinedSource : 基礎來源搭配獨立的策略來源，
// 供策略庫與後台API不同部署時替換策略讀取路徑
type combinedSource struct {
	Source
	policies PolicySource
}

// WithPolicySource : 以另一個策略來源覆蓋base的策略讀取
func WithPolicySource(base Source, policies PolicySource) Source {
	return &combinedSource{Source: base, policies: policies}
}

func (s *combinedSource) FetchUserPolicies(ctx context.Context, username string) ([]authz.Policy, error) {
	return s.policies.FetchUserPolicies(ctx, username)
}

func (s *combinedSource) FetchRolePolicies(ctx context.Context, role string) ([]authz.Policy, error) {
	return s.policies.FetchRolePolicies(ctx, role)
}

func (s *combinedSource) FetchUserRoles(ctx context.Context, username string) ([]string, error) {
	return s.policies.FetchUserRoles(ctx, username)
}
