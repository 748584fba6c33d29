package source

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"strings"

	sqladapter "github.com/Blank-Xu/sql-adapter"
	casbin "github.com/casbin/casbin/v2"
	_ "github.com/go-sql-driver/mysql"
	mlog "github.com/mike504110403/goutils/log"
	tempfile "github.com/mike504110403/goutils/tempFile"

	"menu_projection_system/internal/authz"
)

//go:embed rbac_model.conf
var modelFS embed.FS

// CasbinSource : 直連策略資料庫的策略來源，
// 與後台API同機房部署時可略過HTTP繞路，並提供策略的管理寫入
type CasbinSource struct {
	enforcer *casbin.Enforcer
}

var _ PolicySource = (*CasbinSource)(nil)

// NewCasbinSource : 以既有DB連線初始化casbin，
// 內嵌的規則檔經由臨時路徑交給套件讀取
func NewCasbinSource(db *sql.DB, driverName string, table string) (*CasbinSource, error) {
	modelFile, err := modelFS.ReadFile("rbac_model.conf")
	if err != nil {
		return nil, err
	}
	fileInfo, err := tempfile.TempFile(modelFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := fileInfo.Delete(); err != nil {
			mlog.Fatal(err.Error())
		}
	}()

	a, err := sqladapter.NewAdapter(db, driverName, table)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(fileInfo.Path, a)
	if err != nil {
		return nil, err
	}
	// 註冊多action比對
	e.AddFunction("actMatch", actMatch)
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinSource{enforcer: e}, nil
}

// FetchUserPolicies : 取得使用者的直接策略
func (s *CasbinSource) FetchUserPolicies(_ context.Context, username string) ([]authz.Policy, error) {
	rows, err := s.enforcer.GetPermissionsForUser(username)
	if err != nil {
		return nil, err
	}
	return policiesFromRows(rows)
}

// FetchRolePolicies : 取得角色的策略，casbin的主體欄位對角色與使用者一視同仁
func (s *CasbinSource) FetchRolePolicies(_ context.Context, role string) ([]authz.Policy, error) {
	rows, err := s.enforcer.GetPermissionsForUser(role)
	if err != nil {
		return nil, err
	}
	return policiesFromRows(rows)
}

// FetchUserRoles : 取得使用者繼承的角色
func (s *CasbinSource) FetchUserRoles(_ context.Context, username string) ([]string, error) {
	return s.enforcer.GetRolesForUser(username)
}

// HasEndpointPermission : 透過casbin確認使用者可呼叫某個端點
func (s *CasbinSource) HasEndpointPermission(user string, path string, method string) (bool, error) {
	return s.enforcer.Enforce(user, path, method)
}

// GrantPolicy : 新增策略並重新載入
func (s *CasbinSource) GrantPolicy(p authz.Policy) (bool, error) {
	row, err := rowFromPolicy(p)
	if err != nil {
		return false, err
	}
	if result, err := s.enforcer.AddPermissionForUser(p.Subject, row...); err != nil {
		return result, err
	} else {
		return result, s.enforcer.LoadPolicy()
	}
}

// RevokePolicy : 刪除策略並重新載入
func (s *CasbinSource) RevokePolicy(p authz.Policy) (bool, error) {
	row, err := rowFromPolicy(p)
	if err != nil {
		return false, err
	}
	if result, err := s.enforcer.DeletePermissionForUser(p.Subject, row...); err != nil {
		return result, err
	} else {
		return result, s.enforcer.LoadPolicy()
	}
}

// AddRoleForUser : 設定使用者的角色
func (s *CasbinSource) AddRoleForUser(user string, role string) (bool, error) {
	return s.enforcer.AddRoleForUser(user, role)
}

// DeleteRoleForUser : 刪除使用者的角色
func (s *CasbinSource) DeleteRoleForUser(user string, role string) (bool, error) {
	return s.enforcer.DeleteRoleForUser(user, role)
}

// DeleteRolesForUser : 刪除使用者的所有角色
func (s *CasbinSource) DeleteRolesForUser(user string) (bool, error) {
	return s.enforcer.DeleteRolesForUser(user)
}

// UpdateRolesForUser : 以目標清單為準調整使用者的角色
func (s *CasbinSource) UpdateRolesForUser(user string, roles []string) (bool, error) {
	currentRoles, err := s.enforcer.GetRolesForUser(user)
	if err != nil {
		return false, err
	}
	rolesToAdd := difference(roles, currentRoles)
	if rolesToAdd != nil {
		if _, err := s.enforcer.AddRolesForUser(user, rolesToAdd); err != nil {
			return false, err
		}
	}
	rolesToDel := difference(currentRoles, roles)
	for _, role := range rolesToDel {
		if _, err := s.enforcer.DeleteRoleForUser(user, role); err != nil {
			mlog.Debug("casbin角色刪除失敗: " + user + ", " + role)
			return false, err
		}
	}
	return true, nil
}

// policiesFromRows : casbin策略列轉回結構，attrs欄位為JSON字串
func policiesFromRows(rows [][]string) ([]authz.Policy, error) {
	policies := make([]authz.Policy, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			return nil, errors.New("casbin策略欄位數量錯誤")
		}
		p := authz.Policy{
			Subject: row[0],
			Object:  row[1],
			Action:  row[2],
			Effect:  row[4],
		}
		if row[3] != "" && row[3] != "{}" {
			if err := json.Unmarshal([]byte(row[3]), &p.Attrs); err != nil {
				return nil, err
			}
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// rowFromPolicy : 結構轉casbin策略列，attrs以JSON正規化（鍵排序固定）
func rowFromPolicy(p authz.Policy) ([]string, error) {
	attrs := "{}"
	if len(p.Attrs) > 0 {
		raw, err := json.Marshal(p.Attrs)
		if err != nil {
			return nil, err
		}
		attrs = string(raw)
	}
	eft := p.Effect
	if eft == "" {
		eft = authz.EffectAllow
	}
	return []string{p.Object, p.Action, attrs, eft}, nil
}

// actMatch : 策略的act欄位允許逗號分隔多個方法
func actMatch(args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, errors.New("參數數量錯誤")
	}
	reqAct := args[0].(string)
	polAct := args[1].(string)
	for _, action := range strings.Split(polAct, ",") {
		if action == reqAct {
			return true, nil
		}
	}
	return false, nil
}

func difference(slice1 []string, slice2 []string) []string {
	var diff []string
	m := make(map[string]bool)

	for _, s := range slice2 {
		m[s] = true
	}

	for _, s := range slice1 {
		if !m[s] {
			diff = append(diff, s)
		}
	}

	return diff
}
