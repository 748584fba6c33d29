package projection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	mlog "github.com/mike504110403/goutils/log"

	"menu_projection_system/internal/menu"
	"menu_projection_system/internal/source"
)

// ErrNotInitialized : 尚未Initialize就要求重算
var ErrNotInitialized = errors.New("projection: session not initialized")

// Session : 單一登入期間的選單投影。
// 持有目前使用者算出的允許集合、修剪後選單與側邊欄，
// 讀寫以RWMutex保護，generation用來丟棄被新一輪取代的舊計算
type Session struct {
	cfg Config
	src source.Source

	generation uint64

	mux        sync.RWMutex
	username   string
	allowed    menu.AllowedSet
	menuTree   []menu.Node
	sidebar    []menu.SidebarEntry
	computedAt time.Time
}

// NewSession : 建立投影session，src為全部讀取來源
func NewSession(cfg Config, src source.Source) *Session {
	return &Session{
		cfg: cfg.withDefaults(),
		src: src,
	}
}

// Initialize : 登入時呼叫，為指定使用者計算選單投影。
// 重複呼叫會開啟新一輪計算，先前未完成輪次的結果會被丟棄
func (s *Session) Initialize(ctx context.Context, username string) error {
	gen := atomic.AddUint64(&s.generation, 1)
	return s.compute(ctx, gen, username)
}

// Refresh : 權限項目或端點資料異動後重新計算目前使用者的投影
func (s *Session) Refresh(ctx context.Context) error {
	s.mux.RLock()
	username := s.username
	s.mux.RUnlock()
	if username == "" {
		return ErrNotInitialized
	}
	gen := atomic.AddUint64(&s.generation, 1)
	return s.compute(ctx, gen, username)
}

// Reset : 登出時呼叫，清空投影狀態並使未完成的計算失效
func (s *Session) Reset() {
	atomic.AddUint64(&s.generation, 1)
	s.mux.Lock()
	defer s.mux.Unlock()
	s.username = ""
	s.allowed = nil
	s.menuTree = nil
	s.sidebar = nil
	s.computedAt = time.Time{}
}

// Username : 目前投影對應的使用者，未初始化時為空字串
func (s *Session) Username() string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.username
}

// Allowed : 目前的允許集合
func (s *Session) Allowed() menu.AllowedSet {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.allowed
}

// MenuTree : 修剪後的完整選單樹
func (s *Session) MenuTree() []menu.Node {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.menuTree
}

// Sidebar : 側邊欄投影
func (s *Session) Sidebar() []menu.SidebarEntry {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.sidebar
}

// UserMenu : 取目前使用者的選單，超過刷新時間會先重新計算
func (s *Session) UserMenu(ctx context.Context) ([]menu.Node, error) {
	s.mux.RLock()
	username := s.username
	fresh := s.computedAt.Add(s.cfg.RefreshDuration).After(time.Now())
	tree := s.menuTree
	s.mux.RUnlock()

	if username == "" {
		return nil, ErrNotInitialized
	}
	if fresh {
		return tree, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.MenuTree(), nil
}

// IsSuper : 判斷是否為超級使用者，如果未設定則無超級使用者
func (s *Session) IsSuper(username string) bool {
	if s.cfg.SuperUser != "" && username == s.cfg.SuperUser {
		return true
	}
	return false
}

// compute : 執行 取得 -> 比對 -> 收集 -> 修剪 -> 投影 的整條流程。
// 讀取失敗僅記錄並以空集合續行，選單樹完整性錯誤（循環、重複ID）為硬錯誤
func (s *Session) compute(ctx context.Context, gen uint64, username string) error {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	base := s.fetchBase(ctx)

	var allowed menu.AllowedSet
	if s.IsSuper(username) {
		allowed = menu.WildcardSet()
	} else {
		policies := MergedPolicies(ctx, s.src, username)
		granted := grantedMenuIDs(base, policies)
		var err error
		allowed, err = menu.CollectIDs(base.tree, granted)
		if err != nil {
			// 後端資料完整性問題，不可靜默容忍
			mlog.Error("選單樹完整性錯誤: " + err.Error())
			return err
		}
	}

	filtered := menu.Filter(base.tree, allowed)
	sidebar := menu.ProjectSidebar(filtered, s.cfg.Icons)

	s.mux.Lock()
	defer s.mux.Unlock()
	// 取得鎖之後才判斷輪次，避免判斷與發布之間被新一輪插隊
	if atomic.LoadUint64(&s.generation) != gen {
		mlog.Debug("選單投影結果已過期，丟棄: " + username)
		return nil
	}
	s.username = username
	s.allowed = allowed
	s.menuTree = filtered
	s.sidebar = sidebar
	s.computedAt = time.Now()
	return nil
}
