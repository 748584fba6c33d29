package menu

// Wildcard : 全通配選單ID，保留給超級使用者
const Wildcard = "*"

type (
	// Node : 選單節點，後端回傳的樹狀結構
	Node struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Path     string `json:"path,omitempty"`
		Icon     string `json:"icon,omitempty"`
		ParentID string `json:"parentId,omitempty"`
		Children []Node `json:"children,omitempty"`
	}

	// SidebarEntry : 側邊欄顯示用的淺層結構，最多兩層
	SidebarEntry struct {
		ID       string         `json:"id"`
		Name     string         `json:"name"`
		Path     string         `json:"path,omitempty"`
		Icon     string         `json:"icon"`
		Children []SidebarEntry `json:"children,omitempty"`
	}
)

// AllowedSet : 允許顯示的選單ID集合，含有Wildcard時全部放行
type AllowedSet map[string]struct{}

// NewAllowedSet : 由多個選單ID建立集合
func NewAllowedSet(ids ...string) AllowedSet {
	s := make(AllowedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// WildcardSet : 建立全通配集合
func WildcardSet() AllowedSet {
	return NewAllowedSet(Wildcard)
}

// Add : 加入選單ID
func (s AllowedSet) Add(id string) {
	s[id] = struct{}{}
}

// Has : 判斷選單ID是否在集合內
func (s AllowedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IsWildcard : 判斷是否為全通配集合
func (s AllowedSet) IsWildcard() bool {
	return s.Has(Wildcard)
}
