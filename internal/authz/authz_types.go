package authz

// 權限效果
const (
	EffectAllow string = "allow"
	EffectDeny  string = "deny"
)

type (
	// PermissionItem : 權限項目，code對應一個API端點，
	// menuId為此權限控管顯示的選單節點（可為空）
	PermissionItem struct {
		ID            string            `json:"id"`
		Code          string            `json:"code"`
		MenuID        string            `json:"menuId,omitempty"`
		DynamicParams map[string]string `json:"dynamicParams,omitempty"`
	}

	// Endpoint : 後端API端點
	Endpoint struct {
		ID          string `json:"id"`
		Method      string `json:"method"`
		Path        string `json:"path"`
		Group       string `json:"group,omitempty"`
		Description string `json:"description,omitempty"`
	}

	// Policy : casbin策略，obj為API路徑、act為HTTP方法，
	// attrs為動態參數的限定條件（可為空）
	Policy struct {
		Subject string            `json:"sub"`
		Object  string            `json:"obj"`
		Action  string            `json:"act"`
		Attrs   map[string]string `json:"attrs,omitempty"`
		Effect  string            `json:"eft"`
	}

	// GroupRule : 使用者-角色 對應（g型策略）
	GroupRule struct {
		User string `json:"user"`
		Role string `json:"role"`
	}
)

// IsAllow : 判斷策略效果是否為允許，空字串視為允許（casbin預設）
func (p Policy) IsAllow() bool {
	return p.Effect == EffectAllow || p.Effect == ""
}

// EndpointIndex : 以權限code為鍵的端點索引。
// 後端API把端點紀錄的id直接當作權限項目的code使用
func EndpointIndex(endpoints []Endpoint) map[string]Endpoint {
	index := make(map[string]Endpoint, len(endpoints))
	for _, ep := range endpoints {
		index[ep.ID] = ep
	}
	return index
}
