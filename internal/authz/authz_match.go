package authz

// Granted : 判斷單一權限項目是否被合併後的策略清單授權。
// 先找完全相符（路徑+方法+動態參數），找不到且項目帶有動態參數時，
// 再找同路徑同方法且無參數限定的上層策略，視為涵蓋所有參數變體
func Granted(item PermissionItem, endpoints map[string]Endpoint, policies []Policy) bool {
	ep, ok := endpoints[item.Code]
	if !ok {
		// code對不到端點就無從比對，一律視為拒絕
		return false
	}

	for _, p := range policies {
		if !p.IsAllow() || p.Object != ep.Path || p.Action != ep.Method {
			continue
		}
		if attrsEqual(p.Attrs, item.DynamicParams) {
			return true
		}
	}

	if len(item.DynamicParams) > 0 {
		for _, p := range policies {
			if p.IsAllow() && p.Object == ep.Path && p.Action == ep.Method && len(p.Attrs) == 0 {
				return true
			}
		}
	}

	return false
}

// GrantedItems : 過濾出被授權的權限項目
func GrantedItems(items []PermissionItem, endpoints map[string]Endpoint, policies []Policy) []PermissionItem {
	granted := []PermissionItem{}
	for _, item := range items {
		if Granted(item, endpoints, policies) {
			granted = append(granted, item)
		}
	}
	return granted
}

// MenuIDs : 取出授權項目綁定的選單ID，略過未綁定選單的項目
func MenuIDs(items []PermissionItem) []string {
	ids := []string{}
	for _, item := range items {
		if item.MenuID != "" {
			ids = append(ids, item.MenuID)
		}
	}
	return ids
}

// attrsEqual : 動態參數以鍵值對比較，不受鍵順序影響，兩邊皆空視為相等
func attrsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
