package menu

// DefaultIcon : 名稱查不到對應圖示時的預設圖示
const DefaultIcon = "menu"

// homeEntry : 固定置頂的首頁項目，不受權限系統控管
func homeEntry() SidebarEntry {
	return SidebarEntry{
		ID:   "home",
		Name: "首頁",
		Path: "/home",
		Icon: "home",
	}
}

// ProjectSidebar : 將修剪後的完整選單樹壓縮為側邊欄的兩層結構，
// 第三層以下不顯示也不上提，並依名稱查表附上圖示
func ProjectSidebar(tree []Node, icons map[string]string) []SidebarEntry {
	entries := []SidebarEntry{homeEntry()}
	for _, n := range tree {
		entry := toEntry(n, icons)
		for _, c := range n.Children {
			entry.Children = append(entry.Children, toEntry(c, icons))
		}
		entries = append(entries, entry)
	}
	return entries
}

func toEntry(n Node, icons map[string]string) SidebarEntry {
	return SidebarEntry{
		ID:   n.ID,
		Name: n.Name,
		Path: n.Path,
		Icon: iconFor(n, icons),
	}
}

// iconFor : 節點自帶圖示優先，其次依名稱查表，最後給預設值
func iconFor(n Node, icons map[string]string) string {
	if n.Icon != "" {
		return n.Icon
	}
	if icon, ok := icons[n.Name]; ok && icon != "" {
		return icon
	}
	return DefaultIcon
}
