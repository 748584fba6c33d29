package menu

// Filter : 依允許集合修剪選單樹，回傳新樹不變動原樹。
// 節點不在集合內時整個子樹一併捨棄；祖先閉包已保證
// 被授權的子孫必定帶著祖先一起進集合，不會被誤藏
func Filter(tree []Node, allowed AllowedSet) []Node {
	if len(tree) == 0 {
		return nil
	}
	wildcard := allowed.IsWildcard()

	filtered := []Node{}
	for _, n := range tree {
		if !wildcard && !allowed.Has(n.ID) {
			continue
		}
		kept := n
		kept.Children = Filter(n.Children, allowed)
		filtered = append(filtered, kept)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
