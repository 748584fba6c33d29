package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID : 選單樹內出現重複ID，屬後端資料完整性錯誤
	ErrDuplicateID = errors.New("menu: duplicate node id")
	// ErrCycle : 祖先鏈出現循環，屬後端資料完整性錯誤
	ErrCycle = errors.New("menu: cycle in parent chain")
)

// CollectIDs : 將授權到的選單ID擴展為含所有祖先的集合，
// 確保可見的葉節點到根的路徑不會被隱藏
func CollectIDs(tree []Node, menuIDs []string) (AllowedSet, error) {
	parents, err := parentIndex(tree)
	if err != nil {
		return nil, err
	}

	allowed := NewAllowedSet()
	for _, id := range menuIDs {
		if id == "" {
			continue
		}
		allowed.Add(id)
		if err := addAncestors(allowed, parents, id); err != nil {
			return nil, err
		}
	}
	return allowed, nil
}

// FlattenIDs : 取出樹內所有選單ID，順序為前序走訪
func FlattenIDs(tree []Node) []string {
	ids := []string{}
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			ids = append(ids, n.ID)
			walk(n.Children)
		}
	}
	walk(tree)
	return ids
}

// parentIndex : 建立 選單ID -> 父節點ID 的索引，重複ID直接回報錯誤
func parentIndex(tree []Node) (map[string]string, error) {
	parents := map[string]string{}
	var walk func(nodes []Node, parentID string) error
	walk = func(nodes []Node, parentID string) error {
		for _, n := range nodes {
			if _, ok := parents[n.ID]; ok {
				return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
			}
			parents[n.ID] = parentID
			if err := walk(n.Children, n.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(tree, ""); err != nil {
		return nil, err
	}
	return parents, nil
}

// addAncestors : 沿父節點鏈往上加入集合，以visited防止循環造成無窮迴圈
func addAncestors(allowed AllowedSet, parents map[string]string, id string) error {
	visited := map[string]struct{}{id: {}}
	cur := parents[id]
	for cur != "" {
		if _, ok := visited[cur]; ok {
			return fmt.Errorf("%w: %s", ErrCycle, cur)
		}
		visited[cur] = struct{}{}
		allowed.Add(cur)
		cur = parents[cur]
	}
	return nil
}
