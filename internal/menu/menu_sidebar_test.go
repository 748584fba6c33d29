package menu

import "testing"

func TestProjectSidebarPrependsHome(t *testing.T) {
	entries := ProjectSidebar(nil, nil)
	if len(entries) != 1 {
		t.Fatalf("expected only home entry, got %d entries", len(entries))
	}
	if entries[0].ID != "home" || entries[0].Icon != "home" {
		t.Fatalf("unexpected home entry: %+v", entries[0])
	}
}

func TestProjectSidebarTruncatesToTwoLevels(t *testing.T) {
	tree := []Node{
		{ID: "root", Name: "系統管理", Children: []Node{
			{ID: "a", Name: "訂單管理", ParentID: "root", Children: []Node{
				{ID: "a1", Name: "下單作業", ParentID: "a"},
			}},
		}},
	}

	entries := ProjectSidebar(tree, nil)
	if len(entries) != 2 {
		t.Fatalf("expected home + root, got %d entries", len(entries))
	}
	root := entries[1]
	if len(root.Children) != 1 {
		t.Fatalf("expected one child under root, got %+v", root.Children)
	}
	// 第三層不顯示也不上提
	if len(root.Children[0].Children) != 0 {
		t.Fatalf("grandchildren must be dropped, got %+v", root.Children[0].Children)
	}
}

func TestProjectSidebarIconLookup(t *testing.T) {
	tree := []Node{
		{ID: "x", Name: "訂單管理", Icon: "truck"},
		{ID: "y", Name: "價卡管理"},
		{ID: "z", Name: "沒人認識的選單"},
	}
	icons := map[string]string{"價卡管理": "tags"}

	entries := ProjectSidebar(tree, icons)
	if entries[1].Icon != "truck" {
		t.Fatalf("node icon should win, got %s", entries[1].Icon)
	}
	if entries[2].Icon != "tags" {
		t.Fatalf("expected icon from name lookup, got %s", entries[2].Icon)
	}
	if entries[3].Icon != DefaultIcon {
		t.Fatalf("expected default icon, got %s", entries[3].Icon)
	}
}
