package menu

import (
	"errors"
	"reflect"
	"testing"
)

func TestCollectIDsIncludesAncestors(t *testing.T) {
	tree := sampleTree()

	allowed, err := CollectIDs(tree, []string{"a2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"a2", "a", "root"} {
		if !allowed.Has(id) {
			t.Fatalf("expected %s in allowed set, got %v", id, allowed)
		}
	}
	if allowed.Has("a1") || allowed.Has("b") {
		t.Fatalf("unrelated ids leaked into allowed set: %v", allowed)
	}
}

func TestCollectIDsSkipsEmptyMenuID(t *testing.T) {
	tree := sampleTree()

	allowed, err := CollectIDs(tree, []string{"", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allowed) != 2 || !allowed.Has("b") || !allowed.Has("root") {
		t.Fatalf("unexpected allowed set: %v", allowed)
	}
}

func TestCollectIDsDuplicateIDIsError(t *testing.T) {
	tree := []Node{
		{ID: "root", Children: []Node{
			{ID: "x", ParentID: "root"},
			{ID: "x", ParentID: "root"},
		}},
	}
	if _, err := CollectIDs(tree, []string{"x"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddAncestorsDetectsCycle(t *testing.T) {
	// 人為構造循環的父節點索引，走訪必須以錯誤終止而非無窮迴圈
	parents := map[string]string{"a": "b", "b": "c", "c": "a"}
	allowed := NewAllowedSet("a")
	if err := addAncestors(allowed, parents, "a"); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestFlattenIDsPreorder(t *testing.T) {
	tree := sampleTree()
	got := FlattenIDs(tree)
	want := []string{"root", "a", "a1", "a2", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWildcardSet(t *testing.T) {
	s := WildcardSet()
	if !s.IsWildcard() {
		t.Fatal("expected wildcard set")
	}
	if NewAllowedSet("root").IsWildcard() {
		t.Fatal("plain set must not be wildcard")
	}
}
