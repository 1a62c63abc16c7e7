package service

import (
	"testing"

	"quiz-platform/internal/models"
)

func flatCategories() []models.Category {
	return []models.Category{
		{ID: "dsa", Name: "Data Structures"},
		{ID: "os", Name: "Operating Systems"},
		{ID: "algo", Name: "Algorithms"},
		{ID: "trees", Name: "Trees", ParentID: "dsa"},
		{ID: "graphs", Name: "Graphs", ParentID: "dsa"},
		{ID: "avl", Name: "AVL Trees", ParentID: "trees"},
		{ID: "redblack", Name: "Red-Black Trees", ParentID: "trees"},
		{ID: "deep", Name: "Too Deep", ParentID: "avl"},
	}
}

func TestBuildTreeRootsOnlyAtTopLevel(t *testing.T) {
	tree := BuildTree(flatCategories())

	if len(tree) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(tree))
	}
	for _, node := range tree {
		if node.ParentID != "" {
			t.Errorf("non-root %s at top level", node.ID)
		}
	}
}

func TestBuildTreeRootsSortedByName(t *testing.T) {
	tree := BuildTree(flatCategories())

	want := []string{"Algorithms", "Data Structures", "Operating Systems"}
	for i, node := range tree {
		if node.Name != want[i] {
			t.Errorf("root %d = %q, want %q", i, node.Name, want[i])
		}
	}
}

func TestBuildTreeChildrenAttached(t *testing.T) {
	tree := BuildTree(flatCategories())

	var dsa *models.CategoryNode
	for _, node := range tree {
		if node.ID == "dsa" {
			dsa = node
		}
	}
	if dsa == nil {
		t.Fatal("dsa root missing")
	}
	if len(dsa.Children) != 2 {
		t.Fatalf("expected 2 children under dsa, got %d", len(dsa.Children))
	}
	// Children keep storage order, not name order.
	if dsa.Children[0].ID != "trees" || dsa.Children[1].ID != "graphs" {
		t.Errorf("children out of storage order: %s, %s", dsa.Children[0].ID, dsa.Children[1].ID)
	}
}

// The tree expands two levels below each root and stops there.
func TestBuildTreeDepthLimit(t *testing.T) {
	tree := BuildTree(flatCategories())

	for _, node := range tree {
		if node.ID != "dsa" {
			continue
		}
		trees := node.Children[0]
		if len(trees.Children) != 2 {
			t.Fatalf("expected 2 grandchildren under trees, got %d", len(trees.Children))
		}
		for _, grandchild := range trees.Children {
			if len(grandchild.Children) != 0 {
				t.Errorf("grandchild %s expanded beyond depth 2", grandchild.ID)
			}
		}
	}
}

func TestWouldCreateCycle(t *testing.T) {
	parentOf := map[string]string{
		"a": "",
		"b": "a",
		"c": "b",
	}

	testCases := []struct {
		name      string
		id        string
		newParent string
		want      bool
	}{
		{"self parent", "a", "a", true},
		{"direct cycle", "b", "c", true},
		{"long cycle", "a", "c", true},
		{"valid reparent to root", "c", "a", false},
		{"valid reparent to sibling tree", "b", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WouldCreateCycle(parentOf, tc.id, tc.newParent); got != tc.want {
				t.Errorf("WouldCreateCycle(%s -> %s) = %v, want %v", tc.id, tc.newParent, got, tc.want)
			}
		})
	}
}

// A pre-existing cycle in stored data must not hang the walk.
func TestWouldCreateCycleTerminatesOnCorruptData(t *testing.T) {
	parentOf := map[string]string{
		"x": "y",
		"y": "x",
	}
	if WouldCreateCycle(parentOf, "z", "x") {
		t.Error("z is not part of the existing cycle")
	}
}
