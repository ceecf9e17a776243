package menutree

import "testing"

func sampleNodes() []Node {
	return []Node{
		{ID: "hr", Name: "HR", SortOrder: 1, Active: true},
		{ID: "members", Name: "Members", ParentID: "hr", Path: "/members", SortOrder: 1, Active: true},
		{ID: "attendance", Name: "Attendance", ParentID: "hr", Path: "/attendance", SortOrder: 2, Active: true},
		{ID: "legacy", Name: "Legacy", ParentID: "hr", Path: "/legacy", SortOrder: 3, Active: false},
		{ID: "system", Name: "System", SortOrder: 2, Active: true, RequiredRole: "admin"},
		{ID: "sys-users", Name: "Users", ParentID: "system", Path: "/system/users", SortOrder: 1, Active: true},
		{ID: "sys-menus", Name: "Menus", ParentID: "system", Path: "/system/menus", SortOrder: 2, Active: true},
	}
}

func TestBuildOrdersSiblings(t *testing.T) {
	tree := Build(sampleNodes())

	roots := tree.Roots()
	if len(roots) != 2 || roots[0] != "hr" || roots[1] != "system" {
		t.Fatalf("roots = %v", roots)
	}
	hr := tree.Node("hr")
	want := []string{"members", "attendance", "legacy"}
	if len(hr.Children) != len(want) {
		t.Fatalf("hr children = %v", hr.Children)
	}
	for i, id := range want {
		if hr.Children[i] != id {
			t.Errorf("hr.Children[%d] = %s, want %s", i, hr.Children[i], id)
		}
	}
}

func TestBuildOrphanBecomesRoot(t *testing.T) {
	tree := Build([]Node{
		{ID: "a", ParentID: "missing", Active: true},
	})
	if len(tree.Roots()) != 1 || tree.Roots()[0] != "a" {
		t.Errorf("orphan not promoted to root: %v", tree.Roots())
	}
}

func TestFilterByRole(t *testing.T) {
	tree := Build(sampleNodes())

	asAdmin := tree.Filter(func(role string) bool { return role == "admin" })
	if asAdmin.Node("system") == nil || asAdmin.Node("sys-users") == nil {
		t.Error("admin lost the system subtree")
	}
	if asAdmin.Node("legacy") != nil {
		t.Error("inactive node survived filtering")
	}

	asUser := tree.Filter(func(string) bool { return false })
	if asUser.Node("system") != nil {
		t.Error("restricted subtree visible without the role")
	}
	// A gated parent hides permitted children too.
	if asUser.Node("sys-users") != nil {
		t.Error("child of restricted parent leaked through")
	}
	if asUser.Node("members") == nil {
		t.Error("plain active page filtered out")
	}
}

func TestExpandedForCurrentPath(t *testing.T) {
	tree := Build(sampleNodes())

	expanded := tree.ExpandedFor("/attendance")
	if !expanded["hr"] {
		t.Error("ancestor of active page not expanded")
	}
	if expanded["system"] {
		t.Error("unrelated directory expanded")
	}

	if got := tree.ExpandedFor(""); len(got) != 0 {
		t.Errorf("no location should expand nothing, got %v", got)
	}
}

func TestCascadeDelete(t *testing.T) {
	e := NewEditor([]Node{
		{ID: "dir", Name: "Dir", Active: true},
		{ID: "sub", Name: "Sub", ParentID: "dir", Active: true},
		{ID: "page", Name: "Page", ParentID: "dir", Path: "/page", Active: true},
	})

	if err := e.Delete("dir"); err != nil {
		t.Fatal(err)
	}

	dir, _ := e.Node("dir")
	if !dir.IsDeleted {
		t.Error("directory not flagged deleted")
	}
	sub, _ := e.Node("sub")
	if !sub.IsDeleted {
		t.Error("child directory not cascaded")
	}
	page, _ := e.Node("page")
	if page.IsDeleted {
		t.Error("child page must never be flagged deleted")
	}
	if page.ParentID != "" {
		t.Error("child page not detached")
	}
	if !page.IsModified {
		t.Error("detached page not staged as modified")
	}
}

func TestPagesNotDeletable(t *testing.T) {
	e := NewEditor([]Node{{ID: "page", Path: "/p", Active: true}})
	if err := e.Delete("page"); err == nil {
		t.Error("expected error deleting a page")
	}
}

func TestSwapOrderLeavesOthersAlone(t *testing.T) {
	e := NewEditor([]Node{
		{ID: "a", SortOrder: 1},
		{ID: "b", SortOrder: 2},
		{ID: "c", SortOrder: 3},
	})

	if err := e.SwapOrder("a", "b"); err != nil {
		t.Fatal(err)
	}
	a, _ := e.Node("a")
	b, _ := e.Node("b")
	c, _ := e.Node("c")
	if a.SortOrder != 2 || b.SortOrder != 1 {
		t.Errorf("swap got a=%d b=%d", a.SortOrder, b.SortOrder)
	}
	if c.SortOrder != 3 || c.IsModified {
		t.Error("uninvolved sibling touched")
	}
	if !a.IsModified || !b.IsModified {
		t.Error("swapped nodes not staged as modified")
	}
}

func TestNewNodesNeverModified(t *testing.T) {
	e := NewEditor(nil)
	id := e.Add(Node{Name: "Fresh"})
	if err := e.Rename(id, "Renamed"); err != nil {
		t.Fatal(err)
	}
	n, _ := e.Node(id)
	if !n.IsNew || n.IsModified {
		t.Errorf("flags = new:%v modified:%v, want new only", n.IsNew, n.IsModified)
	}
}
