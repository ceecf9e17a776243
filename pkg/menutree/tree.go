package menutree

import "sort"

// Node is one menu entry. A node with a non-empty Path is a page; a node
// with an empty Path is a directory and may carry children. An empty
// ParentID means the node sits at the root (or has been detached).
type Node struct {
	ID           string `json:"menu_id" bson:"menu_id"`
	Name         string `json:"menu_name" bson:"menu_name"`
	ParentID     string `json:"parent_menu_id,omitempty" bson:"parent_menu_id,omitempty"`
	Path         string `json:"menu_path,omitempty" bson:"menu_path,omitempty"`
	Icon         string `json:"icon,omitempty" bson:"icon,omitempty"`
	SortOrder    int    `json:"sort_order" bson:"sort_order"`
	Active       bool   `json:"is_active" bson:"is_active"`
	RequiredRole string `json:"required_role,omitempty" bson:"required_role,omitempty"`
}

// IsPage reports whether the node navigates somewhere.
func (n Node) IsPage() bool { return n.Path != "" }

// TreeNode is an arena entry: the node plus child links stored as ids, so
// staged-edit bookkeeping stays a flat map instead of a nested structure.
type TreeNode struct {
	Node
	Children []string
}

// Tree is an id-indexed arena with ordered roots.
type Tree struct {
	nodes map[string]*TreeNode
	roots []string
}

// Build assembles a flat node list into a tree. Nodes referencing a parent
// that is not in the list are treated as roots. Siblings are ordered by
// sort_order, then id.
func Build(flat []Node) *Tree {
	t := &Tree{nodes: make(map[string]*TreeNode, len(flat))}
	for _, n := range flat {
		t.nodes[n.ID] = &TreeNode{Node: n}
	}
	for _, n := range flat {
		if n.ParentID != "" {
			if parent, ok := t.nodes[n.ParentID]; ok {
				parent.Children = append(parent.Children, n.ID)
				continue
			}
		}
		t.roots = append(t.roots, n.ID)
	}
	t.sortSiblings(t.roots)
	for _, tn := range t.nodes {
		t.sortSiblings(tn.Children)
	}
	return t
}

func (t *Tree) sortSiblings(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
}

// Node looks up an arena entry by id.
func (t *Tree) Node(id string) *TreeNode { return t.nodes[id] }

// Roots returns the ordered root ids.
func (t *Tree) Roots() []string { return t.roots }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Filter prunes the tree depth-first for one caller. A node with a
// required role is kept only when hasRole grants it; all other nodes are
// kept iff active. A pruned parent hides its whole subtree even when the
// children themselves would pass.
func (t *Tree) Filter(hasRole func(role string) bool) *Tree {
	out := &Tree{nodes: make(map[string]*TreeNode)}

	var keep func(id string) bool
	keep = func(id string) bool {
		tn := t.nodes[id]
		if tn.RequiredRole != "" {
			if hasRole == nil || !hasRole(tn.RequiredRole) {
				return false
			}
		} else if !tn.Active {
			return false
		}
		kept := &TreeNode{Node: tn.Node}
		out.nodes[id] = kept
		for _, child := range tn.Children {
			if keep(child) {
				kept.Children = append(kept.Children, child)
			}
		}
		return true
	}

	for _, id := range t.roots {
		if keep(id) {
			out.roots = append(out.roots, id)
		}
	}
	return out
}

// ExpandedFor returns the directories that open on initial render: exactly
// the ancestors of the node whose path equals the current location.
func (t *Tree) ExpandedFor(currentPath string) map[string]bool {
	expanded := make(map[string]bool)
	if currentPath == "" {
		return expanded
	}

	var walk func(id string, ancestors []string) bool
	walk = func(id string, ancestors []string) bool {
		tn := t.nodes[id]
		found := tn.Path == currentPath
		next := append(ancestors, id)
		for _, child := range tn.Children {
			if walk(child, next) {
				found = true
			}
		}
		if found {
			for _, a := range ancestors {
				expanded[a] = true
			}
		}
		return found
	}
	for _, id := range t.roots {
		walk(id, nil)
	}
	return expanded
}

// Walk visits nodes depth-first in sibling order.
func (t *Tree) Walk(fn func(node *TreeNode, depth int)) {
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		tn := t.nodes[id]
		fn(tn, depth)
		for _, child := range tn.Children {
			visit(child, depth+1)
		}
	}
	for _, id := range t.roots {
		visit(id, 0)
	}
}
