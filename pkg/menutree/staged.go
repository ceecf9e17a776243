package menutree

import "fmt"

// StagedNode is one menu entry in the in-memory working copy, tagged with
// its pending change. IsNew nodes are never separately IsModified.
type StagedNode struct {
	Node
	IsNew      bool
	IsModified bool
	IsDeleted  bool
}

// Editor holds the staged copy of the menu list. Every structural edit
// mutates the staged map only; nothing reaches the backend until Apply.
type Editor struct {
	nodes    map[string]*StagedNode
	order    []string
	tempSeq  int
}

// NewEditor stages a fresh copy of the canonical list.
func NewEditor(flat []Node) *Editor {
	e := &Editor{nodes: make(map[string]*StagedNode, len(flat))}
	for _, n := range flat {
		e.nodes[n.ID] = &StagedNode{Node: n}
		e.order = append(e.order, n.ID)
	}
	return e
}

// Nodes returns the staged entries in stable order.
func (e *Editor) Nodes() []StagedNode {
	out := make([]StagedNode, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.nodes[id])
	}
	return out
}

// Node returns one staged entry.
func (e *Editor) Node(id string) (StagedNode, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return StagedNode{}, false
	}
	return *n, true
}

// Dirty reports whether any change is pending.
func (e *Editor) Dirty() bool {
	for _, n := range e.nodes {
		if n.IsNew || n.IsModified || n.IsDeleted {
			return true
		}
	}
	return false
}

func (e *Editor) get(id string) (*StagedNode, error) {
	n, ok := e.nodes[id]
	if !ok {
		return nil, fmt.Errorf("menu %s not staged", id)
	}
	if n.IsDeleted {
		return nil, fmt.Errorf("menu %s is marked deleted", id)
	}
	return n, nil
}

func (e *Editor) markModified(n *StagedNode) {
	if !n.IsNew {
		n.IsModified = true
	}
}

// Add stages a new node. Nodes without an id get a temporary one that the
// apply step maps to the backend-assigned id.
func (e *Editor) Add(n Node) string {
	if n.ID == "" {
		e.tempSeq++
		n.ID = fmt.Sprintf("tmp-%d", e.tempSeq)
	}
	e.nodes[n.ID] = &StagedNode{Node: n, IsNew: true}
	e.order = append(e.order, n.ID)
	return n.ID
}

// Rename changes the display name.
func (e *Editor) Rename(id, name string) error {
	n, err := e.get(id)
	if err != nil {
		return err
	}
	n.Name = name
	e.markModified(n)
	return nil
}

// SetIcon changes the icon.
func (e *Editor) SetIcon(id, icon string) error {
	n, err := e.get(id)
	if err != nil {
		return err
	}
	n.Icon = icon
	e.markModified(n)
	return nil
}

// ToggleActive flips the active flag.
func (e *Editor) ToggleActive(id string) error {
	n, err := e.get(id)
	if err != nil {
		return err
	}
	n.Active = !n.Active
	e.markModified(n)
	return nil
}

// Reparent moves the node under a new parent; an empty parent detaches it
// to the root.
func (e *Editor) Reparent(id, parentID string) error {
	n, err := e.get(id)
	if err != nil {
		return err
	}
	if parentID != "" {
		parent, err := e.get(parentID)
		if err != nil {
			return err
		}
		if parent.IsPage() {
			return fmt.Errorf("menu %s is a page and cannot take children", parentID)
		}
	}
	n.ParentID = parentID
	e.markModified(n)
	return nil
}

// SwapOrder exchanges the sort_order of two siblings, leaving every other
// sibling's position untouched.
func (e *Editor) SwapOrder(idA, idB string) error {
	a, err := e.get(idA)
	if err != nil {
		return err
	}
	b, err := e.get(idB)
	if err != nil {
		return err
	}
	a.SortOrder, b.SortOrder = b.SortOrder, a.SortOrder
	e.markModified(a)
	e.markModified(b)
	return nil
}

// Delete marks a directory deleted and cascades: child directories are
// marked deleted too, child pages are detached (parent cleared) but never
// deleted. Pages cannot be deleted through the editor at all.
func (e *Editor) Delete(id string) error {
	n, err := e.get(id)
	if err != nil {
		return err
	}
	if n.IsPage() {
		return fmt.Errorf("menu %s is a page; detach it from its parent instead", id)
	}
	e.deleteDir(n)
	return nil
}

func (e *Editor) deleteDir(dir *StagedNode) {
	dir.IsDeleted = true
	dir.IsModified = false
	for _, child := range e.nodes {
		if child.IsDeleted || child.ParentID != dir.ID {
			continue
		}
		if child.IsPage() {
			child.ParentID = ""
			e.markModified(child)
		} else {
			e.deleteDir(child)
		}
	}
}
