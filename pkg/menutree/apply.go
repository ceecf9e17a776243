package menutree

import (
	"context"
	"fmt"
	"strings"
)

// Applier is the backend surface the commit protocol replays against.
type Applier interface {
	CreateNode(ctx context.Context, n Node) (string, error)
	UpdateNode(ctx context.Context, id string, n Node) error
	DeleteNode(ctx context.Context, id string) error
	FetchAll(ctx context.Context) ([]Node, error)
}

// ApplyResult summarizes one commit: per-item failures are counted and
// reported, they do not abort the batch.
type ApplyResult struct {
	Deleted int
	Created int
	Updated int
	Skipped int
	Errors  []error
}

// Apply replays the staged changes: deletes first, then creates in
// parent-before-child order (temporary ids resolved as each create
// succeeds), then updates. The canonical list is refetched afterwards and
// returned so the caller can restage from it.
func (e *Editor) Apply(ctx context.Context, api Applier) ([]Node, *ApplyResult, error) {
	res := &ApplyResult{}

	for _, n := range e.Nodes() {
		if n.IsDeleted && !n.IsNew {
			if err := api.DeleteNode(ctx, n.ID); err != nil {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Errorf("delete %s: %w", n.ID, err))
				continue
			}
			res.Deleted++
		}
	}

	// Creates: a new node whose parent is also new must wait for the
	// parent's real id. Loop until no progress remains. A child whose
	// parent create failed is skipped, never persisted with an
	// unresolved temporary parent id.
	idMap := make(map[string]string)
	failed := make(map[string]bool)
	pending := make(map[string]StagedNode)
	for _, n := range e.Nodes() {
		if n.IsNew && !n.IsDeleted {
			pending[n.ID] = n
		}
	}
	for len(pending) > 0 {
		progressed := false
		for tempID, n := range pending {
			if real, ok := idMap[n.ParentID]; ok {
				n.ParentID = real
			} else if failed[n.ParentID] {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Errorf("create %s: parent create failed", n.Name))
				failed[tempID] = true
				delete(pending, tempID)
				progressed = true
				continue
			} else if _, waiting := pending[n.ParentID]; waiting {
				continue
			}
			node := n.Node
			if strings.HasPrefix(node.ID, "tmp-") {
				node.ID = ""
			}
			realID, err := api.CreateNode(ctx, node)
			if err != nil {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Errorf("create %s: %w", n.Name, err))
				failed[tempID] = true
			} else {
				idMap[tempID] = realID
				res.Created++
			}
			delete(pending, tempID)
			progressed = true
		}
		if !progressed {
			for id := range pending {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Errorf("create %s: parent cycle", id))
				delete(pending, id)
			}
		}
	}

	for _, n := range e.Nodes() {
		if n.IsModified && !n.IsNew && !n.IsDeleted {
			node := n.Node
			if real, ok := idMap[node.ParentID]; ok {
				node.ParentID = real
			}
			if err := api.UpdateNode(ctx, n.ID, node); err != nil {
				res.Skipped++
				res.Errors = append(res.Errors, fmt.Errorf("update %s: %w", n.ID, err))
				continue
			}
			res.Updated++
		}
	}

	fresh, err := api.FetchAll(ctx)
	if err != nil {
		return nil, res, fmt.Errorf("resync after apply: %w", err)
	}
	return fresh, res, nil
}
