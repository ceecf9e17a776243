package menutree

import (
	"context"
	"fmt"
	"testing"
)

type fakeApplier struct {
	calls      []string
	nextID     int
	failDel    map[string]bool
	failCreate map[string]bool
	created    map[string]Node
}

func newFakeApplier() *fakeApplier {
	return &fakeApplier{
		failDel:    map[string]bool{},
		failCreate: map[string]bool{},
		created:    map[string]Node{},
	}
}

func (f *fakeApplier) CreateNode(_ context.Context, n Node) (string, error) {
	if f.failCreate[n.Name] {
		return "", fmt.Errorf("backend refused")
	}
	f.nextID++
	id := fmt.Sprintf("real-%d", f.nextID)
	f.calls = append(f.calls, "create:"+n.Name)
	f.created[id] = n
	return id, nil
}

func (f *fakeApplier) UpdateNode(_ context.Context, id string, _ Node) error {
	f.calls = append(f.calls, "update:"+id)
	return nil
}

func (f *fakeApplier) DeleteNode(_ context.Context, id string) error {
	if f.failDel[id] {
		return fmt.Errorf("backend refused")
	}
	f.calls = append(f.calls, "delete:"+id)
	return nil
}

func (f *fakeApplier) FetchAll(context.Context) ([]Node, error) {
	return []Node{{ID: "canonical"}}, nil
}

func TestApplyPhaseOrder(t *testing.T) {
	e := NewEditor([]Node{
		{ID: "old-dir", Name: "Old"},
		{ID: "keep", Name: "Keep"},
	})
	if err := e.Delete("old-dir"); err != nil {
		t.Fatal(err)
	}
	if err := e.Rename("keep", "Kept"); err != nil {
		t.Fatal(err)
	}
	e.Add(Node{Name: "Fresh"})

	api := newFakeApplier()
	fresh, res, err := e.Apply(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"delete:old-dir", "create:Fresh", "update:keep"}
	if len(api.calls) != len(want) {
		t.Fatalf("calls = %v", api.calls)
	}
	for i := range want {
		if api.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, api.calls[i], want[i])
		}
	}
	if res.Deleted != 1 || res.Created != 1 || res.Updated != 1 || res.Skipped != 0 {
		t.Errorf("summary = %+v", res)
	}
	if len(fresh) != 1 || fresh[0].ID != "canonical" {
		t.Errorf("resync returned %v", fresh)
	}
}

func TestApplyCreatesParentBeforeChild(t *testing.T) {
	e := NewEditor(nil)
	parent := e.Add(Node{Name: "Parent"})
	e.Add(Node{Name: "Child", ParentID: parent})

	api := newFakeApplier()
	_, res, err := e.Apply(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created != 2 {
		t.Fatalf("created = %d, want 2", res.Created)
	}

	if api.calls[0] != "create:Parent" || api.calls[1] != "create:Child" {
		t.Errorf("calls = %v, want parent before child", api.calls)
	}
	// The child's stored parent must be the backend-assigned id, not the
	// temporary one.
	for _, n := range api.created {
		if n.Name == "Child" && n.ParentID != "real-1" {
			t.Errorf("child parent = %q, want real-1", n.ParentID)
		}
	}
}

func TestApplyParentCreateFailureSkipsChildren(t *testing.T) {
	e := NewEditor(nil)
	parent := e.Add(Node{Name: "Parent"})
	e.Add(Node{Name: "Child", ParentID: parent})
	e.Add(Node{Name: "Loner"})

	api := newFakeApplier()
	api.failCreate["Parent"] = true
	_, res, err := e.Apply(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}

	if res.Created != 1 || res.Skipped != 2 {
		t.Errorf("summary = %+v, want 1 created and 2 skipped", res)
	}
	if len(res.Errors) != 2 {
		t.Errorf("errors = %v, want parent failure and child skip", res.Errors)
	}
	// The orphaned child must never reach the backend with its
	// temporary parent id.
	for _, n := range api.created {
		if n.Name == "Child" {
			t.Errorf("child created despite failed parent, parent = %q", n.ParentID)
		}
	}
}

func TestApplyDeleteFailureSkipsNotAborts(t *testing.T) {
	e := NewEditor([]Node{
		{ID: "bad", Name: "Bad"},
		{ID: "good", Name: "Good"},
	})
	if err := e.Delete("bad"); err != nil {
		t.Fatal(err)
	}
	if err := e.Delete("good"); err != nil {
		t.Fatal(err)
	}

	api := newFakeApplier()
	api.failDel["bad"] = true

	_, res, err := e.Apply(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if res.Deleted != 1 || res.Skipped != 1 || len(res.Errors) != 1 {
		t.Errorf("summary = %+v", res)
	}
}

func TestApplySkipsDeletedNewNodes(t *testing.T) {
	e := NewEditor(nil)
	id := e.Add(Node{Name: "Ephemeral"})
	// Mark the staged-new directory deleted before it ever hits the
	// backend: neither a delete nor a create call should go out.
	n := e.nodes[id]
	n.IsDeleted = true

	api := newFakeApplier()
	_, res, err := e.Apply(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}
	if res.Deleted+res.Created+res.Updated != 0 {
		t.Errorf("summary = %+v", res)
	}
}
