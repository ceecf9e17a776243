package menu

import (
	"context"
	"errors"
	"sort"
	"testing"

	"go-hr/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type memoryRepo struct {
	menus map[string]Menu
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{menus: make(map[string]Menu)}
}

func (r *memoryRepo) All(context.Context) ([]Menu, error) {
	out := make([]Menu, 0, len(r.menus))
	for _, m := range r.menus {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryRepo) Find(_ context.Context, menuID string) (*Menu, error) {
	m, ok := r.menus[menuID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &m, nil
}

func (r *memoryRepo) Children(_ context.Context, menuID string) ([]Menu, error) {
	var out []Menu
	for _, m := range r.menus {
		if m.ParentID == menuID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryRepo) Create(_ context.Context, m *Menu) error {
	if _, ok := r.menus[m.ID]; ok {
		return models.ErrDuplicate
	}
	r.menus[m.ID] = *m
	return nil
}

func (r *memoryRepo) Patch(_ context.Context, menuID string, set bson.M) error {
	m, ok := r.menus[menuID]
	if !ok {
		return models.ErrNotFound
	}
	for key, value := range set {
		switch key {
		case "menu_name":
			m.Name = value.(string)
		case "parent_menu_id":
			m.ParentID = value.(string)
		case "menu_path":
			m.Path = value.(string)
		case "icon":
			m.Icon = value.(string)
		case "sort_order":
			m.SortOrder = value.(int)
		case "is_active":
			m.Active = value.(bool)
		}
	}
	r.menus[menuID] = m
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, menuID string) error {
	if _, ok := r.menus[menuID]; !ok {
		return models.ErrNotFound
	}
	delete(r.menus, menuID)
	return nil
}

func (r *memoryRepo) Detach(_ context.Context, menuID string) error {
	m, ok := r.menus[menuID]
	if !ok {
		return models.ErrNotFound
	}
	m.ParentID = ""
	r.menus[menuID] = m
	return nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

func seedRepo(t *testing.T, repo *memoryRepo, menus []Menu) {
	t.Helper()
	for i := range menus {
		if err := repo.Create(context.Background(), &menus[i]); err != nil {
			t.Fatalf("seed %s: %v", menus[i].ID, err)
		}
	}
}

func newTestService(repo MenuRepository) MenuService {
	return NewMenuService(repo, zap.NewNop())
}

func TestTreeFiltersInactiveAndRoleGated(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{
		{ID: "hr", Name: "HR", SortOrder: 1, Active: true},
		{ID: "members", Name: "Members", ParentID: "hr", Path: "/members", SortOrder: 1, Active: true},
		{ID: "hidden", Name: "Old", ParentID: "hr", Path: "/old", SortOrder: 2, Active: false},
		{ID: "system", Name: "System", SortOrder: 2, Active: true, RequiredRole: "admin"},
		{ID: "users", Name: "Users", ParentID: "system", Path: "/system/users", SortOrder: 1, Active: true},
	})
	svc := newTestService(repo)

	// Plain user: no system subtree, no inactive page.
	views, err := svc.Tree(context.Background(), []string{"user"})
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(views) != 1 || views[0].ID != "hr" {
		t.Fatalf("roots: %+v", views)
	}
	if len(views[0].Children) != 1 || views[0].Children[0].ID != "members" {
		t.Fatalf("children: %+v", views[0].Children)
	}

	// Admin sees the gated subtree.
	views, err = svc.Tree(context.Background(), []string{"admin"})
	if err != nil {
		t.Fatalf("tree admin: %v", err)
	}
	if len(views) != 2 || views[1].ID != "system" {
		t.Fatalf("admin roots: %+v", views)
	}
}

func TestCreateMenuRejectsPageParent(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{
		{ID: "members", Name: "Members", Path: "/members", Active: true},
	})
	svc := newTestService(repo)

	child := Menu{ID: "sub", Name: "Sub", ParentID: "members"}
	if err := svc.CreateMenu(context.Background(), &child); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestUpdateMenuDetachesWithEmptyParent(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{
		{ID: "hr", Name: "HR", Active: true},
		{ID: "members", Name: "Members", ParentID: "hr", Path: "/members", Active: true},
	})
	svc := newTestService(repo)

	empty := ""
	if err := svc.UpdateMenu(context.Background(), "members", UpdateMenu{ParentID: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Find(context.Background(), "members")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ParentID != "" {
		t.Fatalf("still mounted: %+v", got)
	}
}

func TestUpdateMenuRejectsSelfParent(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{{ID: "hr", Name: "HR", Active: true}})
	svc := newTestService(repo)

	self := "hr"
	if err := svc.UpdateMenu(context.Background(), "hr", UpdateMenu{ParentID: &self}); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDeleteMenuCascade(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{
		{ID: "hr", Name: "HR", Active: true},
		{ID: "sub", Name: "Sub", ParentID: "hr", Active: true},
		{ID: "members", Name: "Members", ParentID: "hr", Path: "/members", Active: true},
	})
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.DeleteMenu(ctx, "hr"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Child directory removed with the parent.
	if _, err := repo.Find(ctx, "sub"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("sub still present")
	}
	// Child page survives, detached.
	page, err := repo.Find(ctx, "members")
	if err != nil {
		t.Fatalf("page gone: %v", err)
	}
	if page.ParentID != "" {
		t.Fatalf("page still mounted: %+v", page)
	}
}

func TestDeleteMenuRejectsPages(t *testing.T) {
	repo := newMemoryRepo()
	seedRepo(t, repo, []Menu{
		{ID: "members", Name: "Members", Path: "/members", Active: true},
	})
	svc := newTestService(repo)

	if err := svc.DeleteMenu(context.Background(), "members"); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
