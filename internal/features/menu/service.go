package menu

import (
	"context"
	"fmt"

	"go-hr/internal/common/models"
	"go-hr/pkg/menutree"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// UpdateMenu is a partial update. Pointers distinguish "leave alone" from
// "set"; a present-but-empty ParentID detaches the node.
type UpdateMenu struct {
	Name      *string `json:"menu_name"`
	ParentID  *string `json:"parent_menu_id"`
	Path      *string `json:"menu_path"`
	Icon      *string `json:"icon"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"is_active"`
}

type MenuService interface {
	Tree(ctx context.Context, roles []string) ([]MenuView, error)
	Flat(ctx context.Context) ([]Menu, error)
	All(ctx context.Context) ([]Menu, error)
	CreateMenu(ctx context.Context, m *Menu) error
	UpdateMenu(ctx context.Context, menuID string, upd UpdateMenu) error
	DeleteMenu(ctx context.Context, menuID string) error
}

type MenuServiceImpl struct {
	Repo   MenuRepository
	Logger *zap.Logger
}

func NewMenuService(repo MenuRepository, logger *zap.Logger) MenuService {
	return &MenuServiceImpl{Repo: repo, Logger: logger}
}

// Tree returns the nested sidebar for one caller: inactive entries and
// entries gated on roles the caller lacks are pruned with their subtrees.
func (s *MenuServiceImpl) Tree(ctx context.Context, roles []string) ([]MenuView, error) {
	flat, err := s.Repo.All(ctx)
	if err != nil {
		return nil, err
	}
	granted := make(map[string]bool, len(roles))
	for _, role := range roles {
		granted[role] = true
	}
	tree := menutree.Build(flat).Filter(func(role string) bool { return granted[role] })
	return viewTree(tree), nil
}

func (s *MenuServiceImpl) Flat(ctx context.Context) ([]Menu, error) {
	return s.Repo.All(ctx)
}

func (s *MenuServiceImpl) All(ctx context.Context) ([]Menu, error) {
	return s.Repo.All(ctx)
}

func (s *MenuServiceImpl) CreateMenu(ctx context.Context, m *Menu) error {
	if m.ID == "" {
		return fmt.Errorf("menu_id is required: %w", models.ErrInvalid)
	}
	if m.Name == "" {
		return fmt.Errorf("menu_name is required: %w", models.ErrInvalid)
	}
	if m.ParentID != "" {
		parent, err := s.Repo.Find(ctx, m.ParentID)
		if err != nil {
			return err
		}
		if parent.IsPage() {
			return fmt.Errorf("menu %s is a page and cannot hold children: %w", m.ParentID, models.ErrInvalid)
		}
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return err
	}
	s.Logger.Info("menu created", zap.String("menu_id", m.ID))
	return nil
}

func (s *MenuServiceImpl) UpdateMenu(ctx context.Context, menuID string, upd UpdateMenu) error {
	set := bson.M{}
	if upd.Name != nil {
		set["menu_name"] = *upd.Name
	}
	if upd.ParentID != nil {
		if *upd.ParentID != "" {
			parent, err := s.Repo.Find(ctx, *upd.ParentID)
			if err != nil {
				return err
			}
			if parent.IsPage() {
				return fmt.Errorf("menu %s is a page and cannot hold children: %w", *upd.ParentID, models.ErrInvalid)
			}
			if *upd.ParentID == menuID {
				return fmt.Errorf("menu cannot be its own parent: %w", models.ErrInvalid)
			}
		}
		set["parent_menu_id"] = *upd.ParentID
	}
	if upd.Path != nil {
		set["menu_path"] = *upd.Path
	}
	if upd.Icon != nil {
		set["icon"] = *upd.Icon
	}
	if upd.SortOrder != nil {
		set["sort_order"] = *upd.SortOrder
	}
	if upd.Active != nil {
		set["is_active"] = *upd.Active
	}
	if len(set) == 0 {
		return nil
	}
	return s.Repo.Patch(ctx, menuID, set)
}

// DeleteMenu removes a directory. Child directories go with it; child
// pages are detached and stay available for remounting. Pages themselves
// are never deletable.
func (s *MenuServiceImpl) DeleteMenu(ctx context.Context, menuID string) error {
	existing, err := s.Repo.Find(ctx, menuID)
	if err != nil {
		return err
	}
	if existing.IsPage() {
		return fmt.Errorf("pages cannot be deleted, only detached: %w", models.ErrInvalid)
	}

	children, err := s.Repo.Children(ctx, menuID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.IsPage() {
			if err := s.Repo.Detach(ctx, child.ID); err != nil {
				return err
			}
			continue
		}
		if err := s.Repo.Delete(ctx, child.ID); err != nil {
			return err
		}
	}

	if err := s.Repo.Delete(ctx, menuID); err != nil {
		return err
	}
	s.Logger.Info("menu deleted", zap.String("menu_id", menuID), zap.Int("children", len(children)))
	return nil
}
