package role

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

// AdminRoleID is the built-in role that can never be removed.
const AdminRoleID = "ADMIN"

type RoleService interface {
	ListRoles(ctx context.Context, f Filter) (models.ListResult[Role], error)
	GetRole(ctx context.Context, roleID string) (*Role, error)
	CreateRole(ctx context.Context, r *Role) error
	UpdateRole(ctx context.Context, roleID string, r *Role) error
	DeleteRole(ctx context.Context, roleID string) error
	ValidateRoleIDs(ctx context.Context, roleIDs []string) error
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type RoleServiceImpl struct {
	Repo   RoleRepository
	Logger *zap.Logger
}

func NewRoleService(repo RoleRepository, logger *zap.Logger) RoleService {
	return &RoleServiceImpl{Repo: repo, Logger: logger}
}

func validate(r *Role) error {
	if strings.TrimSpace(r.RoleID) == "" {
		return fmt.Errorf("role_id is required: %w", models.ErrInvalid)
	}
	if strings.TrimSpace(r.RoleName) == "" {
		return fmt.Errorf("role_name is required: %w", models.ErrInvalid)
	}
	return nil
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context, f Filter) (models.ListResult[Role], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[Role]{}, err
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

// ExportColumns defines the role report layout shared by all three
// formats.
func ExportColumns() []report.Column {
	status := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "active"
		}
		return "inactive"
	}
	yesNo := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "yes"
		}
		return "no"
	}
	return []report.Column{
		{Key: "role_id", Title: "Role ID", Width: 28},
		{Key: "role_name", Title: "Role Name", Width: 36},
		{Key: "description", Title: "Description", Width: 60},
		{Key: "is_active", Title: "Status", Width: 22, Formatter: status},
		{Key: "is_system", Title: "Built-in", Width: 22, Formatter: yesNo},
	}
}

func rowMap(r Role) map[string]any {
	return map[string]any{
		"role_id":     r.RoleID,
		"role_name":   r.RoleName,
		"description": r.Description,
		"is_active":   r.IsActive,
		"is_system":   r.IsSystem,
	}
}

// Export encodes the whole filtered result set in the requested format.
func (s *RoleServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, r := range items {
		rows[i] = rowMap(r)
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Role List", Stem: "roles"}
	return report.Export(job, format)
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, roleID string) (*Role, error) {
	return s.Repo.Find(ctx, roleID)
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, r *Role) error {
	if err := validate(r); err != nil {
		return err
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.Repo.Create(ctx, r); err != nil {
		return err
	}
	s.Logger.Info("role created", zap.String("role_id", r.RoleID))
	return nil
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, roleID string, r *Role) error {
	existing, err := s.Repo.Find(ctx, roleID)
	if err != nil {
		return err
	}
	r.RoleID = roleID
	if err := validate(r); err != nil {
		return err
	}
	// System flag and creation time are immutable.
	r.IsSystem = existing.IsSystem
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, roleID, r)
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, roleID string) error {
	if roleID == AdminRoleID {
		return fmt.Errorf("the %s role cannot be deleted: %w", AdminRoleID, models.ErrInvalid)
	}
	existing, err := s.Repo.Find(ctx, roleID)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return fmt.Errorf("system role %s cannot be deleted: %w", roleID, models.ErrInvalid)
	}
	if err := s.Repo.Delete(ctx, roleID); err != nil {
		return err
	}
	s.Logger.Info("role deleted", zap.String("role_id", roleID))
	return nil
}

// ValidateRoleIDs fails when any id does not name an existing role.
func (s *RoleServiceImpl) ValidateRoleIDs(ctx context.Context, roleIDs []string) error {
	found, err := s.Repo.Exists(ctx, roleIDs)
	if err != nil {
		return err
	}
	if len(found) != len(roleIDs) {
		present := make(map[string]bool, len(found))
		for _, id := range found {
			present[id] = true
		}
		for _, id := range roleIDs {
			if !present[id] {
				return fmt.Errorf("role %s does not exist: %w", id, models.ErrInvalid)
			}
		}
	}
	return nil
}
