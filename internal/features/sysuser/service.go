package sysuser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// availableMembersLimit caps the account picker list.
const availableMembersLimit = 100

// MemberDirectory is the slice of the member repository user management
// needs: accounts must belong to known employees, and lists join names.
type MemberDirectory interface {
	NamesByEmpID(ctx context.Context, empIDs []string) (map[string]string, error)
	FindEmpIDsByName(ctx context.Context, name string) ([]string, error)
	EmployedRefs(ctx context.Context, search string) ([]models.MemberRef, error)
}

// RoleChecker validates role assignments against the role store.
type RoleChecker interface {
	ValidateRoleIDs(ctx context.Context, roleIDs []string) error
}

type UserService interface {
	ListUsers(ctx context.Context, f Filter) (models.ListResult[User], error)
	GetUser(ctx context.Context, userID string) (*User, error)
	CreateUser(ctx context.Context, req CreateUser) (*User, error)
	UpdateUser(ctx context.Context, userID string, upd UpdateUser) error
	DeleteUser(ctx context.Context, userID string) error
	AvailableMembers(ctx context.Context, search string) ([]models.MemberRef, error)
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type UserServiceImpl struct {
	Repo    UserRepository
	Members MemberDirectory
	Roles   RoleChecker
	Logger  *zap.Logger
}

func NewUserService(repo UserRepository, members MemberDirectory, roles RoleChecker, logger *zap.Logger) UserService {
	return &UserServiceImpl{Repo: repo, Members: members, Roles: roles, Logger: logger}
}

// HashPassword enforces the minimum length and bcrypts the password.
// The auth package uses it for self-service password changes.
func HashPassword(plain string) (string, error) {
	if len(plain) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, models.ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, f Filter) (models.ListResult[User], error) {
	var empIDs []string
	if f.Search != "" {
		ids, err := s.Members.FindEmpIDsByName(ctx, f.Search)
		if err != nil {
			return models.ListResult[User]{}, err
		}
		if ids == nil {
			ids = []string{}
		}
		empIDs = ids
	}

	items, total, err := s.Repo.List(ctx, f, empIDs)
	if err != nil {
		return models.ListResult[User]{}, err
	}

	ids := make([]string, 0, len(items))
	for _, u := range items {
		ids = append(ids, u.UserID)
	}
	names, err := s.Members.NamesByEmpID(ctx, ids)
	if err != nil {
		return models.ListResult[User]{}, err
	}
	for i := range items {
		items[i].UserName = names[items[i].UserID]
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

// ExportColumns defines the account report layout shared by all three
// formats.
func ExportColumns() []report.Column {
	status := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "active"
		}
		return "disabled"
	}
	roles := func(v any, _ map[string]any) string {
		if ids, ok := v.([]string); ok {
			return strings.Join(ids, ", ")
		}
		return ""
	}
	lastLogin := func(v any, _ map[string]any) string {
		if t, ok := v.(*time.Time); ok && t != nil {
			return t.Format("2006-01-02 15:04")
		}
		return ""
	}
	return []report.Column{
		{Key: "user_id", Title: "User ID", Width: 28},
		{Key: "user_name", Title: "Name", Width: 32},
		{Key: "is_active", Title: "Status", Width: 22, Formatter: status},
		{Key: "expire_date", Title: "Expire Date", Width: 28},
		{Key: "roles", Title: "Roles", Width: 40, Formatter: roles},
		{Key: "last_login_at", Title: "Last Login", Width: 34, Formatter: lastLogin},
	}
}

func rowMap(u User) map[string]any {
	return map[string]any{
		"user_id":       u.UserID,
		"user_name":     u.UserName,
		"is_active":     u.IsActive,
		"expire_date":   u.ExpireDate,
		"roles":         u.Roles,
		"last_login_at": u.LastLoginAt,
	}
}

// Export encodes the whole filtered result set in the requested format.
// Name search and name joins follow the list path.
func (s *UserServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	result, err := s.ListUsers(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(result.Items))
	for i, u := range result.Items {
		rows[i] = rowMap(u)
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "System Users", Stem: "system_users"}
	return report.Export(job, format)
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*User, error) {
	u, err := s.Repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	names, err := s.Members.NamesByEmpID(ctx, []string{userID})
	if err != nil {
		return nil, err
	}
	u.UserName = names[userID]
	return u, nil
}

// AvailableMembers lists the employed members who do not yet have an
// account, so the picker never offers an id CreateUser would reject.
func (s *UserServiceImpl) AvailableMembers(ctx context.Context, search string) ([]models.MemberRef, error) {
	refs, err := s.Members.EmployedRefs(ctx, search)
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.UserIDs(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, id := range existing {
		taken[id] = true
	}

	out := []models.MemberRef{}
	for _, ref := range refs {
		if taken[ref.EmpID] {
			continue
		}
		out = append(out, ref)
		if len(out) == availableMembersLimit {
			break
		}
	}
	return out, nil
}

// CreateUser opens an account for an existing employee.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req CreateUser) (*User, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user_id is required: %w", models.ErrInvalid)
	}
	names, err := s.Members.NamesByEmpID(ctx, []string{req.UserID})
	if err != nil {
		return nil, err
	}
	if _, ok := names[req.UserID]; !ok {
		return nil, fmt.Errorf("user_id %s is not a known employee: %w", req.UserID, models.ErrInvalid)
	}
	if err := s.Roles.ValidateRoleIDs(ctx, req.RoleIDs); err != nil {
		return nil, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		UserID:       req.UserID,
		PasswordHash: hash,
		IsActive:     req.IsActive,
		ExpireDate:   req.ExpireDate,
		Roles:        req.RoleIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.Roles == nil {
		u.Roles = []string{}
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.Info("user created", zap.String("user_id", u.UserID))
	u.UserName = names[req.UserID]
	return u, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, userID string, upd UpdateUser) error {
	set := bson.M{}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.ExpireDate != nil {
		set["expire_date"] = *upd.ExpireDate
	}
	if upd.ResetPassword != "" {
		hash, err := HashPassword(upd.ResetPassword)
		if err != nil {
			return err
		}
		set["password_hash"] = hash
	}
	if upd.RoleIDs != nil {
		if err := s.Roles.ValidateRoleIDs(ctx, *upd.RoleIDs); err != nil {
			return err
		}
		set["roles"] = *upd.RoleIDs
	}
	if len(set) == 0 {
		return nil
	}
	set["updated_at"] = time.Now()
	if err := s.Repo.Patch(ctx, userID, set); err != nil {
		return err
	}
	s.Logger.Info("user updated", zap.String("user_id", userID))
	return nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.Logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}
