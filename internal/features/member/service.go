package member

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

var (
	empIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,12}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type MemberService interface {
	ListMembers(ctx context.Context, f Filter) (models.ListResult[Member], error)
	GetMember(ctx context.Context, empID string) (*Member, error)
	CreateMember(ctx context.Context, m *Member) error
	UpdateMember(ctx context.Context, empID string, m *Member) error
	DeleteMember(ctx context.Context, empID string) error
	Divisions(ctx context.Context) ([]string, error)
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type MemberServiceImpl struct {
	Repo   MemberRepository
	Logger *zap.Logger
}

func NewMemberService(repo MemberRepository, logger *zap.Logger) MemberService {
	return &MemberServiceImpl{Repo: repo, Logger: logger}
}

// Validate rejects a record before any storage call; messages name the
// offending field so forms can localize the error. The bulk importer
// applies the same rules per row.
func Validate(m *Member) error {
	if strings.TrimSpace(m.EmpID) == "" {
		return fmt.Errorf("emp_id is required: %w", models.ErrInvalid)
	}
	if !empIDPattern.MatchString(m.EmpID) {
		return fmt.Errorf("emp_id must be 1-12 alphanumeric characters: %w", models.ErrInvalid)
	}
	if len([]rune(m.ChineseName)) > 20 {
		return fmt.Errorf("chinese_name exceeds 20 characters: %w", models.ErrInvalid)
	}
	if len([]rune(m.Name)) > 20 {
		return fmt.Errorf("name exceeds 20 characters: %w", models.ErrInvalid)
	}
	if m.Email != "" && !emailPattern.MatchString(m.Email) {
		return fmt.Errorf("email is not a valid address: %w", models.ErrInvalid)
	}
	return nil
}

func (s *MemberServiceImpl) ListMembers(ctx context.Context, f Filter) (models.ListResult[Member], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[Member]{}, err
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

func (s *MemberServiceImpl) GetMember(ctx context.Context, empID string) (*Member, error) {
	return s.Repo.FindByEmpID(ctx, empID)
}

func (s *MemberServiceImpl) CreateMember(ctx context.Context, m *Member) error {
	if err := Validate(m); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return err
	}
	s.Logger.Info("member created", zap.String("emp_id", m.EmpID))
	return nil
}

func (s *MemberServiceImpl) UpdateMember(ctx context.Context, empID string, m *Member) error {
	m.EmpID = empID
	if err := Validate(m); err != nil {
		return err
	}
	return s.Repo.Update(ctx, empID, m)
}

func (s *MemberServiceImpl) DeleteMember(ctx context.Context, empID string) error {
	if err := s.Repo.Delete(ctx, empID); err != nil {
		return err
	}
	s.Logger.Info("member deleted", zap.String("emp_id", empID))
	return nil
}

func (s *MemberServiceImpl) Divisions(ctx context.Context) ([]string, error) {
	return s.Repo.Divisions(ctx)
}

// ExportColumns defines the member report layout shared by all three
// formats.
func ExportColumns() []report.Column {
	employment := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "employed"
		}
		return "left"
	}
	return []report.Column{
		{Key: "emp_id", Title: "Employee ID", Width: 28},
		{Key: "chinese_name", Title: "Chinese Name", Width: 32},
		{Key: "name", Title: "English Name", Width: 32},
		{Key: "division_name", Title: "Division"},
		{Key: "job_title", Title: "Job Title"},
		{Key: "email", Title: "Email", Width: 55},
		{Key: "cellphone", Title: "Cellphone", Width: 32},
		{Key: "is_employed", Title: "Status", Width: 22, Formatter: employment},
	}
}

func rowMap(m Member) map[string]any {
	return map[string]any{
		"emp_id":        m.EmpID,
		"chinese_name":  m.ChineseName,
		"name":          m.Name,
		"division_name": m.DivisionName,
		"job_title":     m.JobTitle,
		"email":         m.Email,
		"cellphone":     m.Cellphone,
		"is_employed":   m.IsEmployed,
	}
}

// Export encodes the whole filtered result set in the requested format.
func (s *MemberServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, m := range items {
		rows[i] = rowMap(m)
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Member List", Stem: "members"}
	return report.Export(job, format)
}
