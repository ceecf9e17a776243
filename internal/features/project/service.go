package project

import (
	"context"
	"fmt"
	"strings"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

type ProjectService interface {
	ListProjects(ctx context.Context, f Filter) (models.ListResult[Project], error)
	GetProject(ctx context.Context, projectNo string) (*Project, error)
	CreateProject(ctx context.Context, p *Project) error
	UpdateProject(ctx context.Context, projectNo string, p *Project) error
	DeleteProject(ctx context.Context, projectNo string) error
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type ProjectServiceImpl struct {
	Repo   ProjectRepository
	Logger *zap.Logger
}

func NewProjectService(repo ProjectRepository, logger *zap.Logger) ProjectService {
	return &ProjectServiceImpl{Repo: repo, Logger: logger}
}

func validate(p *Project) error {
	if strings.TrimSpace(p.ProjectNo) == "" {
		return fmt.Errorf("project_no is required: %w", models.ErrInvalid)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required: %w", models.ErrInvalid)
	}
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("status %q is not recognized: %w", p.Status, models.ErrInvalid)
	}
	if p.StartDate != "" && p.EndDate != "" && p.EndDate < p.StartDate {
		return fmt.Errorf("end_date precedes start_date: %w", models.ErrInvalid)
	}
	return nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, f Filter) (models.ListResult[Project], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[Project]{}, err
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectNo string) (*Project, error) {
	return s.Repo.FindByNo(ctx, projectNo)
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, p *Project) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return err
	}
	s.Logger.Info("project created", zap.String("project_no", p.ProjectNo))
	return nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, projectNo string, p *Project) error {
	p.ProjectNo = projectNo
	if err := validate(p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, projectNo, p)
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectNo string) error {
	return s.Repo.Delete(ctx, projectNo)
}

func ExportColumns() []report.Column {
	return []report.Column{
		{Key: "project_no", Title: "Project No", Width: 30},
		{Key: "name", Title: "Name", Width: 55},
		{Key: "owner_emp_id", Title: "Owner", Width: 28},
		{Key: "status", Title: "Status", Width: 24},
		{Key: "start_date", Title: "Start", Width: 26},
		{Key: "end_date", Title: "End", Width: 26},
		{Key: "description", Title: "Description"},
	}
}

func (s *ProjectServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, p := range items {
		rows[i] = map[string]any{
			"project_no":   p.ProjectNo,
			"name":         p.Name,
			"owner_emp_id": p.OwnerEmpID,
			"status":       p.Status,
			"start_date":   p.StartDate,
			"end_date":     p.EndDate,
			"description":  p.Description,
		}
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Project List", Stem: "projects"}
	return report.Export(job, format)
}
