package codetable

import (
	"context"
	"fmt"
	"time"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

type CodeService interface {
	ListCodes(ctx context.Context, f Filter) (models.ListResult[Code], error)
	GetCode(ctx context.Context, key Key) (*Code, error)
	CreateCode(ctx context.Context, code *Code, userID string) error
	UpdateCode(ctx context.Context, key Key, code *Code, userID string) error
	DeleteCode(ctx context.Context, key Key) error
	LeaveTypes(ctx context.Context) ([]Code, error)
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type CodeServiceImpl struct {
	Repo   CodeRepository
	Logger *zap.Logger
}

func NewCodeService(repo CodeRepository, logger *zap.Logger) CodeService {
	return &CodeServiceImpl{Repo: repo, Logger: logger}
}

func validate(code *Code) error {
	if code.CodeCode == "" || len(code.CodeCode) > 4 {
		return fmt.Errorf("code_code must be 1-4 characters: %w", models.ErrInvalid)
	}
	if code.CodeSubcode == "" || len(code.CodeSubcode) > 4 {
		return fmt.Errorf("code_subcode must be 1-4 characters: %w", models.ErrInvalid)
	}
	if len([]rune(code.CodeSubname)) > 20 {
		return fmt.Errorf("code_subname exceeds 20 characters: %w", models.ErrInvalid)
	}
	if len([]rune(code.CodeContent)) > 100 {
		return fmt.Errorf("code_content exceeds 100 characters: %w", models.ErrInvalid)
	}
	return nil
}

// stamp records who touched the row and when, in the legacy split
// date/time format the table has always used.
func stamp(code *Code, userID string) {
	now := time.Now()
	code.UpdUserID = userID
	code.UpdDate = now.Format("20060102")
	code.UpdTime = now.Format("15:04:05")
}

func (s *CodeServiceImpl) ListCodes(ctx context.Context, f Filter) (models.ListResult[Code], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[Code]{}, err
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

func (s *CodeServiceImpl) GetCode(ctx context.Context, key Key) (*Code, error) {
	return s.Repo.Find(ctx, key)
}

func (s *CodeServiceImpl) CreateCode(ctx context.Context, code *Code, userID string) error {
	if err := validate(code); err != nil {
		return err
	}
	if code.UsedMark == "" {
		code.UsedMark = "1"
	}
	stamp(code, userID)
	return s.Repo.Create(ctx, code)
}

func (s *CodeServiceImpl) UpdateCode(ctx context.Context, key Key, code *Code, userID string) error {
	code.CodeCode, code.CodeSubcode = key.CodeCode, key.CodeSubcode
	if err := validate(code); err != nil {
		return err
	}
	stamp(code, userID)
	return s.Repo.Update(ctx, key, code)
}

func (s *CodeServiceImpl) DeleteCode(ctx context.Context, key Key) error {
	code, err := s.Repo.Find(ctx, key)
	if err != nil {
		return err
	}
	if code.Sysmark == "1" {
		return fmt.Errorf("system code %s/%s cannot be deleted: %w", key.CodeCode, key.CodeSubcode, models.ErrInvalid)
	}
	return s.Repo.Delete(ctx, key)
}

func (s *CodeServiceImpl) LeaveTypes(ctx context.Context) ([]Code, error) {
	return s.Repo.ActiveByCategory(ctx, leaveTypeCode)
}

func ExportColumns() []report.Column {
	return []report.Column{
		{Key: "code_code", Title: "Category", Width: 24},
		{Key: "code_subcode", Title: "Code", Width: 24},
		{Key: "code_subname", Title: "Name", Width: 40},
		{Key: "code_content", Title: "Content"},
		{Key: "used_mark", Title: "In Use", Width: 20},
		{Key: "upd_userid", Title: "Updated By", Width: 28},
		{Key: "upddate", Title: "Updated", Width: 26},
	}
}

func (s *CodeServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, code := range items {
		rows[i] = map[string]any{
			"code_code":    code.CodeCode,
			"code_subcode": code.CodeSubcode,
			"code_subname": code.CodeSubname,
			"code_content": code.CodeContent,
			"used_mark":    code.UsedMark,
			"upd_userid":   code.UpdUserID,
			"upddate":      code.UpdDate,
		}
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Code Table", Stem: "codes"}
	return report.Export(job, format)
}
