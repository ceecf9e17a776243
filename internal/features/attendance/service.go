package attendance

import (
	"context"
	"fmt"
	"regexp"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

var leaveDatePattern = regexp.MustCompile(`^\d{8}$`)

// MemberDirectory is the slice of the member repository leave records
// need for name joins and name search.
type MemberDirectory interface {
	NamesByEmpID(ctx context.Context, empIDs []string) (map[string]string, error)
	FindEmpIDsByName(ctx context.Context, name string) ([]string, error)
}

type AttendanceService interface {
	ListRecords(ctx context.Context, f Filter) (models.ListResult[Record], error)
	GetRecord(ctx context.Context, key Key) (*Record, error)
	CreateRecord(ctx context.Context, rec *Record) error
	UpdateRecord(ctx context.Context, key Key, rec *Record) error
	DeleteRecord(ctx context.Context, key Key) error
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type AttendanceServiceImpl struct {
	Repo    AttendanceRepository
	Members MemberDirectory
	Logger  *zap.Logger
}

func NewAttendanceService(repo AttendanceRepository, members MemberDirectory, logger *zap.Logger) AttendanceService {
	return &AttendanceServiceImpl{Repo: repo, Members: members, Logger: logger}
}

func validate(rec *Record) error {
	if rec.EmpID == "" {
		return fmt.Errorf("emp_id is required: %w", models.ErrInvalid)
	}
	if !leaveDatePattern.MatchString(rec.LeaveDate) {
		return fmt.Errorf("leave_date must be YYYYMMDD: %w", models.ErrInvalid)
	}
	if rec.LeaveType == "" || len(rec.LeaveType) > 4 {
		return fmt.Errorf("leave_type must be 1-4 characters: %w", models.ErrInvalid)
	}
	if rec.DurationDays < 0 {
		return fmt.Errorf("duration_days cannot be negative: %w", models.ErrInvalid)
	}
	return nil
}

// listEnriched fetches records and joins display names from the member
// collection.
func (s *AttendanceServiceImpl) listEnriched(ctx context.Context, f Filter) ([]Record, int64, error) {
	var empIDs []string
	if f.EmpName != "" {
		ids, err := s.Members.FindEmpIDsByName(ctx, f.EmpName)
		if err != nil {
			return nil, 0, err
		}
		if ids == nil {
			ids = []string{}
		}
		empIDs = ids
	}

	items, total, err := s.Repo.List(ctx, f, empIDs)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(items))
	for _, rec := range items {
		ids = append(ids, rec.EmpID)
	}
	names, err := s.Members.NamesByEmpID(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].ChineseName = names[items[i].EmpID]
	}
	return items, total, nil
}

func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, f Filter) (models.ListResult[Record], error) {
	items, total, err := s.listEnriched(ctx, f)
	if err != nil {
		return models.ListResult[Record]{}, err
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, key Key) (*Record, error) {
	return s.Repo.Find(ctx, key)
}

func (s *AttendanceServiceImpl) CreateRecord(ctx context.Context, rec *Record) error {
	if err := validate(rec); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return err
	}
	s.Logger.Info("leave record created",
		zap.String("emp_id", rec.EmpID),
		zap.String("leave_date", rec.LeaveDate),
		zap.String("leave_type", rec.LeaveType))
	return nil
}

func (s *AttendanceServiceImpl) UpdateRecord(ctx context.Context, key Key, rec *Record) error {
	rec.EmpID, rec.LeaveDate, rec.LeaveType = key.EmpID, key.LeaveDate, key.LeaveType
	if err := validate(rec); err != nil {
		return err
	}
	return s.Repo.Update(ctx, key, rec)
}

func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, key Key) error {
	return s.Repo.Delete(ctx, key)
}

func ExportColumns() []report.Column {
	return []report.Column{
		{Key: "emp_id", Title: "Employee ID", Width: 28},
		{Key: "chinese_name", Title: "Name", Width: 32},
		{Key: "leave_date", Title: "Date", Width: 26},
		{Key: "leave_type", Title: "Type", Width: 20},
		{Key: "day_period", Title: "Period", Width: 20},
		{Key: "duration_days", Title: "Days", Width: 18},
		{Key: "substitute", Title: "Substitute", Width: 30},
		{Key: "remark", Title: "Remark"},
	}
}

func (s *AttendanceServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.listEnriched(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, rec := range items {
		rows[i] = map[string]any{
			"emp_id":        rec.EmpID,
			"chinese_name":  rec.ChineseName,
			"leave_date":    rec.LeaveDate,
			"leave_type":    rec.LeaveType,
			"day_period":    rec.DayPeriod,
			"duration_days": rec.DurationDays,
			"substitute":    rec.Substitute,
			"remark":        rec.Remark,
		}
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Leave Records", Stem: "attendance"}
	return report.Export(job, format)
}
