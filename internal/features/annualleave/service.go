package annualleave

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go-hr/internal/common/models"
	"go-hr/pkg/report"

	"go.uber.org/zap"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

const maxDaysPerYear = 365.5

type BalanceService interface {
	ListBalances(ctx context.Context, f Filter) (models.ListResult[BalanceView], error)
	GetBalance(ctx context.Context, key Key) (*BalanceView, error)
	CreateBalance(ctx context.Context, b *Balance) error
	UpdateBalance(ctx context.Context, key Key, b *Balance) error
	DeleteBalance(ctx context.Context, key Key) error
	Rollover(ctx context.Context, intoYear string) (created int, err error)
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
}

type BalanceServiceImpl struct {
	Repo   BalanceRepository
	Logger *zap.Logger
}

func NewBalanceService(repo BalanceRepository, logger *zap.Logger) BalanceService {
	return &BalanceServiceImpl{Repo: repo, Logger: logger}
}

func validate(b *Balance) error {
	if b.EmpID == "" {
		return fmt.Errorf("emp_id is required: %w", models.ErrInvalid)
	}
	if !yearPattern.MatchString(b.Year) {
		return fmt.Errorf("year must be a four digit year: %w", models.ErrInvalid)
	}
	if b.LeaveType == "" || len(b.LeaveType) > 4 {
		return fmt.Errorf("leave_type must be 1-4 characters: %w", models.ErrInvalid)
	}
	if b.GrantedDays < 0 || b.GrantedDays > maxDaysPerYear {
		return fmt.Errorf("granted_days must be between 0 and %.1f: %w", maxDaysPerYear, models.ErrInvalid)
	}
	if b.CarriedDays < 0 || b.UsedDays < 0 {
		return fmt.Errorf("day counters cannot be negative: %w", models.ErrInvalid)
	}
	return nil
}

func view(b Balance) BalanceView {
	return BalanceView{Balance: b, RemainingDays: b.Remaining()}
}

func (s *BalanceServiceImpl) ListBalances(ctx context.Context, f Filter) (models.ListResult[BalanceView], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[BalanceView]{}, err
	}
	views := make([]BalanceView, len(items))
	for i, b := range items {
		views[i] = view(b)
	}
	return models.NewListResult(views, total, f.ListQuery), nil
}

func (s *BalanceServiceImpl) GetBalance(ctx context.Context, key Key) (*BalanceView, error) {
	b, err := s.Repo.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	v := view(*b)
	return &v, nil
}

func (s *BalanceServiceImpl) CreateBalance(ctx context.Context, b *Balance) error {
	if err := validate(b); err != nil {
		return err
	}
	return s.Repo.Create(ctx, b)
}

func (s *BalanceServiceImpl) UpdateBalance(ctx context.Context, key Key, b *Balance) error {
	b.EmpID, b.Year, b.LeaveType = key.EmpID, key.Year, key.LeaveType
	if err := validate(b); err != nil {
		return err
	}
	return s.Repo.Update(ctx, key, b)
}

func (s *BalanceServiceImpl) DeleteBalance(ctx context.Context, key Key) error {
	return s.Repo.Delete(ctx, key)
}

// Rollover seeds intoYear from the previous year's balances: the grant is
// repeated and whatever remained carries over. Existing target balances
// are left untouched so the job can rerun safely.
func (s *BalanceServiceImpl) Rollover(ctx context.Context, intoYear string) (int, error) {
	if !yearPattern.MatchString(intoYear) {
		return 0, fmt.Errorf("year must be a four digit year: %w", models.ErrInvalid)
	}
	yearNum, _ := strconv.Atoi(intoYear)
	fromYear := strconv.Itoa(yearNum - 1)

	previous, err := s.Repo.ByYear(ctx, fromYear)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, prev := range previous {
		if _, err := s.Repo.Find(ctx, Key{EmpID: prev.EmpID, Year: intoYear, LeaveType: prev.LeaveType}); err == nil {
			continue
		}
		next := Balance{
			EmpID:       prev.EmpID,
			Year:        intoYear,
			LeaveType:   prev.LeaveType,
			GrantedDays: prev.GrantedDays,
			CarriedDays: prev.Remaining(),
		}
		if next.CarriedDays < 0 {
			next.CarriedDays = 0
		}
		if _, err := s.Repo.Upsert(ctx, &next); err != nil {
			s.Logger.Error("rollover upsert failed",
				zap.String("emp_id", prev.EmpID),
				zap.String("leave_type", prev.LeaveType),
				zap.Error(err))
			continue
		}
		created++
	}
	s.Logger.Info("annual leave rollover finished",
		zap.String("from", fromYear),
		zap.String("into", intoYear),
		zap.Int("created", created))
	return created, nil
}

func ExportColumns() []report.Column {
	return []report.Column{
		{Key: "emp_id", Title: "Employee ID", Width: 30},
		{Key: "year", Title: "Year", Width: 20},
		{Key: "leave_type", Title: "Type", Width: 20},
		{Key: "granted_days", Title: "Granted", Width: 24},
		{Key: "carried_days", Title: "Carried Over", Width: 28},
		{Key: "used_days", Title: "Used", Width: 24},
		{Key: "remaining_days", Title: "Remaining", Width: 26},
		{Key: "remark", Title: "Remark"},
	}
}

func (s *BalanceServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, b := range items {
		rows[i] = map[string]any{
			"emp_id":         b.EmpID,
			"year":           b.Year,
			"leave_type":     b.LeaveType,
			"granted_days":   b.GrantedDays,
			"carried_days":   b.CarriedDays,
			"used_days":      b.UsedDays,
			"remaining_days": b.Remaining(),
			"remark":         b.Remark,
		}
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Annual Leave Balances", Stem: "annual_leave"}
	return report.Export(job, format)
}
