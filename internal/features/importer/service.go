package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-hr/internal/common/models"
	"go-hr/internal/features/member"

	"go.uber.org/zap"
)

// MemberStore is the slice of the member repository the importer writes
// through.
type MemberStore interface {
	DeleteAll(ctx context.Context) error
	Create(ctx context.Context, m *member.Member) error
	Upsert(ctx context.Context, m *member.Member) (bool, error)
}

type ImporterService interface {
	ImportFile(ctx context.Context, file io.Reader, filename string, mode models.ImportMode) (*models.ImportSummary, error)
	ImportLegacy(ctx context.Context, req *LegacyRequest) (*models.ImportSummary, error)
}

type ImporterServiceImpl struct {
	Store  MemberStore
	Legacy LegacySource
	Logger *zap.Logger
}

func NewImporterService(store MemberStore, legacy LegacySource, logger *zap.Logger) ImporterService {
	return &ImporterServiceImpl{Store: store, Legacy: legacy, Logger: logger}
}

func (s *ImporterServiceImpl) ImportFile(ctx context.Context, file io.Reader, filename string, mode models.ImportMode) (*models.ImportSummary, error) {
	rows, err := parseFile(file, filename)
	if err != nil {
		return nil, err
	}
	records := make([]member.Member, len(rows))
	for i, row := range rows {
		records[i] = toMember(row)
	}
	summary, err := s.apply(ctx, mode, records)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("spreadsheet import finished",
		zap.String("filename", filename),
		zap.String("mode", string(mode)),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

func (s *ImporterServiceImpl) ImportLegacy(ctx context.Context, req *LegacyRequest) (*models.ImportSummary, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	mode, err := parseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	records, err := s.Legacy.Pull(ctx, req.DSN, req.Table)
	if err != nil {
		return nil, fmt.Errorf("legacy pull: %w", err)
	}
	summary, err := s.apply(ctx, mode, records)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("legacy import finished",
		zap.String("table", req.Table),
		zap.String("mode", string(mode)),
		zap.Int("total", summary.Total),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// apply runs one batch under the given mode. A row that fails
// validation or storage is counted as skipped; it never aborts the
// rest of the batch.
func (s *ImporterServiceImpl) apply(ctx context.Context, mode models.ImportMode, records []member.Member) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{Total: len(records)}

	if mode == models.ImportDeleteAll {
		if err := s.Store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear members: %w", err)
		}
	}

	for i := range records {
		m := records[i]
		if err := member.Validate(&m); err != nil {
			summary.Skipped++
			s.Logger.Warn("import row rejected",
				zap.Int("row", i+1),
				zap.String("emp_id", m.EmpID),
				zap.Error(err))
			continue
		}

		switch mode {
		case models.ImportUpsert:
			created, err := s.Store.Upsert(ctx, &m)
			switch {
			case err != nil:
				summary.Skipped++
				s.Logger.Warn("import row failed", zap.Int("row", i+1), zap.Error(err))
			case created:
				summary.Inserted++
			default:
				summary.Updated++
			}
		default: // delete_all and insert_only both insert
			err := s.Store.Create(ctx, &m)
			switch {
			case errors.Is(err, models.ErrDuplicate):
				summary.Skipped++
			case err != nil:
				summary.Skipped++
				s.Logger.Warn("import row failed", zap.Int("row", i+1), zap.Error(err))
			default:
				summary.Inserted++
			}
		}
	}

	summary.Message = fmt.Sprintf("import completed: %d inserted, %d updated, %d skipped",
		summary.Inserted, summary.Updated, summary.Skipped)
	return summary, nil
}
