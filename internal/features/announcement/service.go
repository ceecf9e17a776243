package announcement

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/features/codetable"
	"go-hr/pkg/report"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CategorySource supplies the announcement categories from the shared
// code table.
type CategorySource interface {
	ActiveByCategory(ctx context.Context, codeCode string) ([]codetable.Code, error)
}

type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, f Filter) (models.ListResult[Announcement], error)
	ActiveFor(ctx context.Context, userID string) ([]Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (*Announcement, error)
	CreateAnnouncement(ctx context.Context, a *Announcement, userID string) error
	UpdateAnnouncement(ctx context.Context, id string, a *Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id, userID string) error
	Categories(ctx context.Context) ([]codetable.Code, error)
	SweepExpired(ctx context.Context) (int64, error)
	Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error)
	AddAttachment(ctx context.Context, att *Attachment) error
	GetAttachment(ctx context.Context, attachmentID string) (*Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

type AnnouncementServiceImpl struct {
	Repo   AnnouncementRepository
	Codes  CategorySource
	Logger *zap.Logger
}

func NewAnnouncementService(repo AnnouncementRepository, codes CategorySource, logger *zap.Logger) AnnouncementService {
	return &AnnouncementServiceImpl{Repo: repo, Codes: codes, Logger: logger}
}

const dateLayout = "2006-01-02"

// maxAttachmentSize bounds a single uploaded file.
const maxAttachmentSize = 10 << 20

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validate(a *Announcement) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required: %w", models.ErrInvalid)
	}
	if !validDate(a.PublishDate) || !validDate(a.ExpireDate) {
		return fmt.Errorf("dates must be YYYY-MM-DD: %w", models.ErrInvalid)
	}
	if a.PublishDate != "" && a.ExpireDate != "" && a.ExpireDate < a.PublishDate {
		return fmt.Errorf("expire_date precedes publish_date: %w", models.ErrInvalid)
	}
	return nil
}

// categoryNames maps category id to display name for list joins.
func (s *AnnouncementServiceImpl) categoryNames(ctx context.Context) (map[string]string, error) {
	codes, err := s.Codes.ActiveByCategory(ctx, categoryCode)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		names[code.CodeSubcode] = code.CodeSubname
	}
	return names, nil
}

func (s *AnnouncementServiceImpl) ListAnnouncements(ctx context.Context, f Filter) (models.ListResult[Announcement], error) {
	items, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return models.ListResult[Announcement]{}, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return models.ListResult[Announcement]{}, err
	}
	for i := range items {
		items[i].CategoryName = names[items[i].CategoryID]
	}
	return models.NewListResult(items, total, f.ListQuery), nil
}

// ActiveFor returns the unread, currently visible announcements for one
// user, pinned entries first.
func (s *AnnouncementServiceImpl) ActiveFor(ctx context.Context, userID string) ([]Announcement, error) {
	today := time.Now().Format(dateLayout)
	items, err := s.Repo.ActiveWithin(ctx, today)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	unread := []Announcement{}
	for _, a := range items {
		seen := false
		for _, reader := range a.ReadBy {
			if reader == userID {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		a.CategoryName = names[a.CategoryID]
		unread = append(unread, a)
	}
	return unread, nil
}

func (s *AnnouncementServiceImpl) GetAnnouncement(ctx context.Context, id string) (*Announcement, error) {
	a, err := s.Repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	a.CategoryName = names[a.CategoryID]
	attachments, err := s.Repo.AttachmentsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Attachments = attachments
	return a, nil
}

func (s *AnnouncementServiceImpl) CreateAnnouncement(ctx context.Context, a *Announcement, userID string) error {
	if err := validate(a); err != nil {
		return err
	}
	now := time.Now()
	a.AnnouncementID = primitive.NewObjectID().Hex()
	a.CreatedBy = userID
	a.ReadBy = []string{}
	a.CreatedAt, a.UpdatedAt = now, now
	if err := s.Repo.Create(ctx, a); err != nil {
		return err
	}
	s.Logger.Info("announcement created",
		zap.String("announcement_id", a.AnnouncementID),
		zap.String("created_by", userID))
	return nil
}

func (s *AnnouncementServiceImpl) UpdateAnnouncement(ctx context.Context, id string, a *Announcement) error {
	existing, err := s.Repo.Find(ctx, id)
	if err != nil {
		return err
	}
	a.AnnouncementID = id
	if err := validate(a); err != nil {
		return err
	}
	// Authorship and read history survive edits.
	a.CreatedBy = existing.CreatedBy
	a.ReadBy = existing.ReadBy
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, id, a)
}

// DeleteAnnouncement removes the entry together with its attachments,
// records and files both.
func (s *AnnouncementServiceImpl) DeleteAnnouncement(ctx context.Context, id string) error {
	attachments, err := s.Repo.AttachmentsFor(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, att := range attachments {
		if err := os.Remove(att.Path); err != nil && !os.IsNotExist(err) {
			s.Logger.Warn("attachment file not removed",
				zap.String("attachment_id", att.AttachmentID),
				zap.Error(err))
		}
	}
	if err := s.Repo.DeleteAttachmentsFor(ctx, id); err != nil {
		return err
	}
	return nil
}

// AddAttachment records an uploaded file on an existing announcement.
// The caller has already written the bytes to att.Path.
func (s *AnnouncementServiceImpl) AddAttachment(ctx context.Context, att *Attachment) error {
	if att.FileSize > maxAttachmentSize {
		return fmt.Errorf("file exceeds %d bytes: %w", maxAttachmentSize, models.ErrInvalid)
	}
	if _, err := s.Repo.Find(ctx, att.AnnouncementID); err != nil {
		return err
	}
	att.AttachmentID = primitive.NewObjectID().Hex()
	att.CreatedAt = time.Now()
	if err := s.Repo.CreateAttachment(ctx, att); err != nil {
		return err
	}
	s.Logger.Info("attachment uploaded",
		zap.String("announcement_id", att.AnnouncementID),
		zap.String("attachment_id", att.AttachmentID),
		zap.Int64("size", att.FileSize))
	return nil
}

func (s *AnnouncementServiceImpl) GetAttachment(ctx context.Context, attachmentID string) (*Attachment, error) {
	return s.Repo.FindAttachment(ctx, attachmentID)
}

// DeleteAttachment removes the record and the file behind it.
func (s *AnnouncementServiceImpl) DeleteAttachment(ctx context.Context, attachmentID string) error {
	att, err := s.Repo.FindAttachment(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := os.Remove(att.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove attachment file: %w", err)
	}
	if err := s.Repo.DeleteAttachment(ctx, attachmentID); err != nil {
		return err
	}
	s.Logger.Info("attachment deleted", zap.String("attachment_id", attachmentID))
	return nil
}

func (s *AnnouncementServiceImpl) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

func (s *AnnouncementServiceImpl) Categories(ctx context.Context) ([]codetable.Code, error) {
	return s.Codes.ActiveByCategory(ctx, categoryCode)
}

// ExportColumns defines the announcement report layout shared by all
// three formats.
func ExportColumns() []report.Column {
	yesNo := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "yes"
		}
		return "no"
	}
	status := func(v any, _ map[string]any) string {
		if b, ok := v.(bool); ok && b {
			return "active"
		}
		return "inactive"
	}
	return []report.Column{
		{Key: "title", Title: "Title", Width: 60},
		{Key: "category_name", Title: "Category", Width: 30},
		{Key: "publish_date", Title: "Publish Date", Width: 28},
		{Key: "expire_date", Title: "Expire Date", Width: 28},
		{Key: "is_pinned", Title: "Pinned", Width: 20, Formatter: yesNo},
		{Key: "is_active", Title: "Status", Width: 22, Formatter: status},
		{Key: "created_by", Title: "Created By", Width: 28},
	}
}

func rowMap(a Announcement) map[string]any {
	return map[string]any{
		"title":         a.Title,
		"category_name": a.CategoryName,
		"publish_date":  a.PublishDate,
		"expire_date":   a.ExpireDate,
		"is_pinned":     a.IsPinned,
		"is_active":     a.IsActive,
		"created_by":    a.CreatedBy,
	}
}

// Export encodes the whole filtered result set in the requested format.
func (s *AnnouncementServiceImpl) Export(ctx context.Context, f Filter, format string) ([]byte, string, string, error) {
	f.PageSize = 0
	items, _, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, "", "", err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, "", "", err
	}
	rows := make([]map[string]any, len(items))
	for i, a := range items {
		a.CategoryName = names[a.CategoryID]
		rows[i] = rowMap(a)
	}
	job := report.Job{Rows: rows, Columns: ExportColumns(), Title: "Announcement List", Stem: "announcements"}
	return report.Export(job, format)
}

// SweepExpired deactivates announcements whose window has closed.
func (s *AnnouncementServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	today := time.Now().Format(dateLayout)
	n, err := s.Repo.DeactivateExpired(ctx, today)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Logger.Info("expired announcements deactivated", zap.Int64("count", n))
	}
	return n, nil
}
