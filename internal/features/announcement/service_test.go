package announcement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/features/codetable"

	"go.uber.org/zap"
)

type memoryRepo struct {
	items       map[string]Announcement
	attachments map[string]Attachment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		items:       make(map[string]Announcement),
		attachments: make(map[string]Attachment),
	}
}

func (r *memoryRepo) sorted(items []Announcement) []Announcement {
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsPinned != items[j].IsPinned {
			return items[i].IsPinned
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]Announcement, int64, error) {
	var out []Announcement
	for _, a := range r.items {
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		if f.IsActive != nil && a.IsActive != *f.IsActive {
			continue
		}
		out = append(out, a)
	}
	return r.sorted(out), int64(len(out)), nil
}

func (r *memoryRepo) ActiveWithin(_ context.Context, today string) ([]Announcement, error) {
	var out []Announcement
	for _, a := range r.items {
		if !a.IsActive {
			continue
		}
		if a.PublishDate != "" && a.PublishDate > today {
			continue
		}
		if a.ExpireDate != "" && a.ExpireDate < today {
			continue
		}
		out = append(out, a)
	}
	return r.sorted(out), nil
}

func (r *memoryRepo) Find(_ context.Context, id string) (*Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (r *memoryRepo) Create(_ context.Context, a *Announcement) error {
	r.items[a.AnnouncementID] = *a
	return nil
}

func (r *memoryRepo) Update(_ context.Context, id string, a *Announcement) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	a.AnnouncementID = id
	r.items[id] = *a
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) MarkRead(_ context.Context, id, userID string) error {
	a, ok := r.items[id]
	if !ok {
		return models.ErrNotFound
	}
	for _, reader := range a.ReadBy {
		if reader == userID {
			return nil
		}
	}
	a.ReadBy = append(a.ReadBy, userID)
	r.items[id] = a
	return nil
}

func (r *memoryRepo) DeactivateExpired(_ context.Context, today string) (int64, error) {
	var n int64
	for id, a := range r.items {
		if a.IsActive && a.ExpireDate != "" && a.ExpireDate < today {
			a.IsActive = false
			r.items[id] = a
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CreateAttachment(_ context.Context, att *Attachment) error {
	r.attachments[att.AttachmentID] = *att
	return nil
}

func (r *memoryRepo) AttachmentsFor(_ context.Context, announcementID string) ([]Attachment, error) {
	out := []Attachment{}
	for _, att := range r.attachments {
		if att.AnnouncementID == announcementID {
			out = append(out, att)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) FindAttachment(_ context.Context, attachmentID string) (*Attachment, error) {
	att, ok := r.attachments[attachmentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &att, nil
}

func (r *memoryRepo) DeleteAttachment(_ context.Context, attachmentID string) error {
	if _, ok := r.attachments[attachmentID]; !ok {
		return models.ErrNotFound
	}
	delete(r.attachments, attachmentID)
	return nil
}

func (r *memoryRepo) DeleteAttachmentsFor(_ context.Context, announcementID string) error {
	for id, att := range r.attachments {
		if att.AnnouncementID == announcementID {
			delete(r.attachments, id)
		}
	}
	return nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

type fakeCategories struct{}

func (fakeCategories) ActiveByCategory(context.Context, string) ([]codetable.Code, error) {
	return []codetable.Code{
		{CodeCode: categoryCode, CodeSubcode: "01", CodeSubname: "General", UsedMark: "1"},
		{CodeCode: categoryCode, CodeSubcode: "02", CodeSubname: "HR", UsedMark: "1"},
	}, nil
}

func newTestService(repo AnnouncementRepository) AnnouncementService {
	return NewAnnouncementService(repo, fakeCategories{}, zap.NewNop())
}

func TestCreateAnnouncementValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		ann  Announcement
	}{
		{"missing title", Announcement{Content: "body"}},
		{"bad date", Announcement{Title: "x", PublishDate: "01-02-2026"}},
		{"window inverted", Announcement{Title: "x", PublishDate: "2026-03-01", ExpireDate: "2026-01-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateAnnouncement(ctx, &tc.ann, "admin"); !errors.Is(err, models.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestActiveForWindowAndReadState(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	today := time.Now().Format(dateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)

	anns := []Announcement{
		{Title: "visible", IsActive: true, CategoryID: "01"},
		{Title: "not yet", IsActive: true, PublishDate: tomorrow},
		{Title: "expired", IsActive: true, ExpireDate: yesterday},
		{Title: "disabled", IsActive: false},
		{Title: "closes today", IsActive: true, ExpireDate: today},
	}
	for i := range anns {
		if err := svc.CreateAnnouncement(ctx, &anns[i], "admin"); err != nil {
			t.Fatalf("create %q: %v", anns[i].Title, err)
		}
	}

	items, err := svc.ActiveFor(ctx, "E001")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len=%d: %+v", len(items), items)
	}
	// Category names are joined from the code table.
	for _, a := range items {
		if a.Title == "visible" && a.CategoryName != "General" {
			t.Fatalf("category not joined: %+v", a)
		}
	}

	// Reading one removes it from the next fetch.
	if err := svc.MarkRead(ctx, items[0].AnnouncementID, "E001"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	items, err = svc.ActiveFor(ctx, "E001")
	if err != nil {
		t.Fatalf("active after read: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len after read=%d", len(items))
	}

	// Another user still sees both.
	items, err = svc.ActiveFor(ctx, "E002")
	if err != nil {
		t.Fatalf("active other user: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("other user len=%d", len(items))
	}
}

func TestPinnedSortFirst(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	plain := Announcement{Title: "plain", IsActive: true}
	if err := svc.CreateAnnouncement(ctx, &plain, "admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	pinned := Announcement{Title: "pinned", IsActive: true, IsPinned: true}
	if err := svc.CreateAnnouncement(ctx, &pinned, "admin"); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.ActiveFor(ctx, "E001")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if items[0].Title != "pinned" {
		t.Fatalf("order: %+v", items)
	}
}

func TestUpdatePreservesAuthorshipAndReads(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	a := Announcement{Title: "orig", IsActive: true}
	if err := svc.CreateAnnouncement(ctx, &a, "author"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.MarkRead(ctx, a.AnnouncementID, "E001"); err != nil {
		t.Fatalf("read: %v", err)
	}

	upd := Announcement{Title: "edited", IsActive: true, CreatedBy: "impostor"}
	if err := svc.UpdateAnnouncement(ctx, a.AnnouncementID, &upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetAnnouncement(ctx, a.AnnouncementID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "edited" || got.CreatedBy != "author" {
		t.Fatalf("got %+v", got)
	}
	if len(got.ReadBy) != 1 || got.ReadBy[0] != "E001" {
		t.Fatalf("read history lost: %+v", got.ReadBy)
	}
}

func TestSweepExpired(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	stale := Announcement{Title: "stale", IsActive: true, ExpireDate: yesterday}
	fresh := Announcement{Title: "fresh", IsActive: true}
	for _, a := range []*Announcement{&stale, &fresh} {
		if err := svc.CreateAnnouncement(ctx, a, "admin"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	n, err := svc.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("swept=%d", n)
	}
	got, err := svc.GetAnnouncement(ctx, stale.AnnouncementID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive {
		t.Fatal("stale announcement still active")
	}
}

func writeAttachmentFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddAttachmentValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	a := Announcement{Title: "with files", CategoryID: "01", IsActive: true}
	if err := svc.CreateAnnouncement(ctx, &a, "admin"); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.AddAttachment(ctx, &Attachment{AnnouncementID: "missing", FileName: "a.pdf", FileSize: 10})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unknown announcement: got %v, want ErrNotFound", err)
	}

	err = svc.AddAttachment(ctx, &Attachment{
		AnnouncementID: a.AnnouncementID,
		FileName:       "huge.zip",
		FileSize:       maxAttachmentSize + 1,
	})
	if !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("oversize file: got %v, want ErrInvalid", err)
	}

	att := Attachment{AnnouncementID: a.AnnouncementID, FileName: "memo.pdf", FileSize: 128}
	if err := svc.AddAttachment(ctx, &att); err != nil {
		t.Fatalf("add: %v", err)
	}
	if att.AttachmentID == "" {
		t.Fatal("attachment id not assigned")
	}

	got, err := svc.GetAnnouncement(ctx, a.AnnouncementID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].FileName != "memo.pdf" {
		t.Fatalf("detail attachments: %+v", got.Attachments)
	}
}

func TestDeleteAttachmentRemovesFile(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	dir := t.TempDir()

	a := Announcement{Title: "with files", CategoryID: "01", IsActive: true}
	if err := svc.CreateAnnouncement(ctx, &a, "admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	path := writeAttachmentFile(t, dir, "memo.pdf")
	att := Attachment{AnnouncementID: a.AnnouncementID, FileName: "memo.pdf", Path: path, FileSize: 7}
	if err := svc.AddAttachment(ctx, &att); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteAttachment(ctx, att.AttachmentID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still on disk after delete")
	}
	if _, err := svc.GetAttachment(ctx, att.AttachmentID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("record survived delete: %v", err)
	}
}

func TestDeleteAnnouncementCascadesAttachments(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	dir := t.TempDir()

	a := Announcement{Title: "with files", CategoryID: "01", IsActive: true}
	if err := svc.CreateAnnouncement(ctx, &a, "admin"); err != nil {
		t.Fatalf("create: %v", err)
	}
	var paths []string
	for _, name := range []string{"one.pdf", "two.xlsx"} {
		path := writeAttachmentFile(t, dir, name)
		paths = append(paths, path)
		att := Attachment{AnnouncementID: a.AnnouncementID, FileName: name, Path: path, FileSize: 7}
		if err := svc.AddAttachment(ctx, &att); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	if err := svc.DeleteAnnouncement(ctx, a.AnnouncementID); err != nil {
		t.Fatalf("delete announcement: %v", err)
	}
	for _, path := range paths {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file %s still on disk", path)
		}
	}
	if len(repo.attachments) != 0 {
		t.Fatalf("attachment records survived: %+v", repo.attachments)
	}
}
