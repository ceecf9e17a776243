package member

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"go-hr/internal/common/models"

	"go.uber.org/zap"
)

// memoryRepo is an in-memory MemberRepository for service tests.
type memoryRepo struct {
	members map[string]Member
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{members: make(map[string]Member)}
}

func (r *memoryRepo) matches(m Member, f Filter) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		hit := false
		for _, v := range []string{m.ChineseName, m.Name, m.EmpID, m.Email, m.JobTitle} {
			if strings.Contains(strings.ToLower(v), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Division != "" && m.DivisionName != f.Division {
		return false
	}
	if f.IsEmployed != nil && m.IsEmployed != *f.IsEmployed {
		return false
	}
	return true
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]Member, int64, error) {
	var out []Member
	for _, m := range r.members {
		if r.matches(m, f) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	total := int64(len(out))
	if f.PageSize > 0 {
		start := (f.Page - 1) * f.PageSize
		if start > len(out) {
			start = len(out)
		}
		end := start + f.PageSize
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (r *memoryRepo) FindByEmpID(_ context.Context, empID string) (*Member, error) {
	m, ok := r.members[empID]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
	}
	return &m, nil
}

func (r *memoryRepo) Create(_ context.Context, m *Member) error {
	if _, ok := r.members[m.EmpID]; ok {
		return fmt.Errorf("employee %s: %w", m.EmpID, models.ErrDuplicate)
	}
	r.members[m.EmpID] = *m
	return nil
}

func (r *memoryRepo) Update(_ context.Context, empID string, m *Member) error {
	if _, ok := r.members[empID]; !ok {
		return fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
	}
	m.EmpID = empID
	r.members[empID] = *m
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, empID string) error {
	if _, ok := r.members[empID]; !ok {
		return fmt.Errorf("employee %s: %w", empID, models.ErrNotFound)
	}
	delete(r.members, empID)
	return nil
}

func (r *memoryRepo) Upsert(_ context.Context, m *Member) (bool, error) {
	_, existed := r.members[m.EmpID]
	r.members[m.EmpID] = *m
	return !existed, nil
}

func (r *memoryRepo) DeleteAll(context.Context) error {
	r.members = make(map[string]Member)
	return nil
}

func (r *memoryRepo) Divisions(context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.members {
		if m.DivisionName != "" && !seen[m.DivisionName] {
			seen[m.DivisionName] = true
			out = append(out, m.DivisionName)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memoryRepo) NamesByEmpID(_ context.Context, empIDs []string) (map[string]string, error) {
	names := make(map[string]string)
	for _, id := range empIDs {
		if m, ok := r.members[id]; ok {
			if m.ChineseName != "" {
				names[id] = m.ChineseName
			} else {
				names[id] = m.Name
			}
		}
	}
	return names, nil
}

func (r *memoryRepo) FindEmpIDsByName(_ context.Context, name string) ([]string, error) {
	var ids []string
	term := strings.ToLower(name)
	for _, m := range r.members {
		if strings.Contains(strings.ToLower(m.ChineseName), term) || strings.Contains(strings.ToLower(m.Name), term) {
			ids = append(ids, m.EmpID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memoryRepo) EmployedRefs(_ context.Context, search string) ([]models.MemberRef, error) {
	term := strings.ToLower(search)
	refs := []models.MemberRef{}
	for _, m := range r.members {
		if !m.IsEmployed {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(m.EmpID), term) &&
			!strings.Contains(strings.ToLower(m.ChineseName), term) {
			continue
		}
		name := m.ChineseName
		if name == "" {
			name = m.Name
		}
		refs = append(refs, models.MemberRef{EmpID: m.EmpID, Name: name, JobTitle: m.JobTitle})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].EmpID < refs[j].EmpID })
	return refs, nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

func newTestService(repo MemberRepository) MemberService {
	return NewMemberService(repo, zap.NewNop())
}

func TestCreateMemberValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		member Member
	}{
		{"empty emp_id", Member{EmpID: "  "}},
		{"emp_id too long", Member{EmpID: "E0000000000001"}},
		{"emp_id with symbols", Member{EmpID: "E-001"}},
		{"bad email", Member{EmpID: "E001", Email: "not-an-email"}},
		{"name too long", Member{EmpID: "E001", Name: strings.Repeat("a", 21)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CreateMember(ctx, &tc.member)
			if !errors.Is(err, models.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestCreateMemberDuplicate(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	first := Member{EmpID: "E001", Name: "Alice"}
	if err := svc.CreateMember(ctx, &first); err != nil {
		t.Fatalf("first create: %v", err)
	}
	dup := Member{EmpID: "E001", Name: "Other"}
	if err := svc.CreateMember(ctx, &dup); !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateMemberKeepsPathID(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.CreateMember(ctx, &Member{EmpID: "E001", Name: "Alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Body carries a different emp_id; the path parameter wins.
	if err := svc.UpdateMember(ctx, "E001", &Member{EmpID: "E999", Name: "Bob"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.GetMember(ctx, "E001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Bob" || got.EmpID != "E001" {
		t.Fatalf("got %+v", got)
	}
}

func TestListMembersPagination(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		m := Member{EmpID: fmt.Sprintf("E%03d", i), IsEmployed: true}
		if err := svc.CreateMember(ctx, &m); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	f := Filter{ListQuery: models.ListQuery{Page: 2, PageSize: 10}}
	result, err := svc.ListMembers(ctx, f)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 25 || result.TotalPages != 3 {
		t.Fatalf("total=%d pages=%d", result.Total, result.TotalPages)
	}
	if len(result.Items) != 10 || result.Items[0].EmpID != "E011" {
		t.Fatalf("items=%d first=%q", len(result.Items), result.Items[0].EmpID)
	}
}

// TestCreateSearchExportFlow walks the common admin path end to end:
// create a member, find it through search, download the CSV.
func TestCreateSearchExportFlow(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	noise := Member{EmpID: "E900", Name: "Someone Else", IsEmployed: true}
	if err := svc.CreateMember(ctx, &noise); err != nil {
		t.Fatalf("create noise: %v", err)
	}
	target := Member{
		EmpID:        "E001",
		ChineseName:  "王小明",
		Name:         "Ming Wang",
		DivisionName: "Engineering",
		JobTitle:     "Engineer",
		Email:        "ming@example.com",
		IsEmployed:   true,
	}
	if err := svc.CreateMember(ctx, &target); err != nil {
		t.Fatalf("create target: %v", err)
	}

	f := Filter{ListQuery: models.ListQuery{Search: "王小明", Page: 1, PageSize: 20}}
	result, err := svc.ListMembers(ctx, f)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || result.Items[0].EmpID != "E001" {
		t.Fatalf("search result: total=%d items=%+v", result.Total, result.Items)
	}

	data, filename, mime, err := svc.Export(ctx, f, "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(filename, "members_") || !strings.HasSuffix(filename, ".csv") {
		t.Fatalf("filename %q", filename)
	}
	if mime != "text/csv; charset=utf-8" {
		t.Fatalf("mime %q", mime)
	}

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[1][0] != "E001" || records[1][1] != "王小明" {
		t.Fatalf("row %v", records[1])
	}
	if records[1][7] != "employed" {
		t.Fatalf("status cell %q", records[1][7])
	}
}
