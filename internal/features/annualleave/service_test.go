package annualleave

import (
	"context"
	"errors"
	"sort"
	"testing"

	"go-hr/internal/common/models"

	"go.uber.org/zap"
)

type memoryRepo struct {
	balances map[Key]Balance
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{balances: make(map[Key]Balance)}
}

func balKey(b Balance) Key {
	return Key{EmpID: b.EmpID, Year: b.Year, LeaveType: b.LeaveType}
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]Balance, int64, error) {
	var out []Balance
	for _, b := range r.balances {
		if f.EmpID != "" && b.EmpID != f.EmpID {
			continue
		}
		if f.Year != "" && b.Year != f.Year {
			continue
		}
		if f.LeaveType != "" && b.LeaveType != f.LeaveType {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].EmpID < out[j].EmpID
	})
	return out, int64(len(out)), nil
}

func (r *memoryRepo) Find(_ context.Context, key Key) (*Balance, error) {
	b, ok := r.balances[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (r *memoryRepo) Create(_ context.Context, b *Balance) error {
	if _, ok := r.balances[balKey(*b)]; ok {
		return models.ErrDuplicate
	}
	r.balances[balKey(*b)] = *b
	return nil
}

func (r *memoryRepo) Update(_ context.Context, key Key, b *Balance) error {
	if _, ok := r.balances[key]; !ok {
		return models.ErrNotFound
	}
	b.EmpID, b.Year, b.LeaveType = key.EmpID, key.Year, key.LeaveType
	r.balances[key] = *b
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key Key) error {
	if _, ok := r.balances[key]; !ok {
		return models.ErrNotFound
	}
	delete(r.balances, key)
	return nil
}

func (r *memoryRepo) Upsert(_ context.Context, b *Balance) (bool, error) {
	_, existed := r.balances[balKey(*b)]
	r.balances[balKey(*b)] = *b
	return !existed, nil
}

func (r *memoryRepo) ByYear(_ context.Context, year string) ([]Balance, error) {
	var out []Balance
	for _, b := range r.balances {
		if b.Year == year {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID < out[j].EmpID })
	return out, nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

func newTestService(repo BalanceRepository) BalanceService {
	return NewBalanceService(repo, zap.NewNop())
}

func TestCreateBalanceValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		balance Balance
	}{
		{"missing emp_id", Balance{Year: "2026", LeaveType: "A1"}},
		{"bad year", Balance{EmpID: "E001", Year: "26", LeaveType: "A1"}},
		{"missing type", Balance{EmpID: "E001", Year: "2026"}},
		{"granted over cap", Balance{EmpID: "E001", Year: "2026", LeaveType: "A1", GrantedDays: 400}},
		{"negative used", Balance{EmpID: "E001", Year: "2026", LeaveType: "A1", UsedDays: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreateBalance(ctx, &tc.balance); !errors.Is(err, models.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRemainingDerived(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b := Balance{EmpID: "E001", Year: "2026", LeaveType: "A1", GrantedDays: 14, CarriedDays: 3, UsedDays: 5.5}
	if err := svc.CreateBalance(ctx, &b); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GetBalance(ctx, balKey(b))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RemainingDays != 11.5 {
		t.Fatalf("remaining=%v", got.RemainingDays)
	}
}

func TestRolloverCarriesRemaining(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	seed := []Balance{
		{EmpID: "E001", Year: "2025", LeaveType: "A1", GrantedDays: 14, UsedDays: 4},
		{EmpID: "E002", Year: "2025", LeaveType: "A1", GrantedDays: 10, UsedDays: 10},
		{EmpID: "E003", Year: "2025", LeaveType: "A1", GrantedDays: 7, UsedDays: 9},
	}
	for i := range seed {
		if err := svc.CreateBalance(ctx, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	created, err := svc.Rollover(ctx, "2026")
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if created != 3 {
		t.Fatalf("created=%d", created)
	}

	next, err := repo.Find(ctx, Key{EmpID: "E001", Year: "2026", LeaveType: "A1"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if next.GrantedDays != 14 || next.CarriedDays != 10 || next.UsedDays != 0 {
		t.Fatalf("got %+v", next)
	}

	// Overdrawn balances never carry a negative amount forward.
	over, err := repo.Find(ctx, Key{EmpID: "E003", Year: "2026", LeaveType: "A1"})
	if err != nil {
		t.Fatalf("find overdrawn: %v", err)
	}
	if over.CarriedDays != 0 {
		t.Fatalf("carried=%v", over.CarriedDays)
	}
}

func TestRolloverIsRerunSafe(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b := Balance{EmpID: "E001", Year: "2025", LeaveType: "A1", GrantedDays: 14}
	if err := svc.CreateBalance(ctx, &b); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Rollover(ctx, "2026"); err != nil {
		t.Fatalf("first rollover: %v", err)
	}

	// Operator adjusts the new year; a rerun must not clobber it.
	key := Key{EmpID: "E001", Year: "2026", LeaveType: "A1"}
	adjusted := Balance{GrantedDays: 20, UsedDays: 1}
	if err := svc.UpdateBalance(ctx, key, &adjusted); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	created, err := svc.Rollover(ctx, "2026")
	if err != nil {
		t.Fatalf("second rollover: %v", err)
	}
	if created != 0 {
		t.Fatalf("created=%d on rerun", created)
	}
	got, err := repo.Find(ctx, key)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.GrantedDays != 20 || got.UsedDays != 1 {
		t.Fatalf("rerun clobbered adjustment: %+v", got)
	}
}

func TestRolloverRejectsBadYear(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	if _, err := svc.Rollover(context.Background(), "not-a-year"); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
