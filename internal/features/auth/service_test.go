package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/features/sysuser"
	"go-hr/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memoryUsers struct {
	users map[string]sysuser.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]sysuser.User)}
}

func (r *memoryUsers) List(context.Context, sysuser.Filter, []string) ([]sysuser.User, int64, error) {
	return nil, 0, nil
}

func (r *memoryUsers) Find(_ context.Context, userID string) (*sysuser.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) Create(_ context.Context, u *sysuser.User) error {
	r.users[u.UserID] = *u
	return nil
}

func (r *memoryUsers) Patch(_ context.Context, userID string, set bson.M) error {
	u, ok := r.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	if hash, ok := set["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	r.users[userID] = u
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, userID string) error {
	delete(r.users, userID)
	return nil
}

func (r *memoryUsers) TouchLogin(_ context.Context, userID string, at time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.LastLoginAt = &at
	r.users[userID] = u
	return nil
}

func (r *memoryUsers) UserIDs(context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *memoryUsers) EnsureIndexes(context.Context) error { return nil }

type fakeDirectory map[string]string

func (f fakeDirectory) NamesByEmpID(_ context.Context, empIDs []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, id := range empIDs {
		if name, ok := f[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func seedUser(t *testing.T, repo *memoryUsers, u sysuser.User, password string) {
	t.Helper()
	u.PasswordHash = mustHash(t, password)
	repo.users[u.UserID] = u
}

func TestLoginSuccess(t *testing.T) {
	repo := newMemoryUsers()
	seedUser(t, repo, sysuser.User{UserID: "E001", IsActive: true, Roles: []string{"ADMIN"}}, "secret-pass")
	svc := NewAuthService(repo, fakeDirectory{"E001": "王小明"}, zap.NewNop())

	session, err := svc.Login(context.Background(), "E001", "secret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.UserName != "王小明" || len(session.Roles) != 1 {
		t.Fatalf("session: %+v", session)
	}

	claims, err := utils.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if claims.UserID != "E001" || !claims.HasRole("admin") {
		t.Fatalf("claims: %+v", claims)
	}
	if repo.users["E001"].LastLoginAt == nil {
		t.Fatal("last login not touched")
	}
}

func TestLoginRejections(t *testing.T) {
	repo := newMemoryUsers()
	yesterday := time.Now().AddDate(0, 0, -1).Format(expireLayout)
	seedUser(t, repo, sysuser.User{UserID: "E001", IsActive: true}, "secret-pass")
	seedUser(t, repo, sysuser.User{UserID: "E002", IsActive: false}, "secret-pass")
	seedUser(t, repo, sysuser.User{UserID: "E003", IsActive: true, ExpireDate: yesterday}, "secret-pass")
	svc := NewAuthService(repo, fakeDirectory{}, zap.NewNop())

	cases := []struct {
		name     string
		userID   string
		password string
	}{
		{"unknown account", "NOBODY", "secret-pass"},
		{"wrong password", "E001", "wrong"},
		{"disabled account", "E002", "secret-pass"},
		{"expired account", "E003", "secret-pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.userID, tc.password); !errors.Is(err, models.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty credentials, got %v", err)
	}
}

func TestLoginAcceptsFutureExpiry(t *testing.T) {
	repo := newMemoryUsers()
	tomorrow := time.Now().AddDate(0, 0, 1).Format(expireLayout)
	seedUser(t, repo, sysuser.User{UserID: "E001", IsActive: true, ExpireDate: tomorrow}, "secret-pass")
	svc := NewAuthService(repo, fakeDirectory{}, zap.NewNop())

	if _, err := svc.Login(context.Background(), "E001", "secret-pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMemoryUsers()
	seedUser(t, repo, sysuser.User{UserID: "E001", IsActive: true}, "old-password")
	svc := NewAuthService(repo, fakeDirectory{}, zap.NewNop())
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "E001", "wrong", "new-password"); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong old password, got %v", err)
	}
	if err := svc.ChangePassword(ctx, "E001", "old-password", "short"); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for short password, got %v", err)
	}

	if err := svc.ChangePassword(ctx, "E001", "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	hash := []byte(repo.users["E001"].PasswordHash)
	if err := bcrypt.CompareHashAndPassword(hash, []byte("new-password")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}
