package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/features/sysuser"
	"go-hr/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const expireLayout = "2006-01-02"

// MemberDirectory resolves employee display names for the session
// payload.
type MemberDirectory interface {
	NamesByEmpID(ctx context.Context, empIDs []string) (map[string]string, error)
}

type AuthService interface {
	Login(ctx context.Context, userID, password string) (*Session, error)
	Me(ctx context.Context, userID string, roles []string) (*UserInfo, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

type AuthServiceImpl struct {
	Users   sysuser.UserRepository
	Members MemberDirectory
	Logger  *zap.Logger
}

func NewAuthService(users sysuser.UserRepository, members MemberDirectory, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{Users: users, Members: members, Logger: logger}
}

// Login verifies the credentials and issues a bearer token. Credential
// failures collapse into one message so the response never reveals
// whether the account exists.
func (s *AuthServiceImpl) Login(ctx context.Context, userID, password string) (*Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || password == "" {
		return nil, fmt.Errorf("user_id and password are required: %w", models.ErrInvalid)
	}

	u, err := s.Users.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.Logger.Warn("login rejected", zap.String("user_id", userID), zap.String("reason", "unknown account"))
			return nil, fmt.Errorf("invalid account or password: %w", models.ErrUnauthorized)
		}
		return nil, err
	}
	if !u.IsActive {
		s.Logger.Warn("login rejected", zap.String("user_id", userID), zap.String("reason", "account disabled"))
		return nil, fmt.Errorf("account is disabled: %w", models.ErrUnauthorized)
	}
	if u.ExpireDate != "" && u.ExpireDate < time.Now().Format(expireLayout) {
		s.Logger.Warn("login rejected", zap.String("user_id", userID), zap.String("reason", "account expired"))
		return nil, fmt.Errorf("account has expired: %w", models.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.Logger.Warn("login rejected", zap.String("user_id", userID), zap.String("reason", "bad password"))
		return nil, fmt.Errorf("invalid account or password: %w", models.ErrUnauthorized)
	}

	if err := s.Users.TouchLogin(ctx, userID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is bookkeeping.
		s.Logger.Warn("touch last login failed", zap.String("user_id", userID), zap.Error(err))
	}

	name := s.displayName(ctx, userID)
	token, err := utils.GenerateToken(userID, name, u.Roles)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.Logger.Info("login succeeded", zap.String("user_id", userID))
	return &Session{Token: token, UserID: userID, UserName: name, Roles: u.Roles}, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string, roles []string) (*UserInfo, error) {
	u, err := s.Users.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		UserID:   u.UserID,
		UserName: s.displayName(ctx, userID),
		Roles:    roles,
		IsActive: u.IsActive,
	}, nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.Users.Find(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("old password is incorrect: %w", models.ErrInvalid)
	}
	hash, err := sysuser.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.Patch(ctx, userID, bson.M{
		"password_hash": hash,
		"updated_at":    time.Now(),
	}); err != nil {
		return err
	}
	s.Logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func (s *AuthServiceImpl) displayName(ctx context.Context, userID string) string {
	names, err := s.Members.NamesByEmpID(ctx, []string{userID})
	if err != nil {
		s.Logger.Warn("name lookup failed", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	return names[userID]
}
