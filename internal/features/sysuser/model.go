package sysuser

import (
	"time"

	"go-hr/internal/common/models"
)

// User is a console account. UserID doubles as the employee id; the
// display name is joined from the member collection on read.
type User struct {
	UserID       string     `json:"user_id" bson:"user_id"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	ActiveDate   string     `json:"active_date,omitempty" bson:"active_date,omitempty"`
	ExpireDate   string     `json:"expire_date,omitempty" bson:"expire_date,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	Roles        []string   `json:"roles" bson:"roles"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`

	UserName string `json:"user_name,omitempty" bson:"-"`
}

// CreateUser is the admin-facing create payload.
type CreateUser struct {
	UserID     string   `json:"user_id"`
	Password   string   `json:"password"`
	IsActive   bool     `json:"is_active"`
	ExpireDate string   `json:"expire_date"`
	RoleIDs    []string `json:"role_ids"`
}

// UpdateUser is a partial update; nil fields are left alone. A non-empty
// ResetPassword replaces the stored hash.
type UpdateUser struct {
	IsActive      *bool     `json:"is_active"`
	ExpireDate    *string   `json:"expire_date"`
	ResetPassword string    `json:"reset_password"`
	RoleIDs       *[]string `json:"role_ids"`
}

type Filter struct {
	models.ListQuery
}
