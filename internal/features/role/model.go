package role

import (
	"time"

	"go-hr/internal/common/models"
)

// Role is one console role. FunctionIDs are the feature entries the role
// unlocks; IsSystem marks built-ins that must never be deleted.
type Role struct {
	RoleID      string    `json:"role_id" bson:"role_id"`
	RoleName    string    `json:"role_name" bson:"role_name"`
	Description string    `json:"description" bson:"description"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	IsSystem    bool      `json:"is_system" bson:"is_system"`
	FunctionIDs []string  `json:"functions" bson:"functions"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Filter struct {
	models.ListQuery
	IsActive *bool
}
