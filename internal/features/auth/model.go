package auth

// LoginRequest is the credential payload.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Session is the login response: a bearer token plus the display data
// the console header shows.
type Session struct {
	Token    string   `json:"token"`
	UserID   string   `json:"user_id"`
	UserName string   `json:"user_name"`
	Roles    []string `json:"roles"`
}

// UserInfo is the /me payload.
type UserInfo struct {
	UserID   string   `json:"user_id"`
	UserName string   `json:"user_name"`
	Roles    []string `json:"roles"`
	IsActive bool     `json:"is_active"`
}

// ChangePasswordRequest replaces the caller's own password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
