package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is what the backend returns on a successful login.
type LoginResponse struct {
	Msg                string `json:"msg"`
	AccessToken        string `json:"access_token"`
	Role               Role   `json:"role"`
	Username           string `json:"username"`
	UserID             int64  `json:"user_id"`
	MustChangePassword bool   `json:"must_change_password"`
}

// RegisterRequest is the body of POST /auth/register. Accounts stay pending
// until an administrator approves them.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin teacher"`
	Name     string `json:"name" validate:"required"`
}

// ChangePasswordRequest is the body of POST /auth/change_password.
type ChangePasswordRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// RegisterConfig reports whether self-registration is open.
type RegisterConfig struct {
	AllowRegister bool `json:"allow_register"`
}

// Message is the generic {"msg": "..."} reply most mutating endpoints use.
type Message struct {
	Msg string `json:"msg"`
}
