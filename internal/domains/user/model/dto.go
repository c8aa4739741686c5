package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"guestdex-backend/internal/shared/auth"
)

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required.Error("user_name is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest creates a new account, or reactivates a
// soft-deleted one under the same user name.
type CreateUserRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required.Error("user_name is required")),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 0).Error("password must be at least 8 characters"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
			validation.In(auth.RoleEditor, auth.RoleModerator, auth.RoleAdmin).Error("role must be editor, moderator or admin"),
		),
	)
}

type PasswordUpdateRequest struct {
	Password string `json:"password"`
}

func (r PasswordUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 0).Error("password must be at least 8 characters"),
		),
	)
}
