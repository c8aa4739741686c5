package model

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown user name and wrong
	// password, so login failures do not reveal which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserInactive = errors.New("user account is deactivated")

	// ErrUserAlreadyExists means the user name is taken by an active
	// account.
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrInvalidRole = errors.New("invalid role")

	// ErrForbidden means the caller is not an admin.
	ErrForbidden = errors.New("insufficient role for this operation")
)
