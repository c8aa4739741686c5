package model

import "time"

// Account statuses. Deactivation is soft; the row stays for audit and
// for reactivation through the admin create endpoint.
const (
	StatusInactive = 0
	StatusActive   = 1
)

// User is an editorial account. PasswordHash never leaves the service
// layer.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"user_name"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Status       int       `json:"status"`
	ModifiedBy   int64     `json:"modified_by,omitempty"`
	LastModified time.Time `json:"last_modified"`
}
