package repository

import (
	"context"

	"guestdex-backend/internal/domains/user/model"
)

// Repository is the user account data-access contract.
type Repository interface {
	// FindByUserName returns the account in any status.
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	// Create inserts an active account and sets u.ID.
	Create(ctx context.Context, u *model.User) error

	// Reactivate flips a soft-deleted account back to active with a
	// fresh password hash and role.
	Reactivate(ctx context.Context, id int64, passwordHash, role string, modifiedBy int64) error

	Deactivate(ctx context.Context, id, modifiedBy int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, modifiedBy int64) error
}
