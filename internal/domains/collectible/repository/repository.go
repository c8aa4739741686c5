package repository

import (
	"context"

	"guestdex-backend/internal/domains/collectible/model"
)

// Repository is the read side of the collectible directory.
type Repository interface {
	// ListUnsorted returns collectibles that have no category yet.
	ListUnsorted(ctx context.Context) ([]model.Collectible, error)
	ListByYear(ctx context.Context, year int) ([]model.Collectible, error)

	// ListCategories returns the distinct non-empty category names.
	ListCategories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]model.Collectible, error)

	Get(ctx context.Context, collectibleID string) (*model.Collectible, error)
}
