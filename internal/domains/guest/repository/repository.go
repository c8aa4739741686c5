package repository

import (
	"context"

	"guestdex-backend/internal/domains/guest/model"
)

// Repository is the read side of the guest directory. All projections
// return stored (still encoded) free text; the service decodes.
type Repository interface {
	// ListYearly returns yearly guest records, vendors excluded. A zero
	// year means all years.
	ListYearly(ctx context.Context, year int) ([]model.YearlyGuest, error)
	GetYearly(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error)

	// ListYearBlurbs returns the per-year blurb projection for one guest.
	ListYearBlurbs(ctx context.Context, guestID int64) ([]model.YearBlurb, error)

	// Profile pieces.
	ListYearlyByGuest(ctx context.Context, guestID int64) ([]model.YearlyGuest, error)
	ListCollectiblesByGuest(ctx context.Context, guestID int64) ([]model.ProfileCollectible, error)

	// SearchGuests matches canonical names case-insensitively.
	SearchGuests(ctx context.Context, query string, limit, offset int) ([]model.Guest, int, error)

	// ListAccolades returns yearly records carrying at least one accolade.
	ListAccolades(ctx context.Context) ([]model.AccoladeEntry, error)

	// Vendor views.
	ListVendors(ctx context.Context, year int) ([]model.YearlyGuest, error)
	GetVendor(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error)

	ListYears(ctx context.Context) ([]int, error)
	ListVendorYears(ctx context.Context) ([]int, error)
}
