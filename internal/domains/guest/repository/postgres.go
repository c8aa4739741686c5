package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/infrastructure/database"
)

// vendorCategory partitions yearly records into the guest directory and
// the vendor directory.
const vendorCategory = "vendor"

const yearlyColumns = `
	guest_id, year, COALESCE(url, ''), guest_name,
	COALESCE(blurb, ''), COALESCE(biography, ''),
	COALESCE(guest_type, ''), COALESCE(guest_category, ''),
	COALESCE(accolades_1, ''), COALESCE(accolades_2, ''), modified
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(db *database.PostgresDB) Repository {
	return &postgresRepository{pool: db.Pool}
}

func scanYearly(row pgx.Row) (*model.YearlyGuest, error) {
	rec := &model.YearlyGuest{}
	err := row.Scan(
		&rec.GuestID, &rec.Year, &rec.URL, &rec.GuestName,
		&rec.Blurb, &rec.Biography,
		&rec.GuestType, &rec.GuestCategory,
		&rec.Accolades1, &rec.Accolades2, &rec.Modified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to scan yearly guest: %w", err)
	}
	return rec, nil
}

func (r *postgresRepository) listYearly(ctx context.Context, query string, args ...any) ([]model.YearlyGuest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list yearly guests: %w", err)
	}
	defer rows.Close()

	var out []model.YearlyGuest
	for rows.Next() {
		rec, err := scanYearly(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListYearly(ctx context.Context, year int) ([]model.YearlyGuest, error) {
	if year != 0 {
		return r.listYearly(ctx, `
			SELECT `+yearlyColumns+`
			FROM yearly_guests
			WHERE year = $1 AND COALESCE(guest_category, '') <> $2
			ORDER BY guest_name
		`, year, vendorCategory)
	}
	return r.listYearly(ctx, `
		SELECT `+yearlyColumns+`
		FROM yearly_guests
		WHERE COALESCE(guest_category, '') <> $1
		ORDER BY year DESC, guest_name
	`, vendorCategory)
}

func (r *postgresRepository) GetYearly(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error) {
	return scanYearly(r.pool.QueryRow(ctx, `
		SELECT `+yearlyColumns+`
		FROM yearly_guests
		WHERE guest_id = $1 AND year = $2
	`, guestID, year))
}

func (r *postgresRepository) ListYearBlurbs(ctx context.Context, guestID int64) ([]model.YearBlurb, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT year, COALESCE(blurb, ''), COALESCE(biography, '')
		FROM yearly_guests
		WHERE guest_id = $1
		ORDER BY year DESC
	`, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list year blurbs: %w", err)
	}
	defer rows.Close()

	var out []model.YearBlurb
	for rows.Next() {
		var b model.YearBlurb
		if err := rows.Scan(&b.Year, &b.Blurb, &b.Biography); err != nil {
			return nil, fmt.Errorf("failed to scan year blurb: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListYearlyByGuest(ctx context.Context, guestID int64) ([]model.YearlyGuest, error) {
	return r.listYearly(ctx, `
		SELECT `+yearlyColumns+`
		FROM yearly_guests
		WHERE guest_id = $1
		ORDER BY year DESC
	`, guestID)
}

func (r *postgresRepository) ListCollectiblesByGuest(ctx context.Context, guestID int64) ([]model.ProfileCollectible, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			collectible_id, COALESCE(year, 0), COALESCE(guest_id, 0),
			COALESCE(guest_name, ''), COALESCE(name, ''), COALESCE(category, ''),
			COALESCE(notes_1, ''), COALESCE(notes_2, ''), COALESCE(filename, ''), modified
		FROM collectibles
		WHERE guest_id = $1
		ORDER BY year DESC, name
	`, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest collectibles: %w", err)
	}
	defer rows.Close()

	var out []model.ProfileCollectible
	for rows.Next() {
		var c model.ProfileCollectible
		if err := rows.Scan(
			&c.CollectibleID, &c.Year, &c.GuestID,
			&c.GuestName, &c.Name, &c.Category,
			&c.Notes1, &c.Notes2, &c.Filename, &c.Modified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan guest collectible: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) SearchGuests(ctx context.Context, query string, limit, offset int) ([]model.Guest, int, error) {
	pattern := "%" + query + "%"

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM guests WHERE guest_name ILIKE $1`, pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count guest search: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT guest_id, guest_name
		FROM guests
		WHERE guest_name ILIKE $1
		ORDER BY guest_name
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search guests: %w", err)
	}
	defer rows.Close()

	var out []model.Guest
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.GuestID, &g.GuestName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan guest: %w", err)
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func (r *postgresRepository) ListAccolades(ctx context.Context) ([]model.AccoladeEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT guest_id, guest_name, year,
			COALESCE(accolades_1, ''), COALESCE(accolades_2, '')
		FROM yearly_guests
		WHERE COALESCE(accolades_1, '') <> '' OR COALESCE(accolades_2, '') <> ''
		ORDER BY year DESC, guest_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accolades: %w", err)
	}
	defer rows.Close()

	var out []model.AccoladeEntry
	for rows.Next() {
		var a model.AccoladeEntry
		if err := rows.Scan(&a.GuestID, &a.GuestName, &a.Year, &a.Accolades1, &a.Accolades2); err != nil {
			return nil, fmt.Errorf("failed to scan accolade entry: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListVendors(ctx context.Context, year int) ([]model.YearlyGuest, error) {
	if year != 0 {
		return r.listYearly(ctx, `
			SELECT `+yearlyColumns+`
			FROM yearly_guests
			WHERE year = $1 AND guest_category = $2
			ORDER BY guest_name
		`, year, vendorCategory)
	}
	return r.listYearly(ctx, `
		SELECT `+yearlyColumns+`
		FROM yearly_guests
		WHERE guest_category = $1
		ORDER BY year DESC, guest_name
	`, vendorCategory)
}

func (r *postgresRepository) GetVendor(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error) {
	return scanYearly(r.pool.QueryRow(ctx, `
		SELECT `+yearlyColumns+`
		FROM yearly_guests
		WHERE guest_id = $1 AND year = $2 AND guest_category = $3
	`, guestID, year, vendorCategory))
}

func (r *postgresRepository) listYears(ctx context.Context, query string, args ...any) ([]int, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		out = append(out, year)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListYears(ctx context.Context) ([]int, error) {
	return r.listYears(ctx, `
		SELECT DISTINCT year FROM yearly_guests
		WHERE COALESCE(guest_category, '') <> $1
		ORDER BY year DESC
	`, vendorCategory)
}

func (r *postgresRepository) ListVendorYears(ctx context.Context) ([]int, error) {
	return r.listYears(ctx, `
		SELECT DISTINCT year FROM yearly_guests
		WHERE guest_category = $1
		ORDER BY year DESC
	`, vendorCategory)
}
