package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestdex-backend/internal/domains/collectible/model"
	"guestdex-backend/internal/infrastructure/database"
)

const collectibleColumns = `
	collectible_id, COALESCE(year, 0), COALESCE(guest_id, 0),
	COALESCE(guest_name, ''), COALESCE(name, ''), COALESCE(category, ''),
	COALESCE(notes_1, ''), COALESCE(notes_2, ''), COALESCE(filename, ''), modified
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(db *database.PostgresDB) Repository {
	return &postgresRepository{pool: db.Pool}
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]model.Collectible, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list collectibles: %w", err)
	}
	defer rows.Close()

	var out []model.Collectible
	for rows.Next() {
		var c model.Collectible
		if err := rows.Scan(
			&c.CollectibleID, &c.Year, &c.GuestID,
			&c.GuestName, &c.Name, &c.Category,
			&c.Notes1, &c.Notes2, &c.Filename, &c.Modified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collectible: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListUnsorted(ctx context.Context) ([]model.Collectible, error) {
	return r.list(ctx, `
		SELECT `+collectibleColumns+`
		FROM collectibles
		WHERE COALESCE(category, '') = ''
		ORDER BY guest_name, name
	`)
}

func (r *postgresRepository) ListByYear(ctx context.Context, year int) ([]model.Collectible, error) {
	return r.list(ctx, `
		SELECT `+collectibleColumns+`
		FROM collectibles
		WHERE year = $1
		ORDER BY guest_name, name
	`, year)
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT category
		FROM collectibles
		WHERE COALESCE(category, '') <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, category)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListByCategory(ctx context.Context, category string) ([]model.Collectible, error) {
	return r.list(ctx, `
		SELECT `+collectibleColumns+`
		FROM collectibles
		WHERE category ILIKE $1
		ORDER BY guest_name, name
	`, category)
}

func (r *postgresRepository) Get(ctx context.Context, collectibleID string) (*model.Collectible, error) {
	c := &model.Collectible{}
	err := r.pool.QueryRow(ctx, `
		SELECT `+collectibleColumns+`
		FROM collectibles
		WHERE collectible_id = $1
	`, collectibleID).Scan(
		&c.CollectibleID, &c.Year, &c.GuestID,
		&c.GuestName, &c.Name, &c.Category,
		&c.Notes1, &c.Notes2, &c.Filename, &c.Modified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCollectibleNotFound
		}
		return nil, fmt.Errorf("failed to get collectible: %w", err)
	}
	return c, nil
}
