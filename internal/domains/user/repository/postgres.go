package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestdex-backend/internal/domains/user/model"
	"guestdex-backend/internal/infrastructure/database"
)

const userColumns = `
	id, user_name, password_hash, COALESCE(full_name, ''), role, status,
	COALESCE(modified_by, 0), last_modified
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(db *database.PostgresDB) Repository {
	return &postgresRepository{pool: db.Pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.UserName, &u.PasswordHash, &u.FullName, &u.Role, &u.Status,
		&u.ModifiedBy, &u.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE user_name = $1
	`, userName))
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

func (r *postgresRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY user_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_name, password_hash, full_name, role, status, modified_by)
		VALUES ($1, $2, $3, $4, 1, $5)
		RETURNING id, last_modified
	`, u.UserName, u.PasswordHash, u.FullName, u.Role, nullableID(u.ModifiedBy)).Scan(&u.ID, &u.LastModified)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.Status = model.StatusActive
	return nil
}

func (r *postgresRepository) Reactivate(ctx context.Context, id int64, passwordHash, role string, modifiedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET status = 1, password_hash = $1, role = $2, modified_by = $3, last_modified = now()
		WHERE id = $4
	`, passwordHash, role, modifiedBy, id)
	if err != nil {
		return fmt.Errorf("failed to reactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Deactivate(ctx context.Context, id, modifiedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET status = 0, modified_by = $1, last_modified = now()
		WHERE id = $2
	`, modifiedBy, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, modifiedBy int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, modified_by = $2, last_modified = now()
		WHERE id = $3
	`, passwordHash, modifiedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
