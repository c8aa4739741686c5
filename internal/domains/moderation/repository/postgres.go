package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/infrastructure/database"
)

// querier is the subset of pgx shared by pools and transactions, so the
// same statement helpers serve both paths.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStore struct {
	db   *database.PostgresDB
	pool *pgxpool.Pool
}

func NewPostgresStore(db *database.PostgresDB) Store {
	return &postgresStore{db: db, pool: db.Pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// =====================================================
// SUBMISSION PATH
// =====================================================

func (s *postgresStore) MaxPendingGuestVersion(ctx context.Context, guestName string, year int) (int, error) {
	query := `
		SELECT COALESCE(MAX(version), 0)
		FROM moderation_yearly_guests
		WHERE guest_name = $1 AND year = $2 AND state = 1
	`

	var version int
	if err := s.pool.QueryRow(ctx, query, guestName, year).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read max pending version: %w", err)
	}
	return version, nil
}

func (s *postgresStore) InsertGuestEntry(ctx context.Context, e *model.GuestEntry) error {
	query := `
		INSERT INTO moderation_yearly_guests (
			year, guest_id, url, guest_name, blurb, biography,
			guest_type, guest_category, accolades_1, accolades_2,
			version, user_id, state, deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, timestamp
	`

	err := s.pool.QueryRow(ctx, query,
		e.Year,
		nullableID(e.GuestID),
		e.URL,
		e.GuestName,
		e.Blurb,
		e.Biography,
		e.GuestType,
		e.GuestCategory,
		e.Accolades1,
		e.Accolades2,
		e.Version,
		e.UserID,
		model.StatePending,
		e.Deleted,
	).Scan(&e.ID, &e.Timestamp)

	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrVersionConflict
		}
		return fmt.Errorf("failed to insert guest entry: %w", err)
	}
	e.State = model.StatePending
	return nil
}

func (s *postgresStore) MaxPendingCollectibleVersion(ctx context.Context, collectibleID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(version), 0)
		FROM moderation_collectibles
		WHERE collectible_id = $1 AND state = 1
	`

	var version int
	if err := s.pool.QueryRow(ctx, query, collectibleID).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read max pending version: %w", err)
	}
	return version, nil
}

func (s *postgresStore) InsertCollectibleEntry(ctx context.Context, e *model.CollectibleEntry) error {
	query := `
		INSERT INTO moderation_collectibles (
			collectible_id, year, guest_id, guest_name, name, category,
			notes_1, notes_2, filename, version, user_id, state, deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, timestamp
	`

	err := s.pool.QueryRow(ctx, query,
		e.CollectibleID,
		e.Year,
		nullableID(e.GuestID),
		e.GuestName,
		e.Name,
		e.Category,
		e.Notes1,
		e.Notes2,
		e.Filename,
		e.Version,
		e.UserID,
		model.StatePending,
		e.Deleted,
	).Scan(&e.ID, &e.Timestamp)

	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrVersionConflict
		}
		return fmt.Errorf("failed to insert collectible entry: %w", err)
	}
	e.State = model.StatePending
	return nil
}

func (s *postgresStore) GetYearlyGuest(ctx context.Context, guestID int64, year int) (*guestmodel.YearlyGuest, error) {
	return getYearlyGuest(ctx, s.pool, guestID, year)
}

func (s *postgresStore) GetCollectible(ctx context.Context, collectibleID string) (*collectiblemodel.Collectible, error) {
	return getCollectible(ctx, s.pool, collectibleID)
}

// =====================================================
// QUEUE PATH
// =====================================================

func (s *postgresStore) ListPendingGuestEntries(ctx context.Context) ([]model.PendingGuestEntry, error) {
	query := `
		SELECT
			m.id, m.year, m.guest_name,
			COALESCE(m.url, ''), COALESCE(m.blurb, ''), COALESCE(m.biography, ''),
			COALESCE(m.accolades_1, ''), COALESCE(m.accolades_2, ''),
			COALESCE(m.guest_type, ''), m.version, m.user_id, m.timestamp,
			COALESCE(u.user_name, ''), m.deleted
		FROM moderation_yearly_guests m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.state = 1
		ORDER BY m.guest_name, m.year, m.version DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending guest entries: %w", err)
	}
	defer rows.Close()

	var entries []model.PendingGuestEntry
	for rows.Next() {
		var e model.PendingGuestEntry
		if err := rows.Scan(
			&e.ID, &e.Year, &e.GuestName,
			&e.URL, &e.Blurb, &e.Biography,
			&e.Accolades1, &e.Accolades2,
			&e.GuestType, &e.Version, &e.UserID, &e.Timestamp,
			&e.UserName, &e.Deleted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending guest entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *postgresStore) ListPendingCollectibleEntries(ctx context.Context) ([]model.PendingCollectibleEntry, error) {
	query := `
		SELECT
			m.id, m.collectible_id, COALESCE(m.year, 0), COALESCE(m.guest_id, 0),
			COALESCE(m.guest_name, ''), COALESCE(m.name, ''), COALESCE(m.category, ''),
			COALESCE(m.notes_1, ''), COALESCE(m.notes_2, ''), COALESCE(m.filename, ''),
			m.version, m.user_id, m.timestamp, COALESCE(u.user_name, ''), m.deleted
		FROM moderation_collectibles m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.state = 1
		ORDER BY m.guest_name, m.name, m.year, m.version DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending collectible entries: %w", err)
	}
	defer rows.Close()

	var entries []model.PendingCollectibleEntry
	for rows.Next() {
		var e model.PendingCollectibleEntry
		if err := rows.Scan(
			&e.ID, &e.CollectibleID, &e.Year, &e.GuestID,
			&e.GuestName, &e.Name, &e.Category,
			&e.Notes1, &e.Notes2, &e.Filename,
			&e.Version, &e.UserID, &e.Timestamp, &e.UserName, &e.Deleted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pending collectible entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *postgresStore) GuestIDsByName(ctx context.Context, names []string) (map[string]int64, error) {
	if len(names) == 0 {
		return map[string]int64{}, nil
	}

	query := `SELECT guest_name, guest_id FROM guests WHERE guest_name = ANY($1)`

	rows, err := s.pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guest ids: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64, len(names))
	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("failed to scan guest id: %w", err)
		}
		result[name] = id
	}
	return result, rows.Err()
}

// =====================================================
// SUBMISSION HISTORY
// =====================================================

func (s *postgresStore) ListUserGuestSubmissions(ctx context.Context, userID int64, limit, offset int) ([]model.GuestSubmissionHistoryItem, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM moderation_yearly_guests WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count guest submissions: %w", err)
	}

	query := `
		SELECT
			id, year, guest_name, state, version, timestamp,
			COALESCE(blurb, ''), COALESCE(biography, ''),
			COALESCE(guest_type, ''), COALESCE(accolades_1, ''), COALESCE(accolades_2, '')
		FROM moderation_yearly_guests
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list guest submissions: %w", err)
	}
	defer rows.Close()

	var items []model.GuestSubmissionHistoryItem
	for rows.Next() {
		var it model.GuestSubmissionHistoryItem
		if err := rows.Scan(
			&it.ID, &it.Year, &it.GuestName, &it.State, &it.Version, &it.Timestamp,
			&it.Blurb, &it.Biography,
			&it.GuestType, &it.Accolades1, &it.Accolades2,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan guest submission: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (s *postgresStore) ListUserCollectibleSubmissions(ctx context.Context, userID int64, limit, offset int) ([]model.CollectibleSubmissionHistoryItem, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM moderation_collectibles WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count collectible submissions: %w", err)
	}

	query := `
		SELECT
			id, collectible_id, COALESCE(year, 0), COALESCE(guest_name, ''),
			COALESCE(name, ''), COALESCE(category, ''), COALESCE(notes_1, ''),
			COALESCE(notes_2, ''), COALESCE(filename, ''), state, timestamp
		FROM moderation_collectibles
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list collectible submissions: %w", err)
	}
	defer rows.Close()

	var items []model.CollectibleSubmissionHistoryItem
	for rows.Next() {
		var it model.CollectibleSubmissionHistoryItem
		if err := rows.Scan(
			&it.ID, &it.CollectibleID, &it.Year, &it.GuestName,
			&it.Name, &it.Category, &it.Notes1,
			&it.Notes2, &it.Filename, &it.State, &it.Timestamp,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan collectible submission: %w", err)
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// =====================================================
// DECISION PATH
// =====================================================

func (s *postgresStore) InTx(ctx context.Context, fn func(TxStore) error) error {
	return s.db.ExecuteInTransaction(ctx, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx})
	})
}

// nullableID maps the zero id to NULL so unresolved guests stay NULL in
// storage.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// =====================================================
// SHARED CANONICAL READS
// =====================================================

func getYearlyGuest(ctx context.Context, q querier, guestID int64, year int) (*guestmodel.YearlyGuest, error) {
	query := `
		SELECT
			guest_id, year, COALESCE(url, ''), guest_name,
			COALESCE(blurb, ''), COALESCE(biography, ''),
			COALESCE(guest_type, ''), COALESCE(guest_category, ''),
			COALESCE(accolades_1, ''), COALESCE(accolades_2, ''), modified
		FROM yearly_guests
		WHERE guest_id = $1 AND year = $2
	`

	rec := &guestmodel.YearlyGuest{}
	err := q.QueryRow(ctx, query, guestID, year).Scan(
		&rec.GuestID, &rec.Year, &rec.URL, &rec.GuestName,
		&rec.Blurb, &rec.Biography,
		&rec.GuestType, &rec.GuestCategory,
		&rec.Accolades1, &rec.Accolades2, &rec.Modified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, guestmodel.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get yearly guest: %w", err)
	}
	return rec, nil
}

func getCollectible(ctx context.Context, q querier, collectibleID string) (*collectiblemodel.Collectible, error) {
	query := `
		SELECT
			collectible_id, COALESCE(year, 0), COALESCE(guest_id, 0),
			COALESCE(guest_name, ''), COALESCE(name, ''), COALESCE(category, ''),
			COALESCE(notes_1, ''), COALESCE(notes_2, ''), COALESCE(filename, ''), modified
		FROM collectibles
		WHERE collectible_id = $1
	`

	rec := &collectiblemodel.Collectible{}
	err := q.QueryRow(ctx, query, collectibleID).Scan(
		&rec.CollectibleID, &rec.Year, &rec.GuestID,
		&rec.GuestName, &rec.Name, &rec.Category,
		&rec.Notes1, &rec.Notes2, &rec.Filename, &rec.Modified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, collectiblemodel.ErrCollectibleNotFound
		}
		return nil, fmt.Errorf("failed to get collectible: %w", err)
	}
	return rec, nil
}
