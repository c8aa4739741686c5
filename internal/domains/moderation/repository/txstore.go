package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
)

// txStore issues decision statements against a single transaction.
type txStore struct {
	tx pgx.Tx
}

// =====================================================
// ENTRY ACCESS
// =====================================================

const guestEntryColumns = `
	id, year, COALESCE(guest_id, 0), COALESCE(url, ''), guest_name,
	COALESCE(blurb, ''), COALESCE(biography, ''),
	COALESCE(guest_type, ''), COALESCE(guest_category, ''),
	COALESCE(accolades_1, ''), COALESCE(accolades_2, ''),
	version, user_id, COALESCE(moderator_id, 0),
	state, approved, rejected, deleted, timestamp
`

func scanGuestEntry(row pgx.Row) (*model.GuestEntry, error) {
	e := &model.GuestEntry{}
	err := row.Scan(
		&e.ID, &e.Year, &e.GuestID, &e.URL, &e.GuestName,
		&e.Blurb, &e.Biography,
		&e.GuestType, &e.GuestCategory,
		&e.Accolades1, &e.Accolades2,
		&e.Version, &e.UserID, &e.ModeratorID,
		&e.State, &e.Approved, &e.Rejected, &e.Deleted, &e.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get guest entry: %w", err)
	}
	return e, nil
}

func (t *txStore) GetPendingGuestEntry(ctx context.Context, id int64) (*model.GuestEntry, error) {
	query := `SELECT ` + guestEntryColumns + ` FROM moderation_yearly_guests WHERE id = $1 AND state = 1`
	return scanGuestEntry(t.tx.QueryRow(ctx, query, id))
}

func (t *txStore) GetGuestEntry(ctx context.Context, id int64) (*model.GuestEntry, error) {
	query := `SELECT ` + guestEntryColumns + ` FROM moderation_yearly_guests WHERE id = $1`
	return scanGuestEntry(t.tx.QueryRow(ctx, query, id))
}

const collectibleEntryColumns = `
	id, collectible_id, COALESCE(year, 0), COALESCE(guest_id, 0),
	COALESCE(guest_name, ''), COALESCE(name, ''), COALESCE(category, ''),
	COALESCE(notes_1, ''), COALESCE(notes_2, ''), COALESCE(filename, ''),
	version, user_id, COALESCE(moderator_id, 0),
	state, approved, rejected, deleted, timestamp
`

func scanCollectibleEntry(row pgx.Row) (*model.CollectibleEntry, error) {
	e := &model.CollectibleEntry{}
	err := row.Scan(
		&e.ID, &e.CollectibleID, &e.Year, &e.GuestID,
		&e.GuestName, &e.Name, &e.Category,
		&e.Notes1, &e.Notes2, &e.Filename,
		&e.Version, &e.UserID, &e.ModeratorID,
		&e.State, &e.Approved, &e.Rejected, &e.Deleted, &e.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get collectible entry: %w", err)
	}
	return e, nil
}

func (t *txStore) GetPendingCollectibleEntry(ctx context.Context, id int64) (*model.CollectibleEntry, error) {
	query := `SELECT ` + collectibleEntryColumns + ` FROM moderation_collectibles WHERE id = $1 AND state = 1`
	return scanCollectibleEntry(t.tx.QueryRow(ctx, query, id))
}

func (t *txStore) GetCollectibleEntry(ctx context.Context, id int64) (*model.CollectibleEntry, error) {
	query := `SELECT ` + collectibleEntryColumns + ` FROM moderation_collectibles WHERE id = $1`
	return scanCollectibleEntry(t.tx.QueryRow(ctx, query, id))
}

// =====================================================
// IDENTITY RESOLUTION
// =====================================================

func (t *txStore) FindGuestByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT guest_id FROM guests WHERE guest_name = $1`, name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find guest by name: %w", err)
	}
	return id, true, nil
}

func (t *txStore) CreateGuest(ctx context.Context, name string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO guests (guest_name) VALUES ($1) RETURNING guest_id`, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create guest: %w", err)
	}
	return id, nil
}

func (t *txStore) SetGuestEntryIdentity(ctx context.Context, entryID, guestID int64, guestName string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE moderation_yearly_guests SET guest_id = $1, guest_name = $2 WHERE id = $3`,
		guestID, guestName, entryID,
	)
	if err != nil {
		return fmt.Errorf("failed to set guest entry identity: %w", err)
	}
	return nil
}

func (t *txStore) SetCollectibleEntryIdentity(ctx context.Context, entryID, guestID int64, guestName string) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE moderation_collectibles SET guest_id = $1, guest_name = $2 WHERE id = $3`,
		guestID, guestName, entryID,
	)
	if err != nil {
		return fmt.Errorf("failed to set collectible entry identity: %w", err)
	}
	return nil
}

// =====================================================
// TERMINAL TRANSITIONS
// =====================================================

func (t *txStore) MarkGuestEntryApproved(ctx context.Context, entryID, moderatorID int64, guestName string) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE moderation_yearly_guests
		SET state = 2, approved = 1, moderator_id = $1, guest_name = $2
		WHERE id = $3 AND state = 1
	`, moderatorID, guestName, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to approve guest entry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *txStore) MarkGuestEntryRejected(ctx context.Context, entryID, moderatorID int64) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE moderation_yearly_guests
		SET state = 0, rejected = 1, moderator_id = $1
		WHERE id = $2 AND state = 1
	`, moderatorID, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to reject guest entry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *txStore) MarkCollectibleEntryApproved(ctx context.Context, entryID, moderatorID int64, guestName string) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE moderation_collectibles
		SET state = 2, approved = 1, moderator_id = $1, guest_name = $2
		WHERE id = $3 AND state = 1
	`, moderatorID, guestName, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to approve collectible entry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *txStore) MarkCollectibleEntryRejected(ctx context.Context, entryID, moderatorID int64) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE moderation_collectibles
		SET state = 0, rejected = 1, moderator_id = $1
		WHERE id = $2 AND state = 1
	`, moderatorID, entryID)
	if err != nil {
		return false, fmt.Errorf("failed to reject collectible entry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// =====================================================
// CANONICAL YEARLY GUESTS
// =====================================================

func (t *txStore) UpsertYearlyGuest(ctx context.Context, rec guestmodel.YearlyGuest) error {
	// modified stays 0 on first insert and flips to 1 on update, so the
	// directory can distinguish original from revised records. The
	// conflict branch also refreshes guest_name: the reconciler always
	// passes the normalized name, and this is the only writer of the
	// display-name copy on the row.
	query := `
		INSERT INTO yearly_guests (
			guest_id, year, url, guest_name, blurb, biography,
			guest_type, guest_category, accolades_1, accolades_2, modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0)
		ON CONFLICT (guest_id, year) DO UPDATE SET
			url = EXCLUDED.url,
			guest_name = EXCLUDED.guest_name,
			blurb = EXCLUDED.blurb,
			biography = EXCLUDED.biography,
			guest_type = EXCLUDED.guest_type,
			guest_category = EXCLUDED.guest_category,
			accolades_1 = EXCLUDED.accolades_1,
			accolades_2 = EXCLUDED.accolades_2,
			modified = 1
	`

	_, err := t.tx.Exec(ctx, query,
		rec.GuestID, rec.Year, rec.URL, rec.GuestName, rec.Blurb, rec.Biography,
		rec.GuestType, rec.GuestCategory, rec.Accolades1, rec.Accolades2,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert yearly guest: %w", err)
	}
	return nil
}

func (t *txStore) BackupYearlyGuest(ctx context.Context, guestID int64, year int) error {
	query := `
		INSERT INTO deleted_yearly_guests (
			guest_id, year, url, guest_name, blurb, biography,
			guest_type, guest_category, accolades_1, accolades_2, modified
		)
		SELECT guest_id, year, url, guest_name, blurb, biography,
			guest_type, guest_category, accolades_1, accolades_2, modified
		FROM yearly_guests
		WHERE guest_id = $1 AND year = $2
	`

	tag, err := t.tx.Exec(ctx, query, guestID, year)
	if err != nil {
		return fmt.Errorf("failed to back up yearly guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return guestmodel.ErrGuestNotFound
	}
	return nil
}

func (t *txStore) DeleteYearlyGuest(ctx context.Context, guestID int64, year int) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM yearly_guests WHERE guest_id = $1 AND year = $2`,
		guestID, year,
	)
	if err != nil {
		return fmt.Errorf("failed to delete yearly guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return guestmodel.ErrGuestNotFound
	}
	return nil
}

// =====================================================
// CANONICAL COLLECTIBLES
// =====================================================

func (t *txStore) UpsertCollectible(ctx context.Context, rec collectiblemodel.Collectible) error {
	query := `
		INSERT INTO collectibles (
			collectible_id, year, guest_id, guest_name, name, category,
			notes_1, notes_2, filename, modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
		ON CONFLICT (collectible_id) DO UPDATE SET
			year = EXCLUDED.year,
			guest_id = EXCLUDED.guest_id,
			guest_name = EXCLUDED.guest_name,
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			notes_1 = EXCLUDED.notes_1,
			notes_2 = EXCLUDED.notes_2,
			filename = EXCLUDED.filename,
			modified = 1
	`

	_, err := t.tx.Exec(ctx, query,
		rec.CollectibleID, rec.Year, rec.GuestID, rec.GuestName, rec.Name,
		rec.Category, rec.Notes1, rec.Notes2, rec.Filename,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert collectible: %w", err)
	}
	return nil
}

func (t *txStore) BackupCollectible(ctx context.Context, collectibleID string) error {
	query := `
		INSERT INTO deleted_collectibles (
			collectible_id, year, guest_id, guest_name, name, category,
			notes_1, notes_2, filename, modified
		)
		SELECT collectible_id, year, guest_id, guest_name, name, category,
			notes_1, notes_2, filename, modified
		FROM collectibles
		WHERE collectible_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, collectibleID)
	if err != nil {
		return fmt.Errorf("failed to back up collectible: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return collectiblemodel.ErrCollectibleNotFound
	}
	return nil
}

func (t *txStore) DeleteCollectible(ctx context.Context, collectibleID string) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM collectibles WHERE collectible_id = $1`, collectibleID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete collectible: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return collectiblemodel.ErrCollectibleNotFound
	}
	return nil
}

// =====================================================
// GUEST IDENTITY CLEANUP
// =====================================================

func (t *txStore) CountGuestReferences(ctx context.Context, guestID int64) (int, int, error) {
	var yearly, collectibles int
	err := t.tx.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM yearly_guests WHERE guest_id = $1),
			(SELECT COUNT(*) FROM collectibles WHERE guest_id = $1)
	`, guestID).Scan(&yearly, &collectibles)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count guest references: %w", err)
	}
	return yearly, collectibles, nil
}

func (t *txStore) BackupGuest(ctx context.Context, guestID int64) error {
	query := `
		INSERT INTO deleted_guests (guest_id, guest_name)
		SELECT guest_id, guest_name FROM guests WHERE guest_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, guestID)
	if err != nil {
		return fmt.Errorf("failed to back up guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return guestmodel.ErrGuestNotFound
	}
	return nil
}

func (t *txStore) DeleteGuest(ctx context.Context, guestID int64) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM guests WHERE guest_id = $1`, guestID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return guestmodel.ErrGuestNotFound
	}
	return nil
}
