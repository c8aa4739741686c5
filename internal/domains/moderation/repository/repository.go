package repository

import (
	"context"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
)

// Store is the moderation data-access contract. Submissions and queue
// reads run as single statements; decisions run their statement
// sequence through InTx so that canonical storage only ever reflects
// the pre-decision or fully post-decision state.
type Store interface {
	// ---- submission path ----

	// MaxPendingGuestVersion returns the highest version among active
	// (state=PENDING) entries for the subject key, or 0.
	MaxPendingGuestVersion(ctx context.Context, guestName string, year int) (int, error)

	// InsertGuestEntry appends a new entry and sets e.ID. A duplicate
	// (subject key, version) among active entries returns
	// model.ErrVersionConflict.
	InsertGuestEntry(ctx context.Context, e *model.GuestEntry) error

	MaxPendingCollectibleVersion(ctx context.Context, collectibleID string) (int, error)
	InsertCollectibleEntry(ctx context.Context, e *model.CollectibleEntry) error

	// Canonical lookups used to validate update/delete submissions.
	GetYearlyGuest(ctx context.Context, guestID int64, year int) (*guestmodel.YearlyGuest, error)
	GetCollectible(ctx context.Context, collectibleID string) (*collectiblemodel.Collectible, error)

	// ---- queue path ----

	ListPendingGuestEntries(ctx context.Context) ([]model.PendingGuestEntry, error)
	ListPendingCollectibleEntries(ctx context.Context) ([]model.PendingCollectibleEntry, error)

	// GuestIDsByName resolves canonical guest ids for the given display
	// names; missing names are absent from the map.
	GuestIDsByName(ctx context.Context, names []string) (map[string]int64, error)

	// ---- submission history ----

	ListUserGuestSubmissions(ctx context.Context, userID int64, limit, offset int) ([]model.GuestSubmissionHistoryItem, int, error)
	ListUserCollectibleSubmissions(ctx context.Context, userID int64, limit, offset int) ([]model.CollectibleSubmissionHistoryItem, int, error)

	// ---- decision path ----

	// InTx runs fn against a transaction-scoped store. fn returning an
	// error rolls back every statement it issued.
	InTx(ctx context.Context, fn func(TxStore) error) error
}

// TxStore groups the statements a decision issues inside one
// transaction.
type TxStore interface {
	// Pending entry access. GetPendingGuestEntry returns
	// model.ErrEntryNotFound unless the entry exists with state=PENDING;
	// GetGuestEntry returns it in any state.
	GetPendingGuestEntry(ctx context.Context, id int64) (*model.GuestEntry, error)
	GetGuestEntry(ctx context.Context, id int64) (*model.GuestEntry, error)
	GetPendingCollectibleEntry(ctx context.Context, id int64) (*model.CollectibleEntry, error)
	GetCollectibleEntry(ctx context.Context, id int64) (*model.CollectibleEntry, error)

	// Identity resolution.
	FindGuestByName(ctx context.Context, name string) (int64, bool, error)
	CreateGuest(ctx context.Context, name string) (int64, error)

	// Audit write-back of the resolved identity onto the entry.
	SetGuestEntryIdentity(ctx context.Context, entryID, guestID int64, guestName string) error
	SetCollectibleEntryIdentity(ctx context.Context, entryID, guestID int64, guestName string) error

	// Conditional terminal transitions. The updates are guarded with
	// state=PENDING; false means the entry was decided concurrently.
	MarkGuestEntryApproved(ctx context.Context, entryID, moderatorID int64, guestName string) (bool, error)
	MarkGuestEntryRejected(ctx context.Context, entryID, moderatorID int64) (bool, error)
	MarkCollectibleEntryApproved(ctx context.Context, entryID, moderatorID int64, guestName string) (bool, error)
	MarkCollectibleEntryRejected(ctx context.Context, entryID, moderatorID int64) (bool, error)

	// Canonical yearly-guest operations.
	UpsertYearlyGuest(ctx context.Context, rec guestmodel.YearlyGuest) error
	BackupYearlyGuest(ctx context.Context, guestID int64, year int) error
	DeleteYearlyGuest(ctx context.Context, guestID int64, year int) error

	// Canonical collectible operations.
	UpsertCollectible(ctx context.Context, rec collectiblemodel.Collectible) error
	BackupCollectible(ctx context.Context, collectibleID string) error
	DeleteCollectible(ctx context.Context, collectibleID string) error

	// Guest identity cleanup.
	CountGuestReferences(ctx context.Context, guestID int64) (yearly int, collectibles int, err error)
	BackupGuest(ctx context.Context, guestID int64) error
	DeleteGuest(ctx context.Context, guestID int64) error
}
