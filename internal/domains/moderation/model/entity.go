package model

import (
	"time"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
)

// Moderation entry states. PENDING entries transition at most once, to
// either terminal state.
const (
	StateRejected = 0
	StatePending  = 1
	StateApproved = 2
)

// GuestEntry is a pending (or decided) revision of a yearly guest
// record. The subject key is (guest_name, year); version is scoped to
// active entries for that key. A zero GuestID means the guest does not
// exist canonically yet. Blurb and Biography hold transport-encoded
// text.
type GuestEntry struct {
	ID            int64     `json:"id"`
	Year          int       `json:"year"`
	GuestID       int64     `json:"guest_id"`
	URL           string    `json:"url,omitempty"`
	GuestName     string    `json:"guest_name"`
	Blurb         string    `json:"blurb,omitempty"`
	Biography     string    `json:"biography,omitempty"`
	GuestType     string    `json:"guest_type,omitempty"`
	GuestCategory string    `json:"guest_category,omitempty"`
	Accolades1    string    `json:"accolades_1,omitempty"`
	Accolades2    string    `json:"accolades_2,omitempty"`
	Version       int       `json:"version"`
	UserID        int64     `json:"user_id"`
	ModeratorID   int64     `json:"moderator_id,omitempty"`
	State         int       `json:"state"`
	Approved      int       `json:"approved"`
	Rejected      int       `json:"rejected"`
	Deleted       int       `json:"deleted"`
	Timestamp     time.Time `json:"timestamp"`
}

// CollectibleEntry is a pending (or decided) revision of a collectible.
// The subject key is the opaque collectible_id.
type CollectibleEntry struct {
	ID            int64     `json:"id"`
	CollectibleID string    `json:"collectible_id"`
	Year          int       `json:"year"`
	GuestID       int64     `json:"guest_id"`
	GuestName     string    `json:"guest_name"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Notes1        string    `json:"notes_1,omitempty"`
	Notes2        string    `json:"notes_2,omitempty"`
	Filename      string    `json:"filename,omitempty"`
	Version       int       `json:"version"`
	UserID        int64     `json:"user_id"`
	ModeratorID   int64     `json:"moderator_id,omitempty"`
	State         int       `json:"state"`
	Approved      int       `json:"approved"`
	Rejected      int       `json:"rejected"`
	Deleted       int       `json:"deleted"`
	Timestamp     time.Time `json:"timestamp"`
}

// GuestApply is the reconciliation operation the approval dispatches on.
type GuestApply interface {
	isGuestApply()
}

// GuestUpsert merges the proposed record into canonical storage.
type GuestUpsert struct {
	Record guestmodel.YearlyGuest
}

// GuestDelete removes the canonical yearly record, backing it up first,
// then conditionally cleans up the guest identity.
type GuestDelete struct {
	GuestID int64
	Year    int
}

func (GuestUpsert) isGuestApply() {}
func (GuestDelete) isGuestApply() {}

// CollectibleApply mirrors GuestApply for collectibles.
type CollectibleApply interface {
	isCollectibleApply()
}

type CollectibleUpsert struct {
	Record collectiblemodel.Collectible
}

type CollectibleDelete struct {
	CollectibleID string
	GuestID       int64
}

func (CollectibleUpsert) isCollectibleApply() {}
func (CollectibleDelete) isCollectibleApply() {}
