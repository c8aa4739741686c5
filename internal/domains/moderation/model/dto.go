package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// SUBMISSION DTOs
// =====================================================

// GuestSubmissionRequest carries the proposed field set for a yearly
// guest record. Blurb and Biography arrive as plain text; the service
// transport-encodes them before storage.
type GuestSubmissionRequest struct {
	URL           string `json:"url"`
	Blurb         string `json:"blurb"`
	Biography     string `json:"biography"`
	GuestType     string `json:"guest_type"`
	GuestCategory string `json:"guest_category"`
	Accolades1    string `json:"accolades_1"`
	Accolades2    string `json:"accolades_2"`
}

// GuestAdditionRequest proposes a brand-new guest appearance. A new
// subject key is always allowed; no canonical row is required.
type GuestAdditionRequest struct {
	GuestName     string `json:"guest_name"`
	Year          int    `json:"year"`
	URL           string `json:"url"`
	Blurb         string `json:"blurb"`
	Biography     string `json:"biography"`
	GuestType     string `json:"guest_type"`
	GuestCategory string `json:"guest_category"`
	Accolades1    string `json:"accolades_1"`
	Accolades2    string `json:"accolades_2"`
}

func (r GuestAdditionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GuestName, validation.Required.Error("guest_name is required")),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(1900).Error("year is out of range"),
			validation.Max(2200).Error("year is out of range"),
		),
	)
}

// CollectibleSubmissionRequest carries the proposed field set for an
// existing collectible. Year, guest id and filename are taken from the
// canonical row, not the request.
type CollectibleSubmissionRequest struct {
	GuestName string `json:"guest_name"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Notes1    string `json:"notes_1"`
	Notes2    string `json:"notes_2"`
}

// CollectibleAdditionRequest proposes a brand-new collectible. The
// image arrives separately as a multipart upload.
type CollectibleAdditionRequest struct {
	Year      int    `json:"year" form:"year"`
	GuestName string `json:"guest_name" form:"guest_name"`
	Name      string `json:"name" form:"name"`
	Category  string `json:"category" form:"category"`
	Notes1    string `json:"notes_1" form:"notes_1"`
	Notes2    string `json:"notes_2" form:"notes_2"`
}

func (r CollectibleAdditionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GuestName, validation.Required.Error("guest_name is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(1900).Error("year is out of range"),
			validation.Max(2200).Error("year is out of range"),
		),
	)
}

// ImageUpload is the raw uploaded collectible image handed to storage.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmissionResult reports the version assigned to a new entry.
type SubmissionResult struct {
	Version       int    `json:"version"`
	CollectibleID string `json:"collectible_id,omitempty"`
}

// =====================================================
// QUEUE DTOs
// =====================================================

// PendingGuestEntry is a queue item: the entry joined with the
// submitter's display name, blurb/biography decoded for display, and
// the resolved canonical guest id when the guest already exists.
type PendingGuestEntry struct {
	ID            int64     `json:"id"`
	Year          int       `json:"year"`
	GuestName     string    `json:"guest_name"`
	GuestID       *int64    `json:"guest_id"`
	URL           string    `json:"url,omitempty"`
	Blurb         string    `json:"blurb"`
	Biography     string    `json:"biography"`
	GuestType     string    `json:"guest_type,omitempty"`
	Accolades1    string    `json:"accolades_1,omitempty"`
	Accolades2    string    `json:"accolades_2,omitempty"`
	Version       int       `json:"version"`
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name"`
	Timestamp     time.Time `json:"timestamp"`
	Note          string    `json:"note,omitempty"`
	Deleted       int       `json:"deleted"`
}

// PendingCollectibleEntry is the collectible queue item.
type PendingCollectibleEntry struct {
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
	UserName      string    `json:"user_name"`
	Timestamp     time.Time `json:"timestamp"`
	Deleted       int       `json:"deleted"`
}

// =====================================================
// DECISION DTOs
// =====================================================

// DecisionRequest identifies the entry being decided. Deleted forces
// delete dispatch even when the entry itself was not flagged; the
// effective operation is the OR of both flags.
type DecisionRequest struct {
	ID      int64 `json:"id"`
	Deleted int   `json:"deleted"`
}

func (r DecisionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
	)
}

// GuestDecisionResult reports the affected subject after a decision.
type GuestDecisionResult struct {
	EntryID     int64  `json:"id"`
	GuestID     int64  `json:"guest_id,omitempty"`
	GuestName   string `json:"guest_name"`
	Year        int    `json:"year"`
	Version     int    `json:"version,omitempty"`
	ModeratorID int64  `json:"moderator_id"`
}

// CollectibleDecisionResult reports the affected collectible subject.
type CollectibleDecisionResult struct {
	EntryID       int64  `json:"id"`
	CollectibleID string `json:"collectible_id"`
	GuestID       int64  `json:"guest_id,omitempty"`
	GuestName     string `json:"guest_name"`
	Year          int    `json:"year"`
	Version       int    `json:"version,omitempty"`
	ModeratorID   int64  `json:"moderator_id"`
}

// =====================================================
// SUBMISSION HISTORY DTOs
// =====================================================

// GuestSubmissionHistoryItem is one row of a user's guest submission
// history.
type GuestSubmissionHistoryItem struct {
	ID         int64     `json:"id"`
	Year       int       `json:"year"`
	GuestName  string    `json:"guest_name"`
	State      int       `json:"state"`
	Version    int       `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
	Blurb      string    `json:"blurb"`
	Biography  string    `json:"biography"`
	GuestType  string    `json:"guest_type,omitempty"`
	Accolades1 string    `json:"accolades_1,omitempty"`
	Accolades2 string    `json:"accolades_2,omitempty"`
}

// CollectibleSubmissionHistoryItem is one row of a user's collectible
// submission history.
type CollectibleSubmissionHistoryItem struct {
	ID            int64     `json:"id"`
	CollectibleID string    `json:"collectible_id"`
	Year          int       `json:"year"`
	GuestName     string    `json:"guest_name"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Notes1        string    `json:"notes_1,omitempty"`
	Notes2        string    `json:"notes_2,omitempty"`
	Filename      string    `json:"filename,omitempty"`
	State         int       `json:"state"`
	Timestamp     time.Time `json:"timestamp"`
}

// GuestSubmissionHistoryPage wraps a paginated guest history.
type GuestSubmissionHistoryPage struct {
	Submissions []GuestSubmissionHistoryItem `json:"submissions"`
	TotalCount  int                          `json:"total_count"`
	Page        int                          `json:"page"`
	PerPage     int                          `json:"per_page"`
	TotalPages  int                          `json:"total_pages"`
}

// CollectibleSubmissionHistoryPage wraps a paginated collectible
// history.
type CollectibleSubmissionHistoryPage struct {
	Submissions []CollectibleSubmissionHistoryItem `json:"submissions"`
	TotalCount  int                                `json:"total_count"`
	Page        int                                `json:"page"`
	PerPage     int                                `json:"per_page"`
	TotalPages  int                                `json:"total_pages"`
}
