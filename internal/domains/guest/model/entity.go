package model

// Guest is the canonical guest identity. The surrogate key is stable
// across years; the row is created by the identity resolver on first
// approved appearance and removed only when nothing references it.
type Guest struct {
	GuestID   int64  `json:"guest_id"`
	GuestName string `json:"guest_name"`
}

// YearlyGuest is the canonical per-year appearance of a guest. The
// guest_name column is a display-name cache: it is refreshed only by the
// approval reconciler, never re-synced on reads.
type YearlyGuest struct {
	GuestID       int64  `json:"guest_id"`
	Year          int    `json:"year"`
	URL           string `json:"url,omitempty"`
	GuestName     string `json:"guest_name"`
	Blurb         string `json:"blurb,omitempty"`
	Biography     string `json:"biography,omitempty"`
	GuestType     string `json:"guest_type,omitempty"`
	GuestCategory string `json:"guest_category,omitempty"`
	Accolades1    string `json:"accolades_1,omitempty"`
	Accolades2    string `json:"accolades_2,omitempty"`
	Modified      int    `json:"modified"`
}
