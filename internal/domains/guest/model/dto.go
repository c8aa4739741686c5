package model

// GuestProfile aggregates everything known about one guest identity.
type GuestProfile struct {
	YearlyGuests []YearlyGuest        `json:"yearly_guests"`
	Collectibles []ProfileCollectible `json:"collectibles"`
}

// ProfileCollectible is the collectible projection embedded in a guest
// profile. Kept local to avoid a dependency on the collectible domain.
type ProfileCollectible struct {
	CollectibleID string `json:"collectible_id"`
	Year          int    `json:"year"`
	GuestID       int64  `json:"guest_id"`
	GuestName     string `json:"guest_name"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Notes1        string `json:"notes_1,omitempty"`
	Notes2        string `json:"notes_2,omitempty"`
	Filename      string `json:"filename,omitempty"`
	Modified      int    `json:"modified"`
}

// YearBlurb is the per-year blurb/biography projection.
type YearBlurb struct {
	Year      int    `json:"year"`
	Blurb     string `json:"blurb"`
	Biography string `json:"biography"`
}

// SearchResult is a paginated name-search result.
type SearchResult struct {
	Guests  []Guest `json:"guests"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Pages   int     `json:"pages"`
}

// AccoladeEntry lists a yearly record that carries at least one accolade.
type AccoladeEntry struct {
	GuestID    int64  `json:"guest_id"`
	GuestName  string `json:"guest_name"`
	Year       int    `json:"year"`
	Accolades1 string `json:"accolades_1,omitempty"`
	Accolades2 string `json:"accolades_2,omitempty"`
}
