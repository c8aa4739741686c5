package model

import "errors"

// Collectible is a canonical physical or digital item tied to a guest.
// The opaque string id is stable; guest_name is a display-name cache
// refreshed only on approval.
type Collectible struct {
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

var (
	ErrCollectibleNotFound = errors.New("collectible not found")
)
