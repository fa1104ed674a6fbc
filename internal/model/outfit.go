package model

import "time"

// Outfit is one persisted generation result. Records are append-only: they
// are created once per successful generation and never mutated.
type Outfit struct {
	ID             int64     `json:"id"`
	OwnerID        string    `json:"owner_id"`
	ImageURL       string    `json:"image_url"`
	UserFilename   *string   `json:"user_filename,omitempty"`
	OutfitFilename *string   `json:"outfit_filename,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
