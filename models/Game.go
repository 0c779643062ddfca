package models

import (
	"time"

	"github.com/lib/pq"
)

// Game is one catalog entry. Platforms and genres are free-form tags.
type Game struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	ThumbnailURL string         `json:"thumbnailUrl"`
	Platforms    pq.StringArray `gorm:"type:text[]" json:"platforms"`
	Genres       pq.StringArray `gorm:"type:text[]" json:"genres"`
	ReleaseDate  time.Time      `json:"releaseDate"`
}

// GameSummary is a catalog row with its aggregates attached. The averages are
// recomputed from the current rating/score rows on every read; they are never
// persisted, so they cannot go stale across requests.
type GameSummary struct {
	Game
	AverageRating float64 `json:"averageRating"`
	AverageScore  float64 `json:"averageScore"`
}

// CreateGameInput - for catalog administration
type CreateGameInput struct {
	Name         string    `json:"name" validate:"required,min=1,max=200"`
	ThumbnailURL string    `json:"thumbnailUrl" validate:"omitempty,url"`
	Platforms    []string  `json:"platforms"`
	Genres       []string  `json:"genres"`
	ReleaseDate  time.Time `json:"releaseDate"`
}
