package store

import (
	"context"
	"errors"

	"gamehub/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document-store collaborator. Everything above it depends on
// this interface, so tests run against in-memory stand-ins. AppendRating and
// AppendScore are additive single-record inserts with merge semantics: a
// concurrent append from another user is never lost to an overwrite.
type Store interface {
	GetGame(ctx context.Context, id string) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	SaveGame(ctx context.Context, g *models.Game) error
	DeleteGame(ctx context.Context, id string) error

	ListRatings(ctx context.Context, gameID string) ([]models.UserRating, error)
	ListScores(ctx context.Context, gameID string) ([]models.CriticScore, error)
	AppendRating(ctx context.Context, r models.UserRating) error
	AppendScore(ctx context.Context, s models.CriticScore) error

	// ListProfiles is the roster view used to resolve review authorship.
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	DeleteProfile(ctx context.Context, uid string) error
}
