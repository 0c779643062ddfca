package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gamehub/models"
)

// Gorm is the Postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *Gorm) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.db.WithContext(ctx).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Gorm) SaveGame(ctx context.Context, g *models.Game) error {
	return s.db.WithContext(ctx).Save(g).Error
}

func (s *Gorm) DeleteGame(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Game{}, "id = ?", id).Error
}

func (s *Gorm) ListRatings(ctx context.Context, gameID string) ([]models.UserRating, error) {
	var ratings []models.UserRating
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Order("posted_on DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *Gorm) ListScores(ctx context.Context, gameID string) ([]models.CriticScore, error) {
	var scores []models.CriticScore
	if err := s.db.WithContext(ctx).Where("game_id = ?", gameID).Order("posted_on DESC").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

// AppendRating inserts one new row. The rating collection is never read,
// rewritten, or truncated here, so concurrent appends cannot clobber each
// other.
func (s *Gorm) AppendRating(ctx context.Context, r models.UserRating) error {
	return s.db.WithContext(ctx).Create(&r).Error
}

func (s *Gorm) AppendScore(ctx context.Context, sc models.CriticScore) error {
	return s.db.WithContext(ctx).Create(&sc).Error
}

func (s *Gorm) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := s.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Gorm) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *Gorm) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *Gorm) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *Gorm) DeleteProfile(ctx context.Context, uid string) error {
	return s.db.WithContext(ctx).Delete(&models.UserProfile{}, "uid = ?", uid).Error
}
