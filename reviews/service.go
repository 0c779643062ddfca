package reviews

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"gamehub/auth"
	"gamehub/models"
)

// MaxCommentLen is the longest accepted review comment, in characters.
const MaxCommentLen = 1000

// Appender is the slice of the document store the submission service needs.
// Both appends must be additive single-record inserts: concurrent
// submissions from other users must never be lost to an overwrite.
type Appender interface {
	AppendRating(ctx context.Context, r models.UserRating) error
	AppendScore(ctx context.Context, s models.CriticScore) error
}

// Service validates and persists review submissions.
type Service struct {
	store Appender
	now   func() time.Time
}

func NewService(store Appender) *Service {
	return &Service{store: store, now: time.Now}
}

// SubmitRating validates a user review and appends it to the game's rating
// collection. Preconditions are checked in order and short-circuit on the
// first failure; the store is only reached once all of them pass. PostedOn
// is set server-side.
func (s *Service) SubmitRating(ctx context.Context, session *auth.Session, gameID string, in models.SubmitRatingInput) error {
	if session == nil {
		return ErrNotAuthenticated
	}
	if in.Rating == 0 {
		return ErrMissingRating
	}
	if in.Rating < 1 || in.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if in.Comment == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(in.Comment) > MaxCommentLen {
		return ErrCommentTooLong
	}

	rec := models.UserRating{
		GameID:   gameID,
		UserUID:  session.UID,
		Rating:   in.Rating,
		Comment:  in.Comment,
		PostedOn: s.now().UTC(),
	}
	if err := s.store.AppendRating(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// SubmitScore validates a critic review and appends it to the game's score
// collection. The posting user's UID is attached as a display join key.
func (s *Service) SubmitScore(ctx context.Context, session *auth.Session, gameID string, in models.SubmitScoreInput) error {
	if session == nil {
		return ErrNotAuthenticated
	}
	for _, f := range []struct{ name, val string }{
		{"organizationName", in.OrganizationName},
		{"organizationEmail", in.OrganizationEmail},
		{"articleLink", in.ArticleLink},
		{"comment", in.Comment},
	} {
		if f.val == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if in.Score < 0 || in.Score > 50 {
		return ErrScoreOutOfRange
	}

	rec := models.CriticScore{
		GameID:            gameID,
		OrganizationName:  in.OrganizationName,
		OrganizationEmail: in.OrganizationEmail,
		Score:             in.Score,
		ArticleLink:       in.ArticleLink,
		Comment:           in.Comment,
		PostedOn:          s.now().UTC(),
		UserUID:           session.UID,
	}
	if err := s.store.AppendScore(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
