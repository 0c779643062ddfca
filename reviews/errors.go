package reviews

import "errors"

// Submission error kinds, checkable with errors.Is. Validation kinds are
// detected locally, in order, before any store call; ErrPersistence wraps a
// failed store append.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingRating    = errors.New("rating is required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("comment must not be empty")
	ErrCommentTooLong   = errors.New("comment must be at most 1000 characters")
	ErrMissingField     = errors.New("required field is missing")
	ErrScoreOutOfRange  = errors.New("score must be between 0 and 50")
	ErrPersistence      = errors.New("failed to save review")
)
