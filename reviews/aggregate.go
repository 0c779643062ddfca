package reviews

import "gamehub/models"

// Placeholder identity shown when a review's author no longer exists in the
// roster. The UI must never render a broken reference.
const (
	DeletedUserName  = "Deleted User"
	DefaultAvatarURL = "/uploads/default-avatar.png"
)

// AverageRating returns the arithmetic mean of the ratings, or exactly 0
// for an empty collection.
func AverageRating(ratings []models.UserRating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

// AverageScore returns the arithmetic mean of the critic scores, or exactly
// 0 for an empty collection.
func AverageScore(scores []models.CriticScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.Score
	}
	return sum / float64(len(scores))
}

// Author is the resolved display identity for a review.
type Author struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

// ResolveAuthor looks up a review author in the roster by UID. A miss means
// the account was deleted after posting; the fixed placeholder is returned
// instead.
func ResolveAuthor(userUID string, roster []models.UserProfile) Author {
	for _, p := range roster {
		if p.UID == userUID {
			return Author{DisplayName: p.FullName, PhotoURL: p.PhotoURL}
		}
	}
	return Author{DisplayName: DeletedUserName, PhotoURL: DefaultAvatarURL}
}
