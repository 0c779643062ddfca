package reviews

import (
	"time"

	"gamehub/models"
)

// Kind discriminates the two review variants.
type Kind string

const (
	KindUser   Kind = "user"
	KindCritic Kind = "critic"
)

// Review is a tagged union over the two review shapes. Exactly one of User
// and Critic is set, selected by Kind.
type Review struct {
	Kind   Kind
	User   *models.UserRating
	Critic *models.CriticScore
}

func FromRating(r models.UserRating) Review {
	return Review{Kind: KindUser, User: &r}
}

func FromScore(s models.CriticScore) Review {
	return Review{Kind: KindCritic, Critic: &s}
}

// Display is the view model a review renders as. Rating fields are zero for
// critic reviews and organization fields are empty for user reviews.
type Display struct {
	Kind              Kind      `json:"kind"`
	Author            Author    `json:"author"`
	Rating            int       `json:"rating,omitempty"`
	Score             float64   `json:"score,omitempty"`
	OrganizationName  string    `json:"organizationName,omitempty"`
	OrganizationEmail string    `json:"organizationEmail,omitempty"`
	ArticleLink       string    `json:"articleLink,omitempty"`
	Comment           string    `json:"comment"`
	PostedOn          time.Time `json:"postedOn"`
}

// Display resolves the review against the roster and flattens it for
// rendering.
func (r Review) Display(roster []models.UserProfile) Display {
	switch r.Kind {
	case KindCritic:
		return Display{
			Kind:              KindCritic,
			Author:            ResolveAuthor(r.Critic.UserUID, roster),
			Score:             r.Critic.Score,
			OrganizationName:  r.Critic.OrganizationName,
			OrganizationEmail: r.Critic.OrganizationEmail,
			ArticleLink:       r.Critic.ArticleLink,
			Comment:           r.Critic.Comment,
			PostedOn:          r.Critic.PostedOn,
		}
	default:
		return Display{
			Kind:     KindUser,
			Author:   ResolveAuthor(r.User.UserUID, roster),
			Rating:   r.User.Rating,
			Comment:  r.User.Comment,
			PostedOn: r.User.PostedOn,
		}
	}
}
