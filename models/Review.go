package models

import "time"

// UserRating is one user-submitted review. UserUID is not guaranteed to
// resolve against the roster: the author may have deleted their account
// after posting.
type UserRating struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GameID   string    `gorm:"index;not null" json:"gameId"`
	UserUID  string    `json:"userUid"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	PostedOn time.Time `json:"postedOn"`
}

// CriticScore is one critic-submitted review. UserUID is the authenticated
// user who posted it, kept only as a display join key.
type CriticScore struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	GameID            string    `gorm:"index;not null" json:"gameId"`
	OrganizationName  string    `json:"organizationName"`
	OrganizationEmail string    `json:"organizationEmail"`
	Score             float64   `json:"score"`
	ArticleLink       string    `json:"articleLink"`
	Comment           string    `json:"comment"`
	PostedOn          time.Time `json:"postedOn"`
	UserUID           string    `json:"userUid"`
}

// SubmitRatingInput - for posting a user review
type SubmitRatingInput struct {
	Rating  int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// SubmitScoreInput - for posting a critic score
type SubmitScoreInput struct {
	OrganizationName  string  `json:"organizationName" validate:"required"`
	OrganizationEmail string  `json:"organizationEmail" validate:"required,email"`
	Score             float64 `json:"score" validate:"gte=0,lte=50"`
	ArticleLink       string  `json:"articleLink" validate:"required,url"`
	Comment           string  `json:"comment" validate:"required"`
}
