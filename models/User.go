package models

// UserProfile is one roster entry. The password hash never leaves the server.
type UserProfile struct {
	UID      string `gorm:"primaryKey" json:"uid"`
	FullName string `gorm:"not null" json:"fullName" validate:"required,min=3,max=50"`
	PhotoURL string `json:"photoUrl"`
	Email    string `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"-" validate:"required,min=6"`
}

// LoginInput - используется для валидации логина
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput - используется для валидации регистрации
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// UpdateProfileInput - используется для обновления профиля
type UpdateProfileInput struct {
	FullName *string `json:"fullName" validate:"omitempty,min=3,max=50"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`
}

// DeleteAccountInput - reauthentication before account removal
type DeleteAccountInput struct {
	Password string `json:"password" validate:"required"`
}
