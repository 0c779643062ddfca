package auth

import (
	"context"

	"gamehub/models"
)

// Session is an authenticated caller's identity, passed explicitly into
// every handler and service that needs it. There is no global session.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ChangeHandler observes session changes. A nil session means sign-out or
// account deletion.
type ChangeHandler func(*Session)

// Provider is the identity collaborator. Handlers depend on this interface
// so tests can substitute a stand-in.
type Provider interface {
	SignUp(ctx context.Context, in models.RegisterInput) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignInFederated accepts an email assertion already verified by the
	// federation gateway (popup flow happens client-side).
	SignInFederated(ctx context.Context, provider, email string) (*Session, error)
	SendPasswordReset(ctx context.Context, email string) error
	Reauthenticate(ctx context.Context, s *Session, password string) error
	DeleteIdentity(ctx context.Context, s *Session) error
	CurrentSession(token string) (*Session, error)
	// OnSessionChange registers a change observer and returns its
	// unsubscribe function.
	OnSessionChange(h ChangeHandler) func()
}
