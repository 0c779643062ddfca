package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gamehub/models"
	"gamehub/store"
)

// ProfileStore is the slice of the document store the provider needs.
type ProfileStore interface {
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, p *models.UserProfile) error
	DeleteProfile(ctx context.Context, uid string) error
}

const tokenTTL = 24 * time.Hour

// JWTProvider implements Provider with bcrypt credentials and HS256 tokens.
type JWTProvider struct {
	profiles ProfileStore
	secret   []byte

	mu       sync.Mutex
	watchers map[int]ChangeHandler
	nextID   int
}

func NewJWTProvider(profiles ProfileStore, secret []byte) *JWTProvider {
	return &JWTProvider{
		profiles: profiles,
		secret:   secret,
		watchers: make(map[int]ChangeHandler),
	}
}

func (p *JWTProvider) SignUp(ctx context.Context, in models.RegisterInput) (*Session, error) {
	if !strings.Contains(in.Email, "@") {
		return nil, &Error{Code: CodeInvalidEmail}
	}
	if len(in.Password) < 6 {
		return nil, &Error{Code: CodeWeakPassword}
	}
	if _, err := p.profiles.GetProfileByEmail(ctx, in.Email); err == nil {
		return nil, &Error{Code: CodeEmailInUse}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	profile := &models.UserProfile{
		UID:      uuid.NewString(),
		FullName: in.FullName,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := p.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return p.issue(profile)
}

func (p *JWTProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := p.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Code: CodeUserNotFound}
		}
		return nil, &Error{Code: CodeNetwork}
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)) != nil {
		return nil, &Error{Code: CodeWrongPassword}
	}
	return p.issue(profile)
}

func (p *JWTProvider) SignInFederated(ctx context.Context, provider, email string) (*Session, error) {
	if email == "" {
		return nil, &Error{Code: CodePopupClosed}
	}
	profile, err := p.profiles.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// First federated sign-in creates the roster entry. The
			// placeholder hash can never match a typed password.
			profile = &models.UserProfile{
				UID:      uuid.NewString(),
				FullName: strings.SplitN(email, "@", 2)[0],
				Email:    email,
				Password: "!federated:" + provider,
			}
			if err := p.profiles.SaveProfile(ctx, profile); err != nil {
				return nil, &Error{Code: CodeNetwork}
			}
		} else {
			return nil, &Error{Code: CodeNetwork}
		}
	}
	return p.issue(profile)
}

func (p *JWTProvider) SendPasswordReset(ctx context.Context, email string) error {
	if _, err := p.profiles.GetProfileByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &Error{Code: CodeUserNotFound}
		}
		return &Error{Code: CodeNetwork}
	}
	// Mail delivery is delegated to the identity backend; nothing to do in
	// the stand-in beyond confirming the account exists.
	return nil
}

func (p *JWTProvider) Reauthenticate(ctx context.Context, s *Session, password string) error {
	if s == nil {
		return &Error{Code: CodeInvalidToken}
	}
	profile, err := p.profiles.GetProfile(ctx, s.UID)
	if err != nil {
		return &Error{Code: CodeUserNotFound}
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)) != nil {
		return &Error{Code: CodeWrongPassword}
	}
	return nil
}

func (p *JWTProvider) DeleteIdentity(ctx context.Context, s *Session) error {
	if s == nil {
		return &Error{Code: CodeInvalidToken}
	}
	if err := p.profiles.DeleteProfile(ctx, s.UID); err != nil {
		return err
	}
	p.notify(nil)
	return nil
}

func (p *JWTProvider) CurrentSession(token string) (*Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, &Error{Code: CodeInvalidToken}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &Error{Code: CodeInvalidToken}
	}
	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return nil, &Error{Code: CodeInvalidToken}
	}
	return &Session{UID: uid, Email: email, Token: token}, nil
}

func (p *JWTProvider) OnSessionChange(h ChangeHandler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = h
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.watchers, id)
	}
}

func (p *JWTProvider) issue(profile *models.UserProfile) (*Session, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   profile.UID,
		"email": profile.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return nil, err
	}
	s := &Session{UID: profile.UID, Email: profile.Email, Token: signed}
	p.notify(s)
	return s, nil
}

func (p *JWTProvider) notify(s *Session) {
	p.mu.Lock()
	handlers := make([]ChangeHandler, 0, len(p.watchers))
	for _, h := range p.watchers {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()
	for _, h := range handlers {
		h(s)
	}
}
