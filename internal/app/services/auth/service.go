package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrSessionNotFound    = errors.New("auth: session not found")
	ErrNoAdmins           = errors.New("auth: no administrator accounts configured")
)

// Admin is one administrator account: an address plus a bcrypt hash
// verified at login. Replaces the shared static passphrase of earlier
// revisions, which was access-control theater rather than a boundary.
type Admin struct {
	Email        string
	PasswordHash string
}

// Session is an authenticated admin session, held in memory only.
type Session struct {
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	ByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service gates the admin workflow.
type Service struct {
	Admins     []Admin
	Sessions   SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if len(s.Admins) == 0 {
		return "", ErrNoAdmins
	}
	email = strings.TrimSpace(strings.ToLower(email))
	for _, admin := range s.Admins {
		if strings.ToLower(admin.Email) != email {
			continue
		}
		if err := s.Passwords.Compare(admin.PasswordHash, password); err != nil {
			return "", ErrInvalidCredentials
		}
		token, err := s.Tokens.NewToken()
		if err != nil {
			return "", err
		}
		now := time.Now().UTC()
		session := &Session{
			Token:     token,
			Email:     admin.Email,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl()),
		}
		if err := s.Sessions.Save(ctx, session); err != nil {
			return "", err
		}
		if s.Logger != nil {
			s.Logger.Info("admin logged in", "email", admin.Email)
		}
		return token, nil
	}
	return "", ErrInvalidCredentials
}

// Resolve validates a bearer token against the session store.
func (s *Service) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return s.Sessions.ByToken(ctx, token)
}

// Logout discards the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}

func (s *Service) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return 12 * time.Hour
}
