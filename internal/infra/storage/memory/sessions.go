package memory

import (
	"context"
	"sync"
	"time"

	"archatara/internal/app/services/auth"
)

// SessionStore keeps admin sessions in process memory; they do not
// survive a restart.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]*auth.Session
}

// NewSessionStore builds an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]*auth.Session)}
}

// Save stores the session keyed by token.
func (s *SessionStore) Save(ctx context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.Token] = session
	return nil
}

// ByToken resolves a live session, pruning it if expired.
func (s *SessionStore) ByToken(ctx context.Context, token string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		delete(s.items, token)
		return nil, auth.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session if present.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}
