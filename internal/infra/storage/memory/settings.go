package memory

import (
	"context"
	"sync"

	"archatara/internal/domain/settings"
)

// SettingsStore keeps the singleton settings document in memory.
type SettingsStore struct {
	mu    sync.RWMutex
	value settings.Settings
}

// NewSettingsStore builds a store holding the built-in defaults.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{value: settings.Defaults()}
}

// Load returns the stored settings.
func (s *SettingsStore) Load(ctx context.Context) (settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, nil
}

// Save replaces the stored settings wholesale.
func (s *SettingsStore) Save(ctx context.Context, value settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	return nil
}
