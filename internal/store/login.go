package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"letterforge/internal/storage"
)

// LoginState mirrors the logged-in flag the client keeps next to its
// collections. There is no hosted session behind it; it only remembers
// whether the user passed the landing page.
type LoginState struct {
	mu       sync.RWMutex
	loggedIn bool
	slots    storage.SlotStore
}

// NewLoginState creates a login flag backed by the given slot store.
func NewLoginState(slots storage.SlotStore) *LoginState {
	return &LoginState{slots: slots}
}

// Load reads the persisted flag. A missing slot means logged out.
func (s *LoginState) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slots.Read(ctx, storage.SlotLogin)
	if err != nil {
		if err == storage.ErrSlotNotFound {
			s.loggedIn = false
			return nil
		}
		return err
	}

	var loggedIn bool
	if err := json.Unmarshal(data, &loggedIn); err != nil {
		return fmt.Errorf("corrupt login slot: %w", err)
	}
	s.loggedIn = loggedIn
	return nil
}

// Set updates the flag and mirrors it to the slot store.
func (s *LoginState) Set(ctx context.Context, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loggedIn = loggedIn
	data, _ := json.Marshal(loggedIn)
	return s.slots.Write(ctx, storage.SlotLogin, data)
}

// IsLoggedIn returns the current flag.
func (s *LoginState) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}
