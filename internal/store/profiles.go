package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"letterforge/internal/logging"
	"letterforge/internal/storage"
	"letterforge/pkg/models"
)

// ProfileStore owns the career identity collection and the transient "active
// profile" selection on top of it. Every mutation is mirrored to the slot
// store before it returns (write-through), so a reload reconstructs the full
// collection.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles []models.Profile
	activeID string
	slots    storage.SlotStore
	logger   logging.Logger
}

// NewProfileStore creates a profile store backed by the given slot store.
func NewProfileStore(slots storage.SlotStore) *ProfileStore {
	return &ProfileStore{
		slots:  slots,
		logger: logging.GetGlobalLogger().WithField("component", "profile_store"),
	}
}

// Load reads the persisted collection. When the loaded collection is
// non-empty and nothing is active yet, the first profile becomes active by
// default — exactly once, at load time. A corrupt slot surfaces as the
// decode error; the caller decides what to do with a store it cannot trust.
func (s *ProfileStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slots.Read(ctx, storage.SlotProfiles)
	if err != nil {
		if err == storage.ErrSlotNotFound {
			s.profiles = nil
			return nil
		}
		return err
	}

	var profiles []models.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("corrupt profile collection: %w", err)
	}

	s.profiles = profiles
	if s.activeID == "" && len(profiles) > 0 {
		s.activeID = profiles[0].ID
	}

	s.logger.Info("Profile collection loaded", map[string]interface{}{
		"count":  len(profiles),
		"active": s.activeID,
	})
	return nil
}

// Upsert replaces the record with the same id in place (stable position) or
// appends a new one, then selects it as active.
func (s *ProfileStore) Upsert(ctx context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.profiles {
		if s.profiles[i].ID == profile.ID {
			s.profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		s.profiles = append(s.profiles, profile)
	}
	s.activeID = profile.ID

	return s.persist(ctx)
}

// Delete removes the record with the given id. Deleting the active profile
// clears the active selection. Unknown ids are a silent no-op.
func (s *ProfileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.profiles[:0]
	removed := false
	for _, p := range s.profiles {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	s.profiles = kept

	if !removed {
		return nil
	}
	if s.activeID == id {
		s.activeID = ""
	}

	return s.persist(ctx)
}

// Select sets the active profile id. The id is not validated: selecting a
// nonexistent id simply yields no active profile.
func (s *ProfileStore) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
}

// Active returns the currently active profile, or nil when no selection
// resolves to an existing record.
func (s *ProfileStore) Active() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == "" {
		return nil
	}
	for i := range s.profiles {
		if s.profiles[i].ID == s.activeID {
			p := s.profiles[i]
			return &p
		}
	}
	return nil
}

// ActiveID returns the raw active selection, which may reference a deleted
// record.
func (s *ProfileStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// List returns a copy of the collection in storage order.
func (s *ProfileStore) List() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Get returns the profile with the given id, or nil.
func (s *ProfileStore) Get(id string) *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.profiles {
		if s.profiles[i].ID == id {
			p := s.profiles[i]
			return &p
		}
	}
	return nil
}

// persist mirrors the collection to the slot store. Callers hold the lock.
func (s *ProfileStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profile collection: %w", err)
	}
	if err := s.slots.Write(ctx, storage.SlotProfiles, data); err != nil {
		s.logger.Error("Failed to persist profile collection", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
