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

// ApplicationStore owns the application tracker collection, ordered most
// recent first. Records are only ever created through the save-to-tracker
// action, so Insert always appends a new entry at the front and never
// deduplicates. After creation only the status field may change.
type ApplicationStore struct {
	mu      sync.RWMutex
	records []models.ApplicationRecord
	slots   storage.SlotStore
	logger  logging.Logger
}

// NewApplicationStore creates an application store backed by the given slot
// store.
func NewApplicationStore(slots storage.SlotStore) *ApplicationStore {
	return &ApplicationStore{
		slots:  slots,
		logger: logging.GetGlobalLogger().WithField("component", "application_store"),
	}
}

// Load reads the persisted collection.
func (s *ApplicationStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slots.Read(ctx, storage.SlotApplications)
	if err != nil {
		if err == storage.ErrSlotNotFound {
			s.records = nil
			return nil
		}
		return err
	}

	var records []models.ApplicationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("corrupt application collection: %w", err)
	}

	s.records = records
	s.logger.Info("Application collection loaded", map[string]interface{}{
		"count": len(records),
	})
	return nil
}

// Insert prepends the record to the collection.
func (s *ApplicationStore) Insert(ctx context.Context, record models.ApplicationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.ApplicationRecord{record}, s.records...)
	return s.persist(ctx)
}

// UpdateStatus replaces only the status field of the matching record. An
// unknown id is a silent no-op.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
			return s.persist(ctx)
		}
	}
	return nil
}

// Delete removes the matching record. An unknown id is a silent no-op.
func (s *ApplicationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	removed := false
	for _, r := range s.records {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept

	if !removed {
		return nil
	}
	return s.persist(ctx)
}

// List returns a copy of the collection, most recent first.
func (s *ApplicationStore) List() []models.ApplicationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ApplicationRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id, or nil.
func (s *ApplicationStore) Get(id string) *models.ApplicationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			r := s.records[i]
			return &r
		}
	}
	return nil
}

// persist mirrors the collection to the slot store. Callers hold the lock.
func (s *ApplicationStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to encode application collection: %w", err)
	}
	if err := s.slots.Write(ctx, storage.SlotApplications, data); err != nil {
		s.logger.Error("Failed to persist application collection", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
