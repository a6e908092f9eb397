package storage

import (
	"context"
	"errors"
	"fmt"

	"letterforge/internal/config"
)

// Slot names for the persisted collections. They mirror the three slots the
// in-memory stores write through to on every mutation.
const (
	SlotProfiles     = "profiles"
	SlotApplications = "applications"
	SlotLogin        = "login"
)

// ErrSlotNotFound is returned when a slot has never been written.
var ErrSlotNotFound = errors.New("storage: slot not found")

// SlotStore is a durable key/value store of named slots, each holding one
// serialized collection. Read happens once at startup; Write on every
// mutation of the corresponding in-memory collection. Implementations must
// not interpret the payload: a corrupt slot surfaces as a decode error in the
// caller, not here.
type SlotStore interface {
	// Read returns the raw content of the named slot, or ErrSlotNotFound.
	Read(ctx context.Context, slot string) ([]byte, error)

	// Write replaces the content of the named slot.
	Write(ctx context.Context, slot string, data []byte) error

	// IsHealthy checks whether the backend is reachable.
	IsHealthy(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// NewSlotStore creates a slot store for the configured backend.
func NewSlotStore(cfg *config.Config) (SlotStore, error) {
	switch cfg.Storage.Backend {
	case "file", "":
		return NewFileStore(cfg.Storage.DataDir)
	case "redis":
		return NewRedisStore(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
