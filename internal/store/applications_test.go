package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterforge/pkg/models"
)

func record(id, title string) models.ApplicationRecord {
	return models.ApplicationRecord{
		ID:          id,
		JobTitle:    title,
		Company:     "Acme",
		Status:      models.StatusApplied,
		DateCreated: time.Now().UTC(),
		CoverLetter: "Dear team,",
		Touchpoints: []string{"Go", "Kubernetes"},
	}
}

func TestApplicationStore_InsertPrepends(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Insert(ctx, record("a1", "First")))
	require.NoError(t, s.Insert(ctx, record("a2", "Second")))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a1", list[1].ID)
}

func TestApplicationStore_InsertNeverDeduplicates(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	// Two saves of the same letter create two records with distinct ids
	require.NoError(t, s.Insert(ctx, record("a1", "Same")))
	require.NoError(t, s.Insert(ctx, record("a2", "Same")))

	assert.Len(t, s.List(), 2)
}

func TestApplicationStore_UpdateStatusOnlyTouchesStatus(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	original := record("a1", "First")
	require.NoError(t, s.Insert(ctx, original))
	require.NoError(t, s.UpdateStatus(ctx, "a1", models.StatusInterviewing))

	got := s.Get("a1")
	require.NotNil(t, got)
	assert.Equal(t, models.StatusInterviewing, got.Status)
	assert.Equal(t, original.CoverLetter, got.CoverLetter)
	assert.Equal(t, original.Touchpoints, got.Touchpoints)
	assert.Equal(t, original.JobTitle, got.JobTitle)
}

func TestApplicationStore_UpdateStatusUnknownIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Insert(ctx, record("a1", "First")))
	require.NoError(t, s.UpdateStatus(ctx, "ghost", models.StatusOffer))

	assert.Equal(t, models.StatusApplied, s.Get("a1").Status)
}

func TestApplicationStore_DeleteRemovesRecord(t *testing.T) {
	ctx := context.Background()
	s := NewApplicationStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Insert(ctx, record("a1", "First")))
	require.NoError(t, s.Insert(ctx, record("a2", "Second")))
	require.NoError(t, s.Delete(ctx, "a1"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "a2", list[0].ID)
	assert.Nil(t, s.Get("a1"))

	// Unknown id is a silent no-op
	require.NoError(t, s.Delete(ctx, "ghost"))
	assert.Len(t, s.List(), 1)
}

func TestApplicationStore_RoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	slots := newTestSlots(t)

	s := NewApplicationStore(slots)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Insert(ctx, record("a1", "First")))
	require.NoError(t, s.Insert(ctx, record("a2", "Second")))

	reloaded := NewApplicationStore(slots)
	require.NoError(t, reloaded.Load(ctx))

	list := reloaded.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a1", list[1].ID)
}
