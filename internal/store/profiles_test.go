package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterforge/internal/storage"
	"letterforge/pkg/models"
)

func newTestSlots(t *testing.T) storage.SlotStore {
	t.Helper()
	slots, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return slots
}

func profile(id, name string) models.Profile {
	return models.Profile{ID: id, Name: name, Skills: []string{"Go"}}
}

func TestProfileStore_UpsertAppendsAndSelects(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Upsert(ctx, profile("p1", "Backend")))
	require.NoError(t, s.Upsert(ctx, profile("p2", "Data")))

	assert.Len(t, s.List(), 2)
	assert.Equal(t, "p2", s.ActiveID())
	require.NotNil(t, s.Active())
	assert.Equal(t, "Data", s.Active().Name)
}

func TestProfileStore_UpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Upsert(ctx, profile("p1", "Backend")))
	require.NoError(t, s.Upsert(ctx, profile("p2", "Data")))
	require.NoError(t, s.Upsert(ctx, profile("p1", "Platform")))

	list := s.List()
	require.Len(t, list, 2)
	// Replacement keeps the original position
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "Platform", list[0].Name)
	assert.Equal(t, "p1", s.ActiveID())
}

func TestProfileStore_DeleteActiveClearsSelection(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Upsert(ctx, profile("p1", "Backend")))
	require.NoError(t, s.Delete(ctx, "p1"))

	assert.Empty(t, s.List())
	assert.Empty(t, s.ActiveID())
	assert.Nil(t, s.Active())
}

func TestProfileStore_DeleteUnknownIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Upsert(ctx, profile("p1", "Backend")))
	require.NoError(t, s.Delete(ctx, "ghost"))

	assert.Len(t, s.List(), 1)
	assert.Equal(t, "p1", s.ActiveID())
}

func TestProfileStore_SelectDoesNotValidate(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(newTestSlots(t))
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Upsert(ctx, profile("p1", "Backend")))
	s.Select("ghost")

	assert.Equal(t, "ghost", s.ActiveID())
	// A dangling selection resolves to no active profile
	assert.Nil(t, s.Active())
}

func TestProfileStore_LoadDefaultsFirstProfileActiveOnce(t *testing.T) {
	ctx := context.Background()
	slots := newTestSlots(t)

	seed := NewProfileStore(slots)
	require.NoError(t, seed.Load(ctx))
	require.NoError(t, seed.Upsert(ctx, profile("p1", "Backend")))
	require.NoError(t, seed.Upsert(ctx, profile("p2", "Data")))

	s := NewProfileStore(slots)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "p1", s.ActiveID())

	// The default applies at load time only; a later deliberate
	// deselection is not overridden.
	s.Select("")
	assert.Empty(t, s.ActiveID())
}

func TestProfileStore_RoundTripThroughSlots(t *testing.T) {
	ctx := context.Background()
	slots := newTestSlots(t)

	s := NewProfileStore(slots)
	require.NoError(t, s.Load(ctx))

	p := profile("p1", "Backend")
	p.Documents = []models.Document{{ID: "d1", Name: "resume.txt", Content: "ten years of Go"}}
	require.NoError(t, s.Upsert(ctx, p))

	reloaded := NewProfileStore(slots)
	require.NoError(t, reloaded.Load(ctx))

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Backend", list[0].Name)
	require.Len(t, list[0].Documents, 1)
	assert.Equal(t, "ten years of Go", list[0].Documents[0].Content)
}

func TestProfileStore_LoadCorruptSlotFails(t *testing.T) {
	ctx := context.Background()
	slots := newTestSlots(t)
	require.NoError(t, slots.Write(ctx, storage.SlotProfiles, []byte("{not json")))

	s := NewProfileStore(slots)
	assert.Error(t, s.Load(ctx))
}
