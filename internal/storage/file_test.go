package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissingSlot(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read(context.Background(), SlotProfiles)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestFileStore_WriteThenRead(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`[{"id":"p1"}]`)
	require.NoError(t, s.Write(ctx, SlotProfiles, payload))

	got, err := s.Read(ctx, SlotProfiles)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStore_WriteReplacesWholeSlot(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Write(ctx, SlotApplications, []byte("first")))
	require.NoError(t, s.Write(ctx, SlotApplications, []byte("second")))

	got, err := s.Read(ctx, SlotApplications)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFileStore_SlotsAreIndependent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Write(ctx, SlotProfiles, []byte("profiles")))
	require.NoError(t, s.Write(ctx, SlotLogin, []byte("true")))

	profiles, err := s.Read(ctx, SlotProfiles)
	require.NoError(t, err)
	login, err := s.Read(ctx, SlotLogin)
	require.NoError(t, err)

	assert.Equal(t, []byte("profiles"), profiles)
	assert.Equal(t, []byte("true"), login)
}

func TestFileStore_LeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), SlotProfiles, []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(e.Name()))
	}
}

func TestFileStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.NoError(t, s.IsHealthy(context.Background()))
}
