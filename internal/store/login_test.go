package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginState_DefaultsToLoggedOut(t *testing.T) {
	s := NewLoginState(newTestSlots(t))
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.IsLoggedIn())
}

func TestLoginState_SetPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	slots := newTestSlots(t)

	s := NewLoginState(slots)
	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.Set(ctx, true))

	reloaded := NewLoginState(slots)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.IsLoggedIn())

	require.NoError(t, reloaded.Set(ctx, false))
	again := NewLoginState(slots)
	require.NoError(t, again.Load(ctx))
	assert.False(t, again.IsLoggedIn())
}
