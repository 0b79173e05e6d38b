package hold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinreserve/internal/apierr"
)

// No Redis instance is available in this test environment, so these tests
// exercise the in-process fallback path (redis == nil), which is the same
// code path production takes when the lock store is unreachable.

func TestManager_CreateHold_FallbackSetsWarning(t *testing.T) {
	m := NewManager(nil, 900)
	ctx := context.Background()

	h, err := m.CreateHold(ctx, "cabin-1", "2026-08-01", "2026-08-04", nil, "Dana")
	require.NoError(t, err)
	assert.NotEmpty(t, h.Warning)
	assert.Equal(t, "cabin-1", h.CabinID)
}

func TestManager_CreateHold_DuplicateRejected(t *testing.T) {
	m := NewManager(nil, 900)
	ctx := context.Background()

	first, err := m.CreateHold(ctx, "cabin-1", "2026-08-01", "2026-08-04", nil, "Dana")
	require.NoError(t, err)

	_, err = m.CreateHold(ctx, "cabin-1", "2026-08-01", "2026-08-04", nil, "Yossi")
	assert.ErrorIs(t, err, apierr.ErrHoldAlreadyExists)

	var conflict *apierr.HoldConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ExpiresAt, conflict.ExpiresAt)
}

func TestManager_ReleaseHold(t *testing.T) {
	m := NewManager(nil, 900)
	ctx := context.Background()

	h, err := m.CreateHold(ctx, "cabin-2", "2026-09-01", "2026-09-03", nil, "Dana")
	require.NoError(t, err)

	require.NoError(t, m.ReleaseHold(ctx, h.ID))

	_, err = m.GetHold(ctx, h.ID)
	assert.ErrorIs(t, err, apierr.ErrHoldNotFound)
}

func TestManager_ConvertHoldToBooking(t *testing.T) {
	m := NewManager(nil, 900)
	ctx := context.Background()

	h, err := m.CreateHold(ctx, "cabin-3", "2026-10-01", "2026-10-03", nil, "Dana")
	require.NoError(t, err)

	bookingID := h.ID // reuse as a stand-in booking id for the test
	require.NoError(t, m.ConvertHoldToBooking(ctx, h.ID, bookingID))

	exists, err := m.CheckHoldExists(ctx, "cabin-3", "2026-10-01", "2026-10-03")
	require.NoError(t, err)
	assert.False(t, exists)
}
