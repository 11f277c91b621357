// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/roombook/internal/schedule"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t)
	_, err := store.Seed(context.Background(), writeInventory(t, sampleInventory))
	require.NoError(t, err)
	return store
}

func TestBookReservesAllSlots(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	booking, err := store.Book(ctx, "MSA 3.500", "2026-03-02", "09:00:00", "10:30:00", "ada")
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, []string{
		"2026-03-02 09:00:00",
		"2026-03-02 09:30:00",
		"2026-03-02 10:00:00",
	}, booking.Slots)

	booked, err := store.FetchBookings(ctx, "2026-03-02", 1)
	require.NoError(t, err)
	require.Contains(t, booked, "MSA 3.500")
	assert.Len(t, booked["MSA 3.500"], 3)
	_, ok := booked["MSA 3.500"]["2026-03-02 09:30:00"]
	assert.True(t, ok)
}

func TestBookRejectsOverlap(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := store.Book(ctx, "MSA 3.500", "2026-03-02", "09:00:00", "10:00:00", "ada")
	require.NoError(t, err)

	// Partially overlapping window collides on the 09:30 slot.
	_, err = store.Book(ctx, "MSA 3.500", "2026-03-02", "09:30:00", "11:00:00", "grace")
	assert.ErrorIs(t, err, ErrSlotTaken)

	// The failed booking must not have written its non-colliding slots.
	booked, err := store.FetchBookings(ctx, "2026-03-02", 1)
	require.NoError(t, err)
	assert.Len(t, booked["MSA 3.500"], 2)
}

func TestBookAdjacentWindowsAllowed(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := store.Book(ctx, "MSB 1.210", "2026-03-02", "09:00:00", "10:00:00", "")
	require.NoError(t, err)

	// End time is exclusive, so a back-to-back booking is fine.
	_, err = store.Book(ctx, "MSB 1.210", "2026-03-02", "10:00:00", "11:00:00", "")
	assert.NoError(t, err)
}

func TestBookDifferentRoomsSameSlot(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := store.Book(ctx, "MSA 3.500", "2026-03-02", "09:00:00", "09:30:00", "")
	require.NoError(t, err)
	_, err = store.Book(ctx, "MSB 1.210", "2026-03-02", "09:00:00", "09:30:00", "")
	assert.NoError(t, err)
}

func TestBookUnknownRoom(t *testing.T) {
	store := seededStore(t)

	_, err := store.Book(context.Background(), "no-such-room", "2026-03-02", "09:00:00", "10:00:00", "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestBookInvalidWindow(t *testing.T) {
	store := seededStore(t)

	_, err := store.Book(context.Background(), "MSA 3.500", "2026-03-02", "10:00:00", "09:00:00", "")
	var verr *schedule.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCancelRemovesAllSlots(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	booking, err := store.Book(ctx, "MSA 3.500", "2026-03-02", "09:00:00", "10:30:00", "")
	require.NoError(t, err)

	require.NoError(t, store.Cancel(ctx, booking.ID))

	booked, err := store.FetchBookings(ctx, "2026-03-02", 1)
	require.NoError(t, err)
	assert.Empty(t, booked["MSA 3.500"])

	assert.ErrorIs(t, store.Cancel(ctx, booking.ID), ErrBookingNotFound)
}

func TestFetchBookingsWindow(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := store.Book(ctx, "MSA 3.500", "2026-03-02", "09:00:00", "09:30:00", "")
	require.NoError(t, err)
	_, err = store.Book(ctx, "MSA 3.500", "2026-03-03", "09:00:00", "09:30:00", "")
	require.NoError(t, err)

	// One-day window only sees the first booking.
	booked, err := store.FetchBookings(ctx, "2026-03-02", 1)
	require.NoError(t, err)
	assert.Len(t, booked["MSA 3.500"], 1)

	booked, err = store.FetchBookings(ctx, "2026-03-02", 2)
	require.NoError(t, err)
	assert.Len(t, booked["MSA 3.500"], 2)

	booked, err = store.FetchBookings(ctx, "2026-03-04", 1)
	require.NoError(t, err)
	assert.Empty(t, booked["MSA 3.500"])
}
