// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/roombook/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.RegistryConfig{
		DBPath: filepath.Join(t.TempDir(), "registry.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleInventory = `rooms:
  - room_id: "MSA 3.500"
    capacity: 30
    projector: true
    whiteboard: true
    pc: true
  - room_id: "MSB 1.210"
    capacity: 12
    blackboard: true
  - room_id: "MSA 2.110"
    capacity: 60
    projector: true
    smartboard: true
    microphone: true
`

func TestSeedAndListRooms(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	summary, err := store.Seed(ctx, writeInventory(t, sampleInventory))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Added)
	assert.Equal(t, 0, summary.Updated)

	rooms, err := store.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	// Ordered by id.
	assert.Equal(t, "MSA 2.110", rooms[0].RoomID)
	assert.Equal(t, "MSA 3.500", rooms[1].RoomID)
	assert.Equal(t, "MSB 1.210", rooms[2].RoomID)

	assert.Equal(t, 30, rooms[1].Capacity)
	assert.True(t, rooms[1].Projector)
	assert.True(t, rooms[1].Whiteboard)
	assert.False(t, rooms[1].Blackboard)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path := writeInventory(t, sampleInventory)
	_, err := store.Seed(ctx, path)
	require.NoError(t, err)

	summary, err := store.Seed(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 3, summary.Updated)

	rooms, err := store.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)
}

func TestSeedUpdatesChangedRoom(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Seed(ctx, writeInventory(t, sampleInventory))
	require.NoError(t, err)

	updated := `rooms:
  - room_id: "MSB 1.210"
    capacity: 16
    blackboard: true
    projector: true
`
	_, err = store.Seed(ctx, writeInventory(t, updated))
	require.NoError(t, err)

	room, err := store.FetchEquipment(ctx, "MSB 1.210")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, 16, room.Capacity)
	assert.True(t, room.Projector)
}

func TestSeedRejectsInvalidInventory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
	}{
		{"empty room id", "rooms:\n  - room_id: \"\"\n    capacity: 10\n"},
		{"zero capacity", "rooms:\n  - room_id: \"MSA 1.100\"\n    capacity: 0\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Seed(ctx, writeInventory(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestFetchEquipmentUnknownRoom(t *testing.T) {
	store := newTestStore(t)

	room, err := store.FetchEquipment(context.Background(), "no-such-room")
	require.NoError(t, err)
	assert.Nil(t, room)
}
