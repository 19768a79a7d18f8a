package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/internal/testutil"
	"github.com/leapstack-labs/leapverb/pkg/world"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(DriverSQLite, ":memory:"))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSeed() Seed {
	return Seed{
		Start: "hall",
		Rooms: []*world.Room{
			{ID: "hall", Description: "A draughty hall.", Exits: map[string]string{"north": "study"}},
			{ID: "study", Description: "A quiet study.", Exits: map[string]string{"south": "hall"}},
		},
		Objects: []*world.Object{
			{ID: "key", Name: "Old Key", Keywords: []string{"old", "key"}, Location: "hall"},
			{ID: "lamp", Name: "Brass Lamp", Location: world.Inventory},
			{ID: "desk", Name: "Desk", Location: "study", Fixed: true},
		},
	}
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := setupTestStore(t)
	require.NoError(t, store.Seed(context.Background(), testSeed()))
	return store
}

func TestStore_OpenClose(t *testing.T) {
	store := NewStore(nil)
	require.NoError(t, store.Open("", ":memory:"))
	assert.NoError(t, store.Close())
}

func TestStore_OpenUnsupportedDriver(t *testing.T) {
	store := NewStore(nil)
	err := store.Open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported world driver")
}

func TestStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	for _, table := range []string{"rooms", "exits", "objects", "player", "transcript"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}
}

func TestStore_NotOpened(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	_, err := store.EntitiesInScope(ctx)
	assert.Error(t, err)
	_, err = store.CurrentRoom(ctx)
	assert.Error(t, err)
	assert.Error(t, store.MoveObject(ctx, "key", "hall"))
	assert.Error(t, store.Migrate())
}

func TestStore_Seeded(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	ok, err := store.Seeded(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Seed(ctx, testSeed()))
	ok, err = store.Seeded(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// Seeding again replaces rather than duplicates.
	require.NoError(t, store.Seed(ctx, testSeed()))
	objs, err := store.Objects(ctx)
	require.NoError(t, err)
	assert.Len(t, objs, 3)
}

func TestStore_Scope(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	tests := []struct {
		name  string
		fetch func() ([]world.Entity, error)
		want  []string
	}{
		{
			name:  "scope is room plus inventory in seed order",
			fetch: func() ([]world.Entity, error) { return store.EntitiesInScope(ctx) },
			want:  []string{"key", "lamp"},
		},
		{
			name:  "inventory only",
			fetch: func() ([]world.Entity, error) { return store.Inventory(ctx) },
			want:  []string{"lamp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fetch()
			require.NoError(t, err)
			var ids []string
			for _, e := range got {
				ids = append(ids, e.(*world.Object).ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStore_ObjectWords(t *testing.T) {
	store := seededStore(t)
	objs, err := store.Objects(context.Background())
	require.NoError(t, err)
	require.Len(t, objs, 3)

	assert.Equal(t, []string{"old", "key"}, objs[0].Words())
	assert.Equal(t, []string{"brass", "lamp"}, objs[1].Words())
	assert.True(t, objs[2].Fixed)
}

func TestStore_MoveObject(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	require.NoError(t, store.MoveObject(ctx, "key", world.Inventory))
	inv, err := store.Inventory(ctx)
	require.NoError(t, err)
	assert.Len(t, inv, 2)

	err = store.MoveObject(ctx, "ghost", "hall")
	assert.ErrorIs(t, err, world.ErrNotFound)
}

func TestStore_MovePlayer(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	room, err := store.CurrentRoom(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hall", room.ID)
	assert.Equal(t, map[string]string{"north": "study"}, room.Exits)

	_, err = store.MovePlayer(ctx, "west")
	assert.ErrorIs(t, err, world.ErrNoExit)

	room, err = store.MovePlayer(ctx, "north")
	require.NoError(t, err)
	assert.Equal(t, "study", room.ID)

	scope, err := store.EntitiesInScope(ctx)
	require.NoError(t, err)
	require.Len(t, scope, 2)
	assert.Equal(t, "lamp", scope[0].(*world.Object).ID)
	assert.Equal(t, "desk", scope[1].(*world.Object).ID)
}

func TestStore_Rooms(t *testing.T) {
	store := seededStore(t)
	rooms, err := store.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "hall", rooms[0].ID)
	assert.Equal(t, "study", rooms[1].ID)
}

func TestStore_CurrentRoomUnseeded(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.CurrentRoom(context.Background())
	assert.ErrorIs(t, err, world.ErrNotFound)
}

func TestStore_Transcript(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	session := NewSessionID()
	other := NewSessionID()
	require.NotEqual(t, session, other)

	turns := []*Turn{
		{SessionID: session, Command: "look", Output: "A draughty hall.", Understood: true},
		{SessionID: session, Command: "xyzzy", Output: "I don't understand that."},
		{SessionID: other, Command: "inventory", Output: "You carry nothing.", Understood: true},
	}
	for _, turn := range turns {
		require.NoError(t, store.RecordTurn(ctx, turn))
		assert.NotEmpty(t, turn.ID)
	}

	got, err := store.Transcript(ctx, session)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Seq)
	assert.Equal(t, "look", got[0].Command)
	assert.True(t, got[0].Understood)
	assert.Equal(t, 2, got[1].Seq)
	assert.False(t, got[1].Understood)

	err = store.RecordTurn(ctx, &Turn{Command: "look"})
	assert.Error(t, err)
}
