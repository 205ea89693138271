package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *state.Snapshot {
	return &state.Snapshot{
		StoryName:   "Test Adventure",
		Version:     state.SnapshotVersion,
		CurrentRoom: "hall",
		TurnCount:   9,
		Score:       15,
		Items:       []string{"key", "torch"},
		Weight:      5,
		QuestFlags:  []bool{true, false},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "saves"), nil)
	ctx := context.Background()

	exists, err := store.SaveExists(ctx, "Test Adventure", 2)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.SaveGame(ctx, testSnapshot(), 2))

	exists, err = store.SaveExists(ctx, "Test Adventure", 2)
	require.NoError(t, err)
	assert.True(t, exists)

	snap, err := store.LoadGame(ctx, "Test Adventure", 2)
	require.NoError(t, err)
	assert.Equal(t, "hall", snap.CurrentRoom)
	assert.Equal(t, 9, snap.TurnCount)
	assert.Equal(t, []string{"key", "torch"}, snap.Items)
	assert.Equal(t, []bool{true, false}, snap.QuestFlags)
}

func TestFileStore_SlotValidation(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	ctx := context.Background()

	for _, slot := range []int{0, -1, 4, 99} {
		err := store.SaveGame(ctx, testSnapshot(), slot)
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %d", slot)

		_, err = store.LoadGame(ctx, "x", slot)
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %d", slot)
	}
}

func TestFileStore_EmptySlot(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)
	_, err := store.LoadGame(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrNoSave)
}

func TestFileStore_CorruptSave(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "save_slot_1.ini"), []byte("[PLAYER]\nscore=3\n"), 0o644))

	_, err := store.LoadGame(context.Background(), "x", 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSave))
}

func TestMockStore(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, testSnapshot(), 1))
	snap, err := store.LoadGame(ctx, "Test Adventure", 1)
	require.NoError(t, err)
	assert.Equal(t, 15, snap.Score)

	store.SetSaveError(errors.New("disk full"))
	assert.Error(t, store.SaveGame(ctx, testSnapshot(), 1))
}
