package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	gs.AddItem(s.FindItem("key"))
	gs.AddItem(s.FindItem("torch"))
	gs.CurrentRoom = s.FindRoom("hall")
	gs.TurnCount = 12
	gs.DeathCount = 1
	gs.Score = 40
	s.Quests[0].Completed = true

	data := gs.Snapshot().Encode()

	text := string(data)
	assert.Contains(t, text, "[PLAYER]")
	assert.Contains(t, text, "current_room=hall")
	assert.Contains(t, text, "item_0=key")
	assert.Contains(t, text, "quest_0=1")
	assert.Contains(t, text, "quest_1=0")

	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)

	// Restore into a fresh playthrough of the same story.
	fresh := newTestStory()
	gs2, err := NewGameState(fresh)
	require.NoError(t, err)
	require.NoError(t, gs2.Restore(snap))

	assert.Equal(t, "hall", gs2.CurrentRoom.ID)
	assert.Equal(t, 12, gs2.TurnCount)
	assert.Equal(t, 1, gs2.DeathCount)
	assert.Equal(t, 40, gs2.Score)
	assert.False(t, gs2.GameWon)
	assert.Equal(t, []string{"key", "torch"}, gs2.Inventory)
	assert.Equal(t, 5, gs2.InventoryWeight)
	assert.True(t, fresh.Quests[0].Completed, "quest flags survive the round trip")
	assert.False(t, fresh.Quests[1].Completed)
}

func TestRestore_UnresolvableRoomIsFatalAndAtomic(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)
	gs.AddItem(s.FindItem("key"))
	gs.TurnCount = 3

	snap := &Snapshot{CurrentRoom: "atlantis", TurnCount: 99, Items: []string{"torch"}}
	err = gs.Restore(snap)
	require.Error(t, err)

	// Nothing committed on failure.
	assert.Equal(t, "start", gs.CurrentRoom.ID)
	assert.Equal(t, 3, gs.TurnCount)
	assert.Equal(t, []string{"key"}, gs.Inventory)
}

func TestRestore_UnknownItemSkipped(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	snap := &Snapshot{CurrentRoom: "hall", Items: []string{"key", "vorpal_sword", "torch"}}
	require.NoError(t, gs.Restore(snap))

	assert.Equal(t, []string{"key", "torch"}, gs.Inventory)
	// Weight is recomputed from resolved items, not trusted from disk.
	assert.Equal(t, 5, gs.InventoryWeight)
}

func TestRestore_ItemLivesInOnePlace(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	// The key was carried at save time but dropped afterwards.
	start := s.FindRoom("start")
	require.Contains(t, start.Items, "key")

	snap := &Snapshot{CurrentRoom: "start", Items: []string{"key"}}
	require.NoError(t, gs.Restore(snap))

	assert.Equal(t, []string{"key"}, gs.Inventory)
	assert.NotContains(t, start.Items, "key")
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	_, err := DecodeSnapshot([]byte("[PLAYER]\nturn_count=4\n"))
	assert.Error(t, err, "a snapshot without a room is unusable")

	// Stray lines and comments are ignored, same as the story format.
	data := strings.Join([]string{
		"# save file",
		"[PLAYER]",
		"current_room=hall",
		"not a pair",
		"turn_count=7",
	}, "\n")
	snap, err := DecodeSnapshot([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "hall", snap.CurrentRoom)
	assert.Equal(t, 7, snap.TurnCount)
}
