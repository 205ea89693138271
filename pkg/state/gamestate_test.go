package state

import (
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStory builds a small world: start -> hall, with a key and an
// anvil on the floor, a torch-lit steward situation and two quests.
func newTestStory() *story.Story {
	return story.New(
		story.Metadata{
			Title:              "Test Adventure",
			StartRoom:          "start",
			MaxInventoryWeight: 50,
		},
		[]*story.Room{
			{
				ID:          "start",
				Name:        "Entry Hall",
				Description: "A draughty hall.",
				Exits:       []story.Exit{{Direction: "north", RoomID: "hall"}},
				Items:       []string{"key", "anvil"},
			},
			{
				ID:          "hall",
				Name:        "Great Hall",
				Description: "Tapestries line the walls.",
				Exits:       []story.Exit{{Direction: "south", RoomID: "start"}},
				NPCs:        []string{"steward"},
			},
		},
		[]*story.Item{
			{ID: "key", Name: "Brass Key", Weight: 2, Takeable: true, Useable: true, Unlocks: true},
			{ID: "anvil", Name: "Anvil", Weight: 1000, Takeable: true},
			{ID: "torch", Name: "Torch", Weight: 3, Takeable: true, Useable: true, Illuminates: true},
		},
		[]*story.NPC{
			{ID: "steward", Name: "Steward", Location: "hall", Dialog: []string{"Hello.", "Still here?"}},
		},
		[]*story.Quest{
			{ID: "find_key", Name: "Find the Key", Required: true, CompletionItem: "key"},
			{ID: "meet_steward", Name: "Meet the Steward", CompletionNPC: "steward"},
		},
	)
}

func TestNewGameState(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	assert.Equal(t, "start", gs.CurrentRoom.ID)
	assert.Equal(t, "start", gs.RespawnRoom)
	assert.True(t, gs.CurrentRoom.Visited)
	assert.Zero(t, gs.TurnCount)
	assert.False(t, gs.GameWon)
	assert.NotEqual(t, gs.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestNewGameState_BadStartRoom(t *testing.T) {
	s := story.New(story.Metadata{StartRoom: "nowhere"}, nil, nil, nil, nil)
	_, err := NewGameState(s)
	assert.Error(t, err)
}

func TestGameState_InventoryWeightInvariant(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	key := s.FindItem("key")
	torch := s.FindItem("torch")

	gs.AddItem(key)
	gs.AddItem(torch)
	assert.Equal(t, []string{"key", "torch"}, gs.Inventory)
	assert.Equal(t, 5, gs.InventoryWeight)

	require.True(t, gs.RemoveItem(key))
	assert.Equal(t, []string{"torch"}, gs.Inventory)
	assert.Equal(t, 3, gs.InventoryWeight)

	assert.False(t, gs.RemoveItem(key), "removing twice must fail")
	assert.Equal(t, 3, gs.InventoryWeight)
}

func TestGameState_HasLight(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	assert.False(t, gs.HasLight())
	gs.AddItem(s.FindItem("key"))
	assert.False(t, gs.HasLight())
	gs.AddItem(s.FindItem("torch"))
	assert.True(t, gs.HasLight())
}

func TestGameState_ItemMatching(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)
	gs.AddItem(s.FindItem("key"))

	// Exact matching accepts id and display name, case-insensitively.
	assert.NotNil(t, gs.FindInventoryItem("key", false))
	assert.NotNil(t, gs.FindInventoryItem("Brass Key", false))
	assert.Nil(t, gs.FindInventoryItem("brass", false))

	// Substring matching is the forgiving examine/use path.
	assert.NotNil(t, gs.FindInventoryItem("brass", true))

	// Room search only sees what is on the floor.
	assert.NotNil(t, gs.FindRoomItem("anvil", false))
	assert.Nil(t, gs.FindRoomItem("torch", false))
}

func TestGameState_FindRoomNPC(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	assert.Nil(t, gs.FindRoomNPC("steward"), "steward is not in the start room")

	gs.CurrentRoom = s.FindRoom("hall")
	assert.NotNil(t, gs.FindRoomNPC("steward"))
	assert.NotNil(t, gs.FindRoomNPC("stew"), "contains-match applies to npcs")
	assert.Nil(t, gs.FindRoomNPC("dragon"))
}

func TestGameState_MarkVictoryMonotonic(t *testing.T) {
	s := newTestStory()
	gs, err := NewGameState(s)
	require.NoError(t, err)

	gs.MarkVictory()
	assert.True(t, gs.GameWon)
	gs.MarkVictory()
	assert.True(t, gs.GameWon)
}
