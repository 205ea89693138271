// Package state holds the mutable runtime state of one playthrough,
// layered over an immutable story world.
package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/story"
)

// Combat is the sub-state present while the player is engaged with an
// opponent. It clears when combat ends, by victory, death or fleeing.
type Combat struct {
	OpponentID string
	OpponentHP int
	PlayerHP   int
}

// GameState is the per-playthrough runtime data. The Story reference is
// read-only; all mutation flows through the command engine one turn at a
// time, so no locking is needed.
type GameState struct {
	ID    uuid.UUID
	Story *story.Story

	CurrentRoom *story.Room
	Inventory   []string // item ids, ordered, no duplicates

	// InventoryWeight is denormalized and must always equal the sum of
	// the weights of the items in Inventory.
	InventoryWeight int

	TurnCount  int
	DeathCount int
	Score      int
	GameWon    bool // monotonic

	RespawnRoom string
	Combat      *Combat

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGameState starts a fresh playthrough at the story's start room.
func NewGameState(s *story.Story) (*GameState, error) {
	start := s.FindRoom(s.Metadata.StartRoom)
	if start == nil {
		return nil, fmt.Errorf("start room %q does not resolve", s.Metadata.StartRoom)
	}

	respawn := s.Metadata.RespawnRoom
	if respawn == "" {
		respawn = s.Metadata.StartRoom
	}

	start.Visited = true
	now := time.Now()
	return &GameState{
		ID:          uuid.New(),
		Story:       s,
		CurrentRoom: start,
		RespawnRoom: respawn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasItem reports whether an item id is in the inventory.
func (gs *GameState) HasItem(id string) bool {
	for _, it := range gs.Inventory {
		if it == id {
			return true
		}
	}
	return false
}

// AddItem appends an item to the inventory and bumps the carried weight.
func (gs *GameState) AddItem(item *story.Item) {
	gs.Inventory = append(gs.Inventory, item.ID)
	gs.InventoryWeight += item.Weight
}

// RemoveItem drops an item id from the inventory, keeping the order of
// the remaining items, and adjusts the carried weight.
func (gs *GameState) RemoveItem(item *story.Item) bool {
	for i, id := range gs.Inventory {
		if id == item.ID {
			gs.Inventory = append(gs.Inventory[:i], gs.Inventory[i+1:]...)
			gs.InventoryWeight -= item.Weight
			return true
		}
	}
	return false
}

// HasLight reports whether any carried item illuminates. Possession is
// enough: the renderer checks the inventory directly, a torch does not
// have to be lit first.
func (gs *GameState) HasLight() bool {
	for _, id := range gs.Inventory {
		if item := gs.Story.FindItem(id); item != nil && item.Illuminates {
			return true
		}
	}
	return false
}

// FindInventoryItem matches a noun against carried items by id or name,
// case-insensitively. With substring set, a contains-match also counts;
// take/drop stay exact while examine/use are forgiving.
func (gs *GameState) FindInventoryItem(noun string, substring bool) *story.Item {
	for _, id := range gs.Inventory {
		item := gs.Story.FindItem(id)
		if item != nil && matchItem(item, noun, substring) {
			return item
		}
	}
	return nil
}

// FindRoomItem matches a noun against the current room's items.
func (gs *GameState) FindRoomItem(noun string, substring bool) *story.Item {
	for _, id := range gs.CurrentRoom.Items {
		item := gs.Story.FindItem(id)
		if item != nil && matchItem(item, noun, substring) {
			return item
		}
	}
	return nil
}

// FindRoomNPC matches a noun against the current room's NPCs by id or
// name, exact or contains.
func (gs *GameState) FindRoomNPC(noun string) *story.NPC {
	lower := strings.ToLower(noun)
	for _, id := range gs.CurrentRoom.NPCs {
		npc := gs.Story.FindNPC(id)
		if npc == nil {
			continue
		}
		name := strings.ToLower(npc.Name)
		if strings.EqualFold(npc.ID, noun) || name == lower ||
			strings.Contains(name, lower) || strings.Contains(strings.ToLower(npc.ID), lower) {
			return npc
		}
	}
	return nil
}

// MarkVictory sets the victory flag. It never unsets.
func (gs *GameState) MarkVictory() {
	gs.GameWon = true
}

func matchItem(item *story.Item, noun string, substring bool) bool {
	lower := strings.ToLower(noun)
	name := strings.ToLower(item.Name)
	id := strings.ToLower(item.ID)
	if name == lower || id == lower {
		return true
	}
	if substring {
		return strings.Contains(name, lower) || strings.Contains(id, lower)
	}
	return false
}
