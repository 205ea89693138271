// Package storage persists game-state snapshots to numbered save slots.
// Two backends share one contract: the file store writes the snapshot
// text into the saves directory, the redis store keeps the identical
// text under namespaced keys for shared deployments.
package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// MaxSlots is the highest valid save slot; slots are numbered from 1.
const MaxSlots = 3

var (
	// ErrInvalidSlot reports a slot outside [1, MaxSlots].
	ErrInvalidSlot = errors.New("invalid save slot")

	// ErrNoSave reports an empty slot on load.
	ErrNoSave = errors.New("no save in slot")
)

// Store is the persistence contract for save slots. Loading returns the
// parsed snapshot; resolving it against the world belongs to the caller
// so a failed load never half-mutates game state.
type Store interface {
	SaveGame(ctx context.Context, snap *state.Snapshot, slot int) error
	LoadGame(ctx context.Context, storyName string, slot int) (*state.Snapshot, error)
	SaveExists(ctx context.Context, storyName string, slot int) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// ValidSlot reports whether a slot number is inside the fixed range.
func ValidSlot(slot int) bool {
	return slot >= 1 && slot <= MaxSlots
}
