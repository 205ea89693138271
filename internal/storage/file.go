package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// FileStore keeps save slots as INI text files in a saves directory.
// Filenames are parameterized by slot only, matching the original
// engine's fixed save path convention; a slot holds whichever story was
// saved into it last.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed save store rooted at dir.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}
}

func (f *FileStore) path(slot int) string {
	return filepath.Join(f.dir, fmt.Sprintf("save_slot_%d.ini", slot))
}

// SaveGame writes the snapshot into the slot file, creating the saves
// directory on first use.
func (f *FileStore) SaveGame(_ context.Context, snap *state.Snapshot, slot int) error {
	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create saves directory: %w", err)
	}
	if err := os.WriteFile(f.path(slot), snap.Encode(), 0o644); err != nil {
		return fmt.Errorf("failed to write save slot %d: %w", slot, err)
	}
	f.logger.Info("game saved", "slot", slot, "story", snap.StoryName)
	return nil
}

// LoadGame reads and parses the slot file.
func (f *FileStore) LoadGame(_ context.Context, _ string, slot int) (*state.Snapshot, error) {
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	data, err := os.ReadFile(f.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %d", ErrNoSave, slot)
		}
		return nil, fmt.Errorf("failed to read save slot %d: %w", slot, err)
	}
	snap, err := state.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("save slot %d is corrupt: %w", slot, err)
	}
	f.logger.Info("game loaded", "slot", slot, "story", snap.StoryName)
	return snap, nil
}

// SaveExists is a pure existence probe on the slot file.
func (f *FileStore) SaveExists(_ context.Context, _ string, slot int) (bool, error) {
	if !ValidSlot(slot) {
		return false, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	_, err := os.Stat(f.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Ping verifies the saves directory is usable (or creatable).
func (f *FileStore) Ping(_ context.Context) error {
	return os.MkdirAll(f.dir, 0o755)
}

func (f *FileStore) Close() error { return nil }
