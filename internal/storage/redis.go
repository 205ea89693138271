package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// RedisStore keeps save slots in Redis, one key per story+slot, holding
// the same snapshot text the file store writes. Saves never expire.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed save store.
func NewRedisStore(addr string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: logger,
	}
}

func key(storyName string, slot int) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(storyName), " ", "_"))
	return fmt.Sprintf("save:%s:%d", slug, slot)
}

func (r *RedisStore) SaveGame(ctx context.Context, snap *state.Snapshot, slot int) error {
	if !ValidSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	k := key(snap.StoryName, slot)
	if err := r.client.Set(ctx, k, string(snap.Encode()), 0).Err(); err != nil {
		r.logger.Error("failed to save game", "key", k, "error", err)
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	r.logger.Info("game saved", "key", k, "story", snap.StoryName)
	return nil
}

func (r *RedisStore) LoadGame(ctx context.Context, storyName string, slot int) (*state.Snapshot, error) {
	if !ValidSlot(slot) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	k := key(storyName, slot)
	data, err := r.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %d", ErrNoSave, slot)
		}
		return nil, fmt.Errorf("failed to load from redis: %w", err)
	}
	snap, err := state.DecodeSnapshot([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("save slot %d is corrupt: %w", slot, err)
	}
	r.logger.Info("game loaded", "key", k, "story", snap.StoryName)
	return snap, nil
}

func (r *RedisStore) SaveExists(ctx context.Context, storyName string, slot int) (bool, error) {
	if !ValidSlot(slot) {
		return false, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	n, err := r.client.Exists(ctx, key(storyName, slot)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to probe redis: %w", err)
	}
	return n > 0, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("failed to close redis connection", "error", err)
		return err
	}
	return nil
}
