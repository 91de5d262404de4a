package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/pable/doubles-league/internal/model"
)

// RedisHashKey is the hash holding one JSON snapshot per player id field.
const RedisHashKey = "league:player_stats"

// RedisClient is the subset of *redis.Client the store needs.
type RedisClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore is a SnapshotStore backed by a single Redis hash.
type RedisStore struct {
	client RedisClient
	key    string
}

// NewRedisStore wraps a Redis client. An empty key means RedisHashKey.
func NewRedisStore(client RedisClient, key string) *RedisStore {
	if key == "" {
		key = RedisHashKey
	}
	return &RedisStore{client: client, key: key}
}

// WriteSnapshot implements SnapshotStore.
func (s *RedisStore) WriteSnapshot(ctx context.Context, snap model.CachedPlayerStats) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot for player %d: %w", snap.PlayerID, err)
	}
	field := strconv.FormatInt(snap.PlayerID, 10)
	if err := s.client.HSet(ctx, s.key, field, string(data)).Err(); err != nil {
		return fmt.Errorf("redis hset %s/%s: %w", s.key, field, err)
	}
	return nil
}

// ReadSnapshot implements SnapshotStore.
func (s *RedisStore) ReadSnapshot(ctx context.Context, playerID int64) (*model.CachedPlayerStats, error) {
	field := strconv.FormatInt(playerID, 10)
	raw, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget %s/%s: %w", s.key, field, err)
	}
	var snap model.CachedPlayerStats
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot for player %d: %w", playerID, err)
	}
	return &snap, nil
}

// ListSnapshots implements SnapshotStore. Rows are ordered by rating
// descending, then player id.
func (s *RedisStore) ListSnapshots(ctx context.Context) ([]model.CachedPlayerStats, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", s.key, err)
	}
	out := make([]model.CachedPlayerStats, 0, len(all))
	for field, raw := range all {
		var snap model.CachedPlayerStats
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", field, err)
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

// ClearSnapshots implements SnapshotStore.
func (s *RedisStore) ClearSnapshots(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}
