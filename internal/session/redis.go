package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/quizrogue/internal/game"
)

// keyPrefix namespaces run keys: quizrogue:game:{doc}:{player} -> entry JSON
const keyPrefix = "quizrogue:"

// redisEntry is the stored form of a run: the save snapshot plus the run
// start time, which saves do not carry.
type redisEntry struct {
	Snapshot  game.Snapshot `json:"snapshot"`
	StartedAt time.Time     `json:"started_at"`
}

// RedisStore keeps runs in Redis so several server processes can share
// them. Each Put refreshes the TTL.
type RedisStore struct {
	rdb     *redis.Client
	enemies *game.EnemyGenerator
	ttl     time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. The enemy generator rebuilds an
// enemy if a stored one cannot be decoded.
func NewRedisStore(rdb *redis.Client, enemies *game.EnemyGenerator, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, enemies: enemies, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) (*game.State, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", key, err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	if e.Snapshot.Aux.Version > game.SnapshotVersion {
		return nil, fmt.Errorf("session %s: unsupported snapshot version %d", key, e.Snapshot.Aux.Version)
	}
	return game.FromSnapshot(e.Snapshot, r.enemies, e.StartedAt), nil
}

func (r *RedisStore) Put(ctx context.Context, key string, s *game.State) error {
	raw, err := json.Marshal(redisEntry{Snapshot: game.ToSnapshot(s), StartedAt: s.StartTime})
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put session %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}
