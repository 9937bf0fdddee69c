package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the blog client.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisRepository persists the session record under a single Redis key. It is the
// drop-in alternative to [FileRepository] for headless clients (bots, kiosks)
// whose local filesystem is ephemeral.
type RedisRepository struct {
	redis redis.UniversalClient
	key   string
}

// NewRedisRepository creates a [RedisRepository] storing the record at key.
// An empty key defaults to "scribe:session".
func NewRedisRepository(client redis.UniversalClient, key string) (*RedisRepository, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if key == "" {
		key = "scribe:session"
	}
	return &RedisRepository{redis: client, key: key}, nil
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *RedisRepository) Load(ctx context.Context) (Record, bool, error) {
	data, err := r.redis.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, errors.Join(ErrRecordCorrupt, err)
	}

	return rec, true, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *RedisRepository) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	if err := r.redis.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Wipe describes the wipe operation and its observable behavior.
//
// Wipe may return an error when input validation, dependency calls, or security checks fail.
// Wipe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *RedisRepository) Wipe(ctx context.Context) error {
	if err := r.redis.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
