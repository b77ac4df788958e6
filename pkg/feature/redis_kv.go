package feature

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV adapts a go-redis client to the KVClient surface.
type RedisKV struct {
	client        redis.UniversalClient
	scanBatchSize int64
}

var _ KVClient = (*RedisKV)(nil)

// NewRedisKV wraps a connected go-redis client. The client's own timeouts
// govern how long operations block; the engine adds none of its own.
func NewRedisKV(client redis.UniversalClient) *RedisKV {
	return &RedisKV{
		client:        client,
		scanBatchSize: 1000,
	}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Keys scans for matching keys in batches; SCAN keeps the store responsive
// where the KEYS command would block it.
func (r *RedisKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, r.scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

func (r *RedisKV) MGet(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	raw, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	vals := make([]string, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			vals[i] = s
		}
	}
	return vals, nil
}

func (r *RedisKV) IsConnected(ctx context.Context) bool {
	return r.client.Ping(ctx).Err() == nil
}
