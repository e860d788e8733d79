package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// flushScanCount is the SCAN page size hint used by Flush. Each page is
// deleted before the next one is requested.
const flushScanCount = 1000

// Redis is a Store backed by a redis server, encoding values with msgpack.
type Redis struct {
	client redis.UniversalClient
}

var _ Store = (*Redis)(nil)

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	resp, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("evt.name", "cache.get").Str("key", key).Msg("failed to get value from redis")
		}
		return false
	}
	if err := msgpack.Unmarshal(resp, dest); err != nil {
		log.Error().Err(err).Str("evt.name", "cache.get").Str("key", key).Msg("failed to unmarshal value from msgpack from redis, dropping entry")
		r.Remove(ctx, key)
		return false
	}
	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if l := log.Trace(); l.Enabled() {
		l.Str("key", key).Dur("ttl", ttl).Msg("setting value to redis")
	}
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "cache.set").Str("key", key).Msg("failed to marshal value with msgpack")
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Error().Err(err).Str("evt.name", "cache.set").Str("key", key).Msg("failed to set value to redis")
	}
}

func (r *Redis) Remove(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Str("evt.name", "cache.remove").Strs("keys", keys).Msg("failed to delete value from redis")
	}
}

func (r *Redis) Exists(ctx context.Context, key string) bool {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("evt.name", "cache.exists").Str("key", key).Msg("failed to check key existence in redis")
		return false
	}
	return n > 0
}

// Flush removes every key starting with prefix. It walks the keyspace with
// SCAN so the server is never blocked by a single large command.
func (r *Redis) Flush(ctx context.Context, prefix string) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", flushScanCount).Result()
		if err != nil {
			log.Error().Err(err).Str("evt.name", "cache.flush").Str("prefix", prefix).Msg("failed to scan keys for cache flush")
			return
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("evt.name", "cache.flush").Str("prefix", prefix).Msg("failed to clear cache")
				return
			}
			removed += len(keys)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	log.Debug().Str("evt.name", "cache.flush").Str("prefix", prefix).Int("removed", removed).Msg("cache flushed")
}
