package infra

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"eldenlens.dev/backend/internal/app/appconfig"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/pkg/cache"
)

const memoryCleanupInterval = 10 * time.Minute

// CacheStore picks the backend every named cache is kept in.
func CacheStore(conf *appconfig.Config, client *redis.Client) cache.Store {
	log.Info().
		Str("evt.name", "infra.cache.backend").
		Str("backend", string(conf.CacheBackend)).
		Msg("cache backend selected")

	if conf.CacheBackend == appconfig.CacheBackendMemory {
		return cache.NewMemory(memoryCleanupInterval)
	}
	return cache.NewRedis(client)
}

func Caches(store cache.Store) *modelcache.Caches {
	return modelcache.New(store)
}
