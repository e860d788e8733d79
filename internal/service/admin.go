package service

import (
	"context"

	"github.com/rs/zerolog/log"

	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/model/types"
)

type Admin struct {
	Caches *modelcache.Caches
}

func NewAdmin(caches *modelcache.Caches) *Admin {
	return &Admin{
		Caches: caches,
	}
}

// PurgeCaches purges every pair in order and stops at the first unknown or
// malformed one.
func (s *Admin) PurgeCaches(ctx context.Context, pairs []types.PurgeCachePair) error {
	for _, pair := range pairs {
		if err := s.Caches.Delete(ctx, pair.Name, pair.Key); err != nil {
			return err
		}
		log.Info().
			Str("evt.name", "admin.purge").
			Str("cache", pair.Name).
			Str("key", pair.Key.String).
			Msg("cache purged")
	}
	return nil
}

func (s *Admin) CacheNames() []string {
	return s.Caches.Names()
}
