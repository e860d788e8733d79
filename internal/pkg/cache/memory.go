package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Memory is an in-process Store. Values are kept msgpack-encoded so that a
// value handed out by Get never aliases the one passed to Set.
type Memory struct {
	c *gocache.Cache
}

var _ Store = (*Memory)(nil)

func NewMemory(cleanupInterval time.Duration) *Memory {
	return &Memory{
		c: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	v, ok := m.c.Get(key)
	if !ok {
		return false
	}
	b, ok := v.([]byte)
	if !ok {
		m.c.Delete(key)
		return false
	}
	if err := msgpack.Unmarshal(b, dest); err != nil {
		log.Error().Err(err).Str("evt.name", "cache.get").Str("key", key).Msg("failed to unmarshal value from memory cache, dropping entry")
		m.c.Delete(key)
		return false
	}
	return true
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) {
	b, err := msgpack.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "cache.set").Str("key", key).Msg("failed to marshal value with msgpack")
		return
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, b, ttl)
}

func (m *Memory) Remove(_ context.Context, keys ...string) {
	for _, key := range keys {
		m.c.Delete(key)
	}
}

func (m *Memory) Exists(_ context.Context, key string) bool {
	_, ok := m.c.Get(key)
	return ok
}

func (m *Memory) Flush(_ context.Context, prefix string) {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
}
