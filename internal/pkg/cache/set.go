package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"eldenlens.dev/backend/internal/pkg/observability"
)

// Set is a typed namespace of keys sharing one TTL policy. Keys are rendered
// as "{name}:{key}", e.g. "progress#id:42".
type Set[T any] struct {
	name  string
	ttl   time.Duration
	store Store

	// group collapses concurrent loads of the same key into one valueFunc call
	group singleflight.Group
}

func NewSet[T any](store Store, name string, ttl time.Duration) *Set[T] {
	return &Set[T]{
		name:  name,
		ttl:   ttl,
		store: store,
	}
}

func (c *Set[T]) Name() string {
	return c.name
}

func (c *Set[T]) TTL() time.Duration {
	return c.ttl
}

// Key renders the full store key for key.
func (c *Set[T]) Key(key string) string {
	return c.name + ":" + key
}

func (c *Set[T]) Get(ctx context.Context, key string) (T, bool) {
	return lookup[T](ctx, c.store, c.name, c.Key(key))
}

func (c *Set[T]) Set(ctx context.Context, key string, value T) {
	c.store.Set(ctx, c.Key(key), value, c.ttl)
}

func (c *Set[T]) Exists(ctx context.Context, key string) bool {
	return c.store.Exists(ctx, c.Key(key))
}

func (c *Set[T]) Delete(ctx context.Context, keys ...string) {
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = c.Key(key)
	}
	c.store.Remove(ctx, full...)
}

func (c *Set[T]) Flush(ctx context.Context) {
	c.store.Flush(ctx, c.name+":")
}

// MutexGetSet returns the cached value for key, or runs valueFunc, stores its
// result and returns it. Concurrent misses on the same key share one valueFunc
// call, which runs detached from the cancellation of whichever caller started
// it. A caller whose ctx ends first returns its own ctx error. Errors from
// valueFunc are returned as-is and nothing is cached. Callers that shared a
// flight get their own decoded copy from the store, or the shared value when
// the store is unavailable.
func (c *Set[T]) MutexGetSet(ctx context.Context, key string, valueFunc func(ctx context.Context) (T, error)) (T, error) {
	return load(ctx, c.store, &c.group, c.name, c.Key(key), c.ttl, valueFunc)
}

func lookup[T any](ctx context.Context, store Store, name, key string) (T, bool) {
	var dest T
	if store.Get(ctx, key, &dest) {
		observability.CacheRequests.WithLabelValues(name, "hit").Inc()
		return dest, true
	}
	observability.CacheRequests.WithLabelValues(name, "miss").Inc()
	var zero T
	return zero, false
}

func load[T any](ctx context.Context, store Store, group *singleflight.Group, name, key string, ttl time.Duration, valueFunc func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := lookup[T](ctx, store, name, key); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	// the flight outlives any single caller, so it must not inherit a
	// caller's cancellation
	flightCtx := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		// a flight that finished between our lookup and DoChan has already filled the key
		var cached T
		if store.Get(flightCtx, key, &cached) {
			return cached, nil
		}
		value, err := valueFunc(flightCtx)
		if err != nil {
			return nil, err
		}
		store.Set(flightCtx, key, value, ttl)
		return value, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		if l := log.Trace(); l.Enabled() {
			l.Err(res.Err).Str("key", key).Msg("valueFunc failed in MutexGetSet")
		}
		return zero, res.Err
	}
	if res.Shared {
		// callers that joined a flight decode their own copy when the store has one
		var own T
		if store.Get(ctx, key, &own) {
			return own, nil
		}
	}
	return res.Val.(T), nil
}
