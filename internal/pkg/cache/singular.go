package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Singular is a single cached value under a fixed key, typically a whole
// collection such as "weapons".
type Singular[T any] struct {
	key   string
	ttl   time.Duration
	store Store

	group singleflight.Group
}

func NewSingular[T any](store Store, key string, ttl time.Duration) *Singular[T] {
	return &Singular[T]{
		key:   key,
		ttl:   ttl,
		store: store,
	}
}

func (c *Singular[T]) Key() string {
	return c.key
}

func (c *Singular[T]) Get(ctx context.Context) (T, bool) {
	return lookup[T](ctx, c.store, c.key, c.key)
}

func (c *Singular[T]) Set(ctx context.Context, value T) {
	c.store.Set(ctx, c.key, value, c.ttl)
}

func (c *Singular[T]) Delete(ctx context.Context) {
	c.store.Remove(ctx, c.key)
}

func (c *Singular[T]) MutexGetSet(ctx context.Context, valueFunc func(ctx context.Context) (T, error)) (T, error) {
	return load(ctx, c.store, &c.group, c.key, c.key, c.ttl, valueFunc)
}
