package appconfig

import (
	"fmt"
	"strings"
)

type CacheBackend string

const (
	CacheBackendRedis  CacheBackend = "redis"
	CacheBackendMemory CacheBackend = "memory"
)

func (b *CacheBackend) Decode(value string) error {
	switch v := CacheBackend(strings.ToLower(strings.TrimSpace(value))); v {
	case CacheBackendRedis, CacheBackendMemory:
		*b = v
		return nil
	default:
		return fmt.Errorf("invalid cache backend: expect one of %q or %q, but got: %s", CacheBackendRedis, CacheBackendMemory, value)
	}
}
