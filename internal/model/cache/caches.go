package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/guregu/null.v3"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/pkg/cache"
	"eldenlens.dev/backend/internal/pkg/observability"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

const (
	// ReferenceTTL applies to imported game data, which only changes on re-import.
	ReferenceTTL = 365 * 24 * time.Hour
	// EntityTTL applies to a single mutable record.
	EntityTTL = 30 * time.Minute
	// ListTTL applies to lists of mutable records.
	ListTTL = 10 * time.Minute
)

var ErrUnknownCache = pgerr.ErrInvalidReq.Msg("unknown cache name")

type flushable interface {
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
}

type deletable interface {
	Delete(ctx context.Context)
}

// Caches is every named cache of the service. Names follow
// "{entity}#{key field}" for keyed sets and a bare plural for singulars.
type Caches struct {
	store cache.Store

	Weapons           *cache.Singular[[]*model.Weapon]
	WeaponByID        *cache.Set[model.Weapon]
	WeaponByName      *cache.Set[model.Weapon]
	WeaponsByCategory *cache.Set[[]*model.Weapon]

	AllBossStats        *cache.Singular[[]*model.BossStats]
	BossStatsByName     *cache.Set[model.BossStats]
	BossStatsByTier     *cache.Set[[]*model.BossStats]
	BossStatsByWeakness *cache.Set[[]*model.BossStats]

	Bosses           *cache.Singular[[]*model.Boss]
	BossByID         *cache.Set[model.Boss]
	BossesByRegion   *cache.Set[[]*model.Boss]
	BossesByLocation *cache.Set[[]*model.Boss]

	ProgressByID     *cache.Set[model.PlayerProgress]
	ProgressByName   *cache.Set[model.PlayerProgress]
	ProgressesByUser *cache.Set[[]*model.PlayerProgress]

	FightSessionByID        *cache.Set[model.FightSession]
	FightSessionsByProgress *cache.Set[[]*model.FightSession]
	FightAttemptsBySession  *cache.Set[[]*model.FightAttempt]

	sets      map[string]flushable
	singulars map[string]deletable
}

func New(store cache.Store) *Caches {
	c := &Caches{
		store:     store,
		sets:      make(map[string]flushable),
		singulars: make(map[string]deletable),
	}

	// weapon
	c.Weapons = singular[[]*model.Weapon](c, "weapons", ReferenceTTL)
	c.WeaponByID = set[model.Weapon](c, "weapon#id", ReferenceTTL)
	c.WeaponByName = set[model.Weapon](c, "weapon#name", ReferenceTTL)
	c.WeaponsByCategory = set[[]*model.Weapon](c, "weapons#category", ReferenceTTL)

	// boss_stats
	c.AllBossStats = singular[[]*model.BossStats](c, "bossStats", ReferenceTTL)
	c.BossStatsByName = set[model.BossStats](c, "bossStats#name", ReferenceTTL)
	c.BossStatsByTier = set[[]*model.BossStats](c, "bossStats#tier", ReferenceTTL)
	c.BossStatsByWeakness = set[[]*model.BossStats](c, "bossStats#weakness", ReferenceTTL)

	// boss
	c.Bosses = singular[[]*model.Boss](c, "bosses", ReferenceTTL)
	c.BossByID = set[model.Boss](c, "boss#id", ReferenceTTL)
	c.BossesByRegion = set[[]*model.Boss](c, "bosses#region", ReferenceTTL)
	c.BossesByLocation = set[[]*model.Boss](c, "bosses#location", ReferenceTTL)

	// progress
	c.ProgressByID = set[model.PlayerProgress](c, "progress#id", EntityTTL)
	c.ProgressByName = set[model.PlayerProgress](c, "progress#name", EntityTTL)
	c.ProgressesByUser = set[[]*model.PlayerProgress](c, "progresses#userId", ListTTL)

	// fight
	c.FightSessionByID = set[model.FightSession](c, "fightSession#id", EntityTTL)
	c.FightSessionsByProgress = set[[]*model.FightSession](c, "fightSessions#progressId", EntityTTL)
	c.FightAttemptsBySession = set[[]*model.FightAttempt](c, "fightAttempts#sessionId", EntityTTL)

	return c
}

func set[T any](c *Caches, name string, ttl time.Duration) *cache.Set[T] {
	s := cache.NewSet[T](c.store, name, ttl)
	c.sets[name] = s
	return s
}

func singular[T any](c *Caches, name string, ttl time.Duration) *cache.Singular[T] {
	s := cache.NewSingular[T](c.store, name, ttl)
	c.singulars[name] = s
	return s
}

// Names lists every registered cache name in lexical order.
func (c *Caches) Names() []string {
	names := make([]string, 0, len(c.sets)+len(c.singulars))
	for name := range c.singulars {
		names = append(names, name)
	}
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Delete purges a named cache. With a valid key only that entry of a keyed
// set is removed; otherwise the whole cache is.
func (c *Caches) Delete(ctx context.Context, name string, key null.String) error {
	if s, ok := c.singulars[name]; ok {
		if key.Valid {
			return pgerr.ErrInvalidReq.Msg("cache %q is not keyed", name)
		}
		s.Delete(ctx)
		return nil
	}
	s, ok := c.sets[name]
	if !ok {
		return ErrUnknownCache
	}
	if key.Valid {
		s.Delete(ctx, key.String)
	} else {
		s.Flush(ctx)
	}
	return nil
}

// FlushReference drops every cached piece of imported game data.
func (c *Caches) FlushReference(ctx context.Context) {
	c.Weapons.Delete(ctx)
	c.WeaponByID.Flush(ctx)
	c.WeaponByName.Flush(ctx)
	c.WeaponsByCategory.Flush(ctx)

	c.AllBossStats.Delete(ctx)
	c.BossStatsByName.Flush(ctx)
	c.BossStatsByTier.Flush(ctx)
	c.BossStatsByWeakness.Flush(ctx)

	c.Bosses.Delete(ctx)
	c.BossByID.Flush(ctx)
	c.BossesByRegion.Flush(ctx)
	c.BossesByLocation.Flush(ctx)

	observability.CacheInvalidations.WithLabelValues("reference").Inc()
}

// NameKey normalizes a case-insensitive lookup key.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func TierKey(tier int) string {
	return strconv.Itoa(tier)
}

// ProgressKeys lists every key a cached copy of p can live under.
func (c *Caches) ProgressKeys(p *model.PlayerProgress) []string {
	keys := []string{c.ProgressByID.Key(p.ID)}
	if p.PlayerName != "" {
		keys = append(keys, c.ProgressByName.Key(NameKey(p.PlayerName)))
	}
	if p.UserID != "" {
		keys = append(keys, c.ProgressesByUser.Key(p.UserID))
	}
	return keys
}

// FightSessionKeys lists every key a cached copy of s, or its attempts, can live under.
func (c *Caches) FightSessionKeys(s *model.FightSession) []string {
	return []string{
		c.FightSessionByID.Key(s.ID),
		c.FightSessionsByProgress.Key(s.ProgressID),
		c.FightAttemptsBySession.Key(s.ID),
	}
}

// InvalidateProgress must run after every committed write to p.
func (c *Caches) InvalidateProgress(ctx context.Context, p *model.PlayerProgress) {
	c.remove(ctx, "progress", c.ProgressKeys(p))
}

// InvalidateFightSession must run after every committed write to s or its attempts.
func (c *Caches) InvalidateFightSession(ctx context.Context, s *model.FightSession) {
	c.remove(ctx, "fightSession", c.FightSessionKeys(s))
}

func (c *Caches) remove(ctx context.Context, entity string, keys []string) {
	c.store.Remove(ctx, keys...)
	observability.CacheInvalidations.WithLabelValues(entity).Add(float64(len(keys)))
}
