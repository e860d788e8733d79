package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
)

type Boss struct {
	BossRepo         BossStore
	BossStatsService *BossStats
	Caches           *modelcache.Caches
}

func NewBoss(bossRepo BossStore, bossStatsService *BossStats, caches *modelcache.Caches) *Boss {
	return &Boss{
		BossRepo:         bossRepo,
		BossStatsService: bossStatsService,
		Caches:           caches,
	}
}

// Cache: (singular) bosses, 365d
func (s *Boss) GetBosses(ctx context.Context) ([]*model.Boss, error) {
	return s.Caches.Bosses.MutexGetSet(ctx, s.BossRepo.GetBosses)
}

// Cache: boss#id:{id}, 365d
func (s *Boss) GetBossByID(ctx context.Context, id string) (*model.Boss, error) {
	boss, err := s.Caches.BossByID.MutexGetSet(ctx, id, func(ctx context.Context) (model.Boss, error) {
		boss, err := s.BossRepo.GetBossByID(ctx, id)
		return deref(boss, err)
	})
	if err != nil {
		return nil, err
	}
	return &boss, nil
}

// Cache: bosses#region:{lower(region)}, 365d
func (s *Boss) GetBossesByRegion(ctx context.Context, region string) ([]*model.Boss, error) {
	return s.Caches.BossesByRegion.MutexGetSet(ctx, modelcache.NameKey(region), func(ctx context.Context) ([]*model.Boss, error) {
		return s.BossRepo.GetBossesByRegion(ctx, region)
	})
}

// Cache: bosses#location:{lower(location)}, 365d
func (s *Boss) GetBossesByLocation(ctx context.Context, location string) ([]*model.Boss, error) {
	return s.Caches.BossesByLocation.MutexGetSet(ctx, modelcache.NameKey(location), func(ctx context.Context) ([]*model.Boss, error) {
		return s.BossRepo.GetBossesByLocation(ctx, location)
	})
}

// GetBossesByDifficulty orders bosses by health, hardest first unless
// ascending. Bosses without a readable health value always come last.
func (s *Boss) GetBossesByDifficulty(ctx context.Context, ascending bool) ([]*model.Boss, error) {
	bosses, err := s.GetBosses(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]*model.Boss, len(bosses))
	copy(sorted, bosses)
	sort.SliceStable(sorted, func(i, j int) bool {
		hi, iok := ParseHealthPoints(sorted[i].HealthPoints)
		hj, jok := ParseHealthPoints(sorted[j].HealthPoints)
		if iok != jok {
			return iok
		}
		if ascending {
			return hi < hj
		}
		return hi > hj
	})
	return sorted, nil
}

// GetBossStats returns the combat profile of the boss with the given id.
func (s *Boss) GetBossStats(ctx context.Context, id string) (*model.BossStats, error) {
	boss, err := s.GetBossByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.BossStatsService.GetBossStatsByName(ctx, boss.Name)
}

// ParseHealthPoints reads the leading number of a free-text health value
// such as "6,080" or "12,600 (phase 2)".
func ParseHealthPoints(text string) (int, bool) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == ',':
		default:
			if digits.Len() > 0 {
				return parseDigits(digits.String())
			}
		}
	}
	return parseDigits(digits.String())
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
