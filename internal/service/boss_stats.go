package service

import (
	"context"

	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

const (
	MinBossTier = 1
	MaxBossTier = 5
)

type BossStats struct {
	BossStatsRepo BossStatsStore
	Caches        *modelcache.Caches
}

func NewBossStats(bossStatsRepo BossStatsStore, caches *modelcache.Caches) *BossStats {
	return &BossStats{
		BossStatsRepo: bossStatsRepo,
		Caches:        caches,
	}
}

// Cache: (singular) bossStats, 365d
func (s *BossStats) GetAllBossStats(ctx context.Context) ([]*model.BossStats, error) {
	return s.Caches.AllBossStats.MutexGetSet(ctx, s.BossStatsRepo.GetAllBossStats)
}

// Cache: bossStats#name:{lower(bossName)}, 365d
func (s *BossStats) GetBossStatsByName(ctx context.Context, bossName string) (*model.BossStats, error) {
	stats, err := s.Caches.BossStatsByName.MutexGetSet(ctx, modelcache.NameKey(bossName), func(ctx context.Context) (model.BossStats, error) {
		stats, err := s.BossStatsRepo.GetBossStatsByName(ctx, bossName)
		return deref(stats, err)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Cache: bossStats#tier:{tier}, 365d
func (s *BossStats) GetBossStatsByTier(ctx context.Context, tier int) ([]*model.BossStats, error) {
	if tier < MinBossTier || tier > MaxBossTier {
		return nil, pgerr.ErrInvalidReq.Msg("tier must be between %d and %d", MinBossTier, MaxBossTier)
	}
	return s.Caches.BossStatsByTier.MutexGetSet(ctx, modelcache.TierKey(tier), func(ctx context.Context) ([]*model.BossStats, error) {
		return s.BossStatsRepo.GetBossStatsByTier(ctx, tier)
	})
}

// Cache: bossStats#weakness:{lower(weakness)}, 365d
func (s *BossStats) GetBossStatsByWeakness(ctx context.Context, weakness string) ([]*model.BossStats, error) {
	return s.Caches.BossStatsByWeakness.MutexGetSet(ctx, modelcache.NameKey(weakness), func(ctx context.Context) ([]*model.BossStats, error) {
		return s.BossStatsRepo.GetBossStatsByWeakness(ctx, weakness)
	})
}
