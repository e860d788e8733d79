package service

import (
	"context"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/repo"
)

// The stores below are what services need from the persistence layer. The
// repo package satisfies them; tests substitute in-memory fakes.

type WeaponStore interface {
	GetWeapons(ctx context.Context) ([]*model.Weapon, error)
	GetWeaponByID(ctx context.Context, id string) (*model.Weapon, error)
	GetWeaponByName(ctx context.Context, name string) (*model.Weapon, error)
	GetWeaponsByCategory(ctx context.Context, category string) ([]*model.Weapon, error)
}

type BossStatsStore interface {
	GetAllBossStats(ctx context.Context) ([]*model.BossStats, error)
	GetBossStatsByName(ctx context.Context, bossName string) (*model.BossStats, error)
	GetBossStatsByTier(ctx context.Context, tier int) ([]*model.BossStats, error)
	GetBossStatsByWeakness(ctx context.Context, weakness string) ([]*model.BossStats, error)
}

type BossStore interface {
	GetBosses(ctx context.Context) ([]*model.Boss, error)
	GetBossByID(ctx context.Context, id string) (*model.Boss, error)
	GetBossesByRegion(ctx context.Context, region string) ([]*model.Boss, error)
	GetBossesByLocation(ctx context.Context, location string) ([]*model.Boss, error)
}

type ProgressStore interface {
	CreateProgress(ctx context.Context, p *model.PlayerProgress) error
	GetProgressByID(ctx context.Context, id string) (*model.PlayerProgress, error)
	GetProgressByName(ctx context.Context, playerName string) (*model.PlayerProgress, error)
	GetProgressesByUserID(ctx context.Context, userID string) ([]*model.PlayerProgress, error)
	AddToList(ctx context.Context, progressID string, list repo.ProgressList, id string) (*model.PlayerProgress, error)
	RemoveFromList(ctx context.Context, progressID string, list repo.ProgressList, id string) (*model.PlayerProgress, error)
	IncrementDeaths(ctx context.Context, progressID string) (*model.PlayerProgress, error)
	DeleteProgress(ctx context.Context, id string) error
}

type FightStore interface {
	CreateSession(ctx context.Context, s *model.FightSession) error
	GetSessionByID(ctx context.Context, id string) (*model.FightSession, error)
	GetActiveSession(ctx context.Context, progressID, bossID string) (*model.FightSession, error)
	GetSessionsByProgressID(ctx context.Context, progressID string) ([]*model.FightSession, error)
	GetAttemptsBySessionID(ctx context.Context, sessionID string) ([]*model.FightAttempt, error)
	GetAttemptsByProgressID(ctx context.Context, progressID string) ([]*model.FightAttempt, error)
	GetAttemptsByProgressAndBoss(ctx context.Context, progressID, bossID string) ([]*model.FightAttempt, error)
	AppendAttempt(ctx context.Context, sessionID string, attempt *model.FightAttempt) (*model.FightSession, error)
	EndSession(ctx context.Context, sessionID string) (*model.FightSession, error)
}
