package service

import (
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/repo"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		func(r *repo.Weapon) WeaponStore { return r },
		func(r *repo.BossStats) BossStatsStore { return r },
		func(r *repo.Boss) BossStore { return r },
		func(r *repo.Progress) ProgressStore { return r },
		func(r *repo.Fight) FightStore { return r },

		NewBoss,
		NewAdmin,
		NewFight,
		NewHealth,
		NewWeapon,
		NewAnalysis,
		NewImporter,
		NewProgress,
		NewBossStats,
	))
}
