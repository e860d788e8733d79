package repo

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/repo/selector"
)

type BossStats struct {
	db  *bun.DB
	sel selector.S[model.BossStats]
}

func NewBossStats(db *bun.DB) *BossStats {
	return &BossStats{
		db:  db,
		sel: selector.New[model.BossStats](db),
	}
}

func (r *BossStats) GetAllBossStats(ctx context.Context) ([]*model.BossStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("tier ASC", "boss_name ASC")
	})
}

func (r *BossStats) GetBossStatsByName(ctx context.Context, bossName string) (*model.BossStats, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(boss_name) = LOWER(?)", bossName).Limit(1)
	})
}

func (r *BossStats) GetBossStatsByTier(ctx context.Context, tier int) ([]*model.BossStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("tier = ?", tier).Order("boss_name ASC")
	})
}

func (r *BossStats) GetBossStatsByWeakness(ctx context.Context, weakness string) ([]*model.BossStats, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("weakness ILIKE ?", containsPattern(weakness)).Order("tier ASC", "boss_name ASC")
	})
}

func (r *BossStats) UpsertBossStats(ctx context.Context, tx bun.IDB, stats []*model.BossStats) error {
	if len(stats) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&stats).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("image = EXCLUDED.image").
		Set("description = EXCLUDED.description").
		Set("boss_name = EXCLUDED.boss_name").
		Set("health_points = EXCLUDED.health_points").
		Set("physical_resist = EXCLUDED.physical_resist").
		Set("magic_resist = EXCLUDED.magic_resist").
		Set("fire_resist = EXCLUDED.fire_resist").
		Set("lightning_resist = EXCLUDED.lightning_resist").
		Set("holy_resist = EXCLUDED.holy_resist").
		Set("bleed_immune = EXCLUDED.bleed_immune").
		Set("poison_immune = EXCLUDED.poison_immune").
		Set("frost_immune = EXCLUDED.frost_immune").
		Set("scarlet_rot_immune = EXCLUDED.scarlet_rot_immune").
		Set("madness_immune = EXCLUDED.madness_immune").
		Set("sleep_immune = EXCLUDED.sleep_immune").
		Set("weakness = EXCLUDED.weakness").
		Set("tier = EXCLUDED.tier").
		Set("average_damage = EXCLUDED.average_damage").
		Exec(ctx)
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in a value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
