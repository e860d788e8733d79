package repo

import (
	"context"

	"github.com/uptrace/bun"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/repo/selector"
)

type Boss struct {
	db  *bun.DB
	sel selector.S[model.Boss]
}

func NewBoss(db *bun.DB) *Boss {
	return &Boss{
		db:  db,
		sel: selector.New[model.Boss](db),
	}
}

func (r *Boss) GetBosses(ctx context.Context) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("id ASC")
	})
}

func (r *Boss) GetBossByID(ctx context.Context, id string) (*model.Boss, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *Boss) GetBossesByRegion(ctx context.Context, region string) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("region ILIKE ?", "%"+region+"%").Order("id ASC")
	})
}

func (r *Boss) GetBossesByLocation(ctx context.Context, location string) ([]*model.Boss, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("location ILIKE ?", "%"+location+"%").Order("id ASC")
	})
}

func (r *Boss) UpsertBosses(ctx context.Context, tx bun.IDB, bosses []*model.Boss) error {
	if len(bosses) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&bosses).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("image = EXCLUDED.image").
		Set("description = EXCLUDED.description").
		Set("region = EXCLUDED.region").
		Set("location = EXCLUDED.location").
		Set("drops = EXCLUDED.drops").
		Set("health_points = EXCLUDED.health_points").
		Exec(ctx)
	return err
}
