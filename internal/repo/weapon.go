package repo

import (
	"context"

	"github.com/uptrace/bun"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/repo/selector"
)

type Weapon struct {
	db  *bun.DB
	sel selector.S[model.Weapon]
}

func NewWeapon(db *bun.DB) *Weapon {
	return &Weapon{
		db:  db,
		sel: selector.New[model.Weapon](db),
	}
}

func (r *Weapon) GetWeapons(ctx context.Context) ([]*model.Weapon, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("id ASC")
	})
}

func (r *Weapon) GetWeaponByID(ctx context.Context, id string) (*model.Weapon, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	})
}

func (r *Weapon) GetWeaponByName(ctx context.Context, name string) (*model.Weapon, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(name) = LOWER(?)", name).Limit(1)
	})
}

func (r *Weapon) GetWeaponsByCategory(ctx context.Context, category string) ([]*model.Weapon, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(category) = LOWER(?)", category).Order("id ASC")
	})
}

// UpsertWeapons writes weapons in one statement, replacing rows with the same id.
func (r *Weapon) UpsertWeapons(ctx context.Context, tx bun.IDB, weapons []*model.Weapon) error {
	if len(weapons) == 0 {
		return nil
	}
	_, err := tx.NewInsert().
		Model(&weapons).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("image = EXCLUDED.image").
		Set("description = EXCLUDED.description").
		Set("category = EXCLUDED.category").
		Set("weight = EXCLUDED.weight").
		Set("attack = EXCLUDED.attack").
		Set("defence = EXCLUDED.defence").
		Set("scales_with = EXCLUDED.scales_with").
		Set("required_attributes = EXCLUDED.required_attributes").
		Exec(ctx)
	return err
}
