package service

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"eldenlens.dev/backend/internal/model"
	modelcache "eldenlens.dev/backend/internal/model/cache"
)

type Weapon struct {
	WeaponRepo WeaponStore
	Caches     *modelcache.Caches
}

func NewWeapon(weaponRepo WeaponStore, caches *modelcache.Caches) *Weapon {
	return &Weapon{
		WeaponRepo: weaponRepo,
		Caches:     caches,
	}
}

// Cache: (singular) weapons, 365d
func (s *Weapon) GetWeapons(ctx context.Context) ([]*model.Weapon, error) {
	return s.Caches.Weapons.MutexGetSet(ctx, s.WeaponRepo.GetWeapons)
}

// Cache: weapon#id:{id}, 365d
func (s *Weapon) GetWeaponByID(ctx context.Context, id string) (*model.Weapon, error) {
	weapon, err := s.Caches.WeaponByID.MutexGetSet(ctx, id, func(ctx context.Context) (model.Weapon, error) {
		weapon, err := s.WeaponRepo.GetWeaponByID(ctx, id)
		return deref(weapon, err)
	})
	if err != nil {
		return nil, err
	}
	return &weapon, nil
}

// Cache: weapon#name:{lower(name)}, 365d
func (s *Weapon) GetWeaponByName(ctx context.Context, name string) (*model.Weapon, error) {
	weapon, err := s.Caches.WeaponByName.MutexGetSet(ctx, modelcache.NameKey(name), func(ctx context.Context) (model.Weapon, error) {
		weapon, err := s.WeaponRepo.GetWeaponByName(ctx, name)
		return deref(weapon, err)
	})
	if err != nil {
		return nil, err
	}
	return &weapon, nil
}

// Cache: weapons#category:{lower(category)}, 365d
func (s *Weapon) GetWeaponsByCategory(ctx context.Context, category string) ([]*model.Weapon, error) {
	return s.Caches.WeaponsByCategory.MutexGetSet(ctx, modelcache.NameKey(category), func(ctx context.Context) ([]*model.Weapon, error) {
		return s.WeaponRepo.GetWeaponsByCategory(ctx, category)
	})
}

// GetWeaponsByWeight returns the weapons weighing within [min, max], lightest first.
func (s *Weapon) GetWeaponsByWeight(ctx context.Context, min, max float64) ([]*model.Weapon, error) {
	weapons, err := s.GetWeapons(ctx)
	if err != nil {
		return nil, err
	}
	filtered := lo.Filter(weapons, func(w *model.Weapon, _ int) bool {
		return w.Weight >= min && w.Weight <= max
	})
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Weight < filtered[j].Weight
	})
	return filtered, nil
}

// GetUsableWeapons returns the weapons whose every attribute requirement build meets.
func (s *Weapon) GetUsableWeapons(ctx context.Context, build *model.PlayerBuild) ([]*model.Weapon, error) {
	weapons, err := s.GetWeapons(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(weapons, func(w *model.Weapon, _ int) bool {
		return meetsRequirements(w, build)
	}), nil
}

func meetsRequirements(w *model.Weapon, build *model.PlayerBuild) bool {
	for _, r := range w.RequiredAttributes {
		if build.Attribute(r.Name) < r.Amount {
			return false
		}
	}
	return true
}

// deref adapts a repo lookup to the value-typed loaders of keyed caches.
func deref[T any](v *T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}
