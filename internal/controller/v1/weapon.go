package v1

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/cachectrl"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

type Weapon struct {
	fx.In

	WeaponService   *service.Weapon
	AnalysisService *service.Analysis
}

func RegisterWeapon(v1 *svr.API, c Weapon) {
	v1.Get("/weapons", c.GetWeapons)
	v1.Get("/weapons/category/:category", c.GetWeaponsByCategory)
	v1.Get("/weapons/weight", c.GetWeaponsByWeight)
	v1.Get("/weapons/usable", c.GetUsableWeapons)
	v1.Get("/weapons/:weaponId", c.GetWeaponByID)
	v1.Get("/weapons/:weaponId/matchups", c.GetWeaponMatchups)
}

func (c *Weapon) GetWeapons(ctx *fiber.Ctx) error {
	weapons, err := c.WeaponService.GetWeapons(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx)
	return ctx.JSON(weapons)
}

func (c *Weapon) GetWeaponByID(ctx *fiber.Ctx) error {
	id, err := param(ctx, "weaponId")
	if err != nil {
		return err
	}

	weapon, err := c.WeaponService.GetWeaponByID(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx)
	return ctx.JSON(weapon)
}

func (c *Weapon) GetWeaponsByCategory(ctx *fiber.Ctx) error {
	category, err := param(ctx, "category")
	if err != nil {
		return err
	}

	weapons, err := c.WeaponService.GetWeaponsByCategory(ctx.UserContext(), category)
	if err != nil {
		return err
	}

	return ctx.JSON(weapons)
}

func (c *Weapon) GetWeaponsByWeight(ctx *fiber.Ctx) error {
	q := types.WeightRangeQuery{Max: math.MaxFloat64}
	if err := rekuest.ValidQuery(ctx, &q); err != nil {
		return err
	}

	weapons, err := c.WeaponService.GetWeaponsByWeight(ctx.UserContext(), q.Min, q.Max)
	if err != nil {
		return err
	}

	return ctx.JSON(weapons)
}

func (c *Weapon) GetUsableWeapons(ctx *fiber.Ctx) error {
	var q types.UsableWeaponsQuery
	if err := rekuest.ValidQuery(ctx, &q); err != nil {
		return err
	}

	weapons, err := c.WeaponService.GetUsableWeapons(ctx.UserContext(), &model.PlayerBuild{
		Strength:     q.Strength,
		Dexterity:    q.Dexterity,
		Intelligence: q.Intelligence,
		Faith:        q.Faith,
		Arcane:       q.Arcane,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(weapons)
}

func (c *Weapon) GetWeaponMatchups(ctx *fiber.Ctx) error {
	id, err := param(ctx, "weaponId")
	if err != nil {
		return err
	}

	matchups, err := c.AnalysisService.GetMatchupsForWeapon(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(matchups)
}
