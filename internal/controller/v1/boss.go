package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/pkg/cachectrl"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
)

type Boss struct {
	fx.In

	BossService     *service.Boss
	AnalysisService *service.Analysis
}

func RegisterBoss(v1 *svr.API, c Boss) {
	v1.Get("/bosses", c.GetBosses)
	v1.Get("/bosses/region/:region", c.GetBossesByRegion)
	v1.Get("/bosses/location/:location", c.GetBossesByLocation)
	v1.Get("/bosses/difficulty", c.GetBossesByDifficulty)
	v1.Get("/bosses/:bossId", c.GetBossByID)
	v1.Get("/bosses/:bossId/stats", c.GetBossStats)
	v1.Get("/bosses/:bossId/weapon-recommendations", c.GetWeaponRecommendations)
}

func (c *Boss) GetBosses(ctx *fiber.Ctx) error {
	bosses, err := c.BossService.GetBosses(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx)
	return ctx.JSON(bosses)
}

func (c *Boss) GetBossByID(ctx *fiber.Ctx) error {
	id, err := param(ctx, "bossId")
	if err != nil {
		return err
	}

	boss, err := c.BossService.GetBossByID(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx)
	return ctx.JSON(boss)
}

func (c *Boss) GetBossesByRegion(ctx *fiber.Ctx) error {
	region, err := param(ctx, "region")
	if err != nil {
		return err
	}

	bosses, err := c.BossService.GetBossesByRegion(ctx.UserContext(), region)
	if err != nil {
		return err
	}

	return ctx.JSON(bosses)
}

func (c *Boss) GetBossesByLocation(ctx *fiber.Ctx) error {
	location, err := param(ctx, "location")
	if err != nil {
		return err
	}

	bosses, err := c.BossService.GetBossesByLocation(ctx.UserContext(), location)
	if err != nil {
		return err
	}

	return ctx.JSON(bosses)
}

func (c *Boss) GetBossesByDifficulty(ctx *fiber.Ctx) error {
	bosses, err := c.BossService.GetBossesByDifficulty(ctx.UserContext(), ctx.QueryBool("ascending", false))
	if err != nil {
		return err
	}

	return ctx.JSON(bosses)
}

func (c *Boss) GetBossStats(ctx *fiber.Ctx) error {
	id, err := param(ctx, "bossId")
	if err != nil {
		return err
	}

	stats, err := c.BossService.GetBossStats(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *Boss) GetWeaponRecommendations(ctx *fiber.Ctx) error {
	id, err := param(ctx, "bossId")
	if err != nil {
		return err
	}

	recommendations, err := c.AnalysisService.GetWeaponRecommendationsForBoss(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(recommendations)
}
