package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

type BossMatchup struct {
	fx.In

	AnalysisService  *service.Analysis
	BossStatsService *service.BossStats
}

func RegisterBossMatchup(v1 *svr.API, c BossMatchup) {
	matchup := v1.Group("/bossmatchup")
	matchup.Get("/all", c.GetAllBossStats)
	matchup.Get("/calculate/:bossName", c.CalculateMatchup)
	matchup.Get("/best-weapons/:bossName", c.GetBestWeapons)
	matchup.Post("/rank/:bossName", c.RankWeapons)
	matchup.Get("/tier/:tier", c.GetBossStatsByTier)
	matchup.Get("/weakness/:damageType", c.GetBossStatsByWeakness)
	matchup.Get("/stats/:bossName", c.GetBossStats)
}

func (c *BossMatchup) CalculateMatchup(ctx *fiber.Ctx) error {
	bossName, err := param(ctx, "bossName")
	if err != nil {
		return err
	}

	q := types.DefaultMatchupQuery()
	if err := rekuest.ValidQuery(ctx, &q); err != nil {
		return err
	}

	result, err := c.AnalysisService.CalculateMatchup(ctx.UserContext(), bossName, &q)
	if err != nil {
		return err
	}

	return ctx.JSON(result)
}

func (c *BossMatchup) GetBestWeapons(ctx *fiber.Ctx) error {
	bossName, err := param(ctx, "bossName")
	if err != nil {
		return err
	}

	results, err := c.AnalysisService.GetBestWeaponsForBoss(ctx.UserContext(), bossName)
	if err != nil {
		return err
	}

	return ctx.JSON(results)
}

func (c *BossMatchup) RankWeapons(ctx *fiber.Ctx) error {
	bossName, err := param(ctx, "bossName")
	if err != nil {
		return err
	}

	var request types.RankWeaponsRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	results, err := c.AnalysisService.RankWeaponIDsForBoss(ctx.UserContext(), bossName, request.WeaponIDs)
	if err != nil {
		return err
	}

	return ctx.JSON(results)
}

func (c *BossMatchup) GetBossStatsByTier(ctx *fiber.Ctx) error {
	tier, err := ctx.ParamsInt("tier")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("tier must be a number")
	}

	stats, err := c.BossStatsService.GetBossStatsByTier(ctx.UserContext(), tier)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *BossMatchup) GetBossStatsByWeakness(ctx *fiber.Ctx) error {
	damageType, err := param(ctx, "damageType")
	if err != nil {
		return err
	}

	stats, err := c.BossStatsService.GetBossStatsByWeakness(ctx.UserContext(), damageType)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *BossMatchup) GetBossStats(ctx *fiber.Ctx) error {
	bossName, err := param(ctx, "bossName")
	if err != nil {
		return err
	}

	stats, err := c.BossStatsService.GetBossStatsByName(ctx.UserContext(), bossName)
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *BossMatchup) GetAllBossStats(ctx *fiber.Ctx) error {
	stats, err := c.BossStatsService.GetAllBossStats(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}
