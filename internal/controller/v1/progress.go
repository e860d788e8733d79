package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/cachectrl"
	"eldenlens.dev/backend/internal/pkg/middlewares"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

const localsProgress = "progress"

type Progress struct {
	fx.In

	ProgressService *service.Progress
	FightService    *service.Fight
	AnalysisService *service.Analysis
}

func RegisterProgress(v1 *svr.API, c Progress) {
	progress := v1.Group("/playerprogress")
	progress.Post("/", middlewares.AssignUser(), c.CreateProgress)

	progress.Use(middlewares.RequireUser(), noStore)
	progress.Get("/my-characters", c.GetMyCharacters)
	progress.Get("/by-name/:playerName", c.GetProgressByName)

	owned := progress.Group("/:progressId", c.ownedProgress)
	owned.Get("/", c.GetProgress)
	owned.Get("/detailed", c.GetDetailedProgress)
	owned.Get("/death-stats", c.GetDeathStatistics)
	owned.Get("/recommended-weapons/:bossName", c.GetRecommendedWeapons)
	owned.Post("/visit-location", c.VisitLocation)
	owned.Post("/defeat-boss", c.DefeatBoss)
	owned.Post("/obtain-weapon", c.ObtainWeapon)
	owned.Delete("/weapons/:weaponId", c.RemoveWeapon)
	owned.Delete("/bosses/:bossId", c.RemoveDefeatedBoss)
	owned.Delete("/", c.DeleteProgress)
}

func noStore(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	return ctx.Next()
}

// ownedProgress loads the progress named by the route and rejects users who
// do not own it.
func (c *Progress) ownedProgress(ctx *fiber.Ctx) error {
	id, err := param(ctx, "progressId")
	if err != nil {
		return err
	}

	p, err := c.ProgressService.GetOwnedProgress(ctx.UserContext(), middlewares.UserID(ctx), id)
	if err != nil {
		return err
	}

	ctx.Locals(localsProgress, p)
	return ctx.Next()
}

func progressFrom(ctx *fiber.Ctx) *model.PlayerProgress {
	p, _ := ctx.Locals(localsProgress).(*model.PlayerProgress)
	return p
}

func (c *Progress) CreateProgress(ctx *fiber.Ctx) error {
	var request types.CreateProgressRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.CreateProgress(ctx.UserContext(), middlewares.UserID(ctx), &request)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.Status(fiber.StatusCreated).JSON(p)
}

func (c *Progress) GetMyCharacters(ctx *fiber.Ctx) error {
	progresses, err := c.ProgressService.GetProgressesByUser(ctx.UserContext(), middlewares.UserID(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(progresses)
}

func (c *Progress) GetProgressByName(ctx *fiber.Ctx) error {
	name, err := param(ctx, "playerName")
	if err != nil {
		return err
	}

	p, err := c.ProgressService.GetProgressByName(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	if p.UserID != middlewares.UserID(ctx) {
		return pgerr.ErrForbidden
	}

	return ctx.JSON(p)
}

func (c *Progress) GetProgress(ctx *fiber.Ctx) error {
	return ctx.JSON(progressFrom(ctx))
}

func (c *Progress) GetDetailedProgress(ctx *fiber.Ctx) error {
	detailed, err := c.ProgressService.GetDetailedProgress(ctx.UserContext(), progressFrom(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(detailed)
}

func (c *Progress) GetDeathStatistics(ctx *fiber.Ctx) error {
	stats, err := c.FightService.GetDeathStatistics(ctx.UserContext(), progressFrom(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(stats)
}

func (c *Progress) GetRecommendedWeapons(ctx *fiber.Ctx) error {
	bossName, err := param(ctx, "bossName")
	if err != nil {
		return err
	}

	recommendations, err := c.AnalysisService.RecommendForPlayer(ctx.UserContext(), progressFrom(ctx), bossName)
	if err != nil {
		return err
	}

	return ctx.JSON(recommendations)
}

func (c *Progress) VisitLocation(ctx *fiber.Ctx) error {
	var request types.VisitLocationRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.VisitLocation(ctx.UserContext(), progressFrom(ctx), request.LocationID)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}

func (c *Progress) DefeatBoss(ctx *fiber.Ctx) error {
	var request types.DefeatBossRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.DefeatBoss(ctx.UserContext(), progressFrom(ctx), request.BossID)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}

func (c *Progress) ObtainWeapon(ctx *fiber.Ctx) error {
	var request types.ObtainWeaponRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.ObtainWeapon(ctx.UserContext(), progressFrom(ctx), request.WeaponID)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}

func (c *Progress) RemoveWeapon(ctx *fiber.Ctx) error {
	weaponID, err := param(ctx, "weaponId")
	if err != nil {
		return err
	}

	p, err := c.ProgressService.RemoveWeapon(ctx.UserContext(), progressFrom(ctx), weaponID)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}

func (c *Progress) RemoveDefeatedBoss(ctx *fiber.Ctx) error {
	bossID, err := param(ctx, "bossId")
	if err != nil {
		return err
	}

	p, err := c.ProgressService.RemoveDefeatedBoss(ctx.UserContext(), progressFrom(ctx), bossID)
	if err != nil {
		return err
	}

	return ctx.JSON(p)
}

func (c *Progress) DeleteProgress(ctx *fiber.Ctx) error {
	if err := c.ProgressService.DeleteProgress(ctx.UserContext(), progressFrom(ctx)); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
