package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model"
	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

type Analysis struct {
	fx.In

	AnalysisService *service.Analysis
}

func RegisterAnalysis(v1 *svr.API, c Analysis) {
	analysis := v1.Group("/analysis")
	analysis.Post("/weapon/:weaponId", c.AnalyzeWeapon)
	analysis.Post("/best-weapons", c.FindBestWeapons)
	analysis.Post("/compare", c.CompareWeapons)
}

func (c *Analysis) AnalyzeWeapon(ctx *fiber.Ctx) error {
	weaponID, err := param(ctx, "weaponId")
	if err != nil {
		return err
	}

	build := defaultBuild()
	if err := rekuest.ValidBody(ctx, &build); err != nil {
		return err
	}

	analysis, err := c.AnalysisService.AnalyzeWeapon(ctx.UserContext(), weaponID, &build)
	if err != nil {
		return err
	}

	return ctx.JSON(analysis)
}

func (c *Analysis) FindBestWeapons(ctx *fiber.Ctx) error {
	topCount := ctx.QueryInt("topCount", service.DefaultBestForBuildLimit)
	if err := rekuest.ValidVar(ctx, topCount, "gte=1,lte=100"); err != nil {
		return err
	}

	build := defaultBuild()
	if err := rekuest.ValidBody(ctx, &build); err != nil {
		return err
	}

	analyses, err := c.AnalysisService.FindBestWeapons(ctx.UserContext(), &build, topCount)
	if err != nil {
		return err
	}

	return ctx.JSON(analyses)
}

func (c *Analysis) CompareWeapons(ctx *fiber.Ctx) error {
	request := types.CompareWeaponsRequest{Build: defaultBuild()}
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	analyses, err := c.AnalysisService.CompareWeapons(ctx.UserContext(), request.WeaponIDs, &request.Build)
	if err != nil {
		return err
	}

	return ctx.JSON(analyses)
}

// defaultBuild is the starting point request bodies are decoded onto. Level
// only matters to matchups, so analysis bodies may omit it.
func defaultBuild() model.PlayerBuild {
	return model.PlayerBuild{Level: 1}
}
