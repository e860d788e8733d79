package meta

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

type AdminController struct {
	fx.In

	AdminService *service.Admin
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/purge", c.PurgeCache)
	admin.Get("/caches", c.GetCacheNames)
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request types.PurgeCacheRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	if err := c.AdminService.PurgeCaches(ctx.UserContext(), request.Pairs); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *AdminController) GetCacheNames(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"caches": c.AdminService.CacheNames(),
	})
}
