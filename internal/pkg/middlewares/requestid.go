package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"eldenlens.dev/backend/internal/constant"
	"eldenlens.dev/backend/internal/pkg/flog"
)

// RequestID copies the id assigned by the logger chain into ctx.Locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := flog.IDFromCtx(c.UserContext()); ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
