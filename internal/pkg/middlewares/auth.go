package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/constant"
	"eldenlens.dev/backend/internal/pkg/pgerr"
	"eldenlens.dev/backend/internal/pkg/tarnishedid"
)

// RequireUser rejects requests that carry no user id.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := tarnishedid.Extract(c)
		if id == "" {
			return pgerr.ErrUnauthorized.Msg("missing %q authorization", constant.TarnishedIDAuthorizationRealm)
		}
		c.Locals(constant.ContextKeyUserID, id)
		return c.Next()
	}
}

// AssignUser gives requests without a user id a fresh one and hands it back
// to the client.
func AssignUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := tarnishedid.Extract(c)
		if id == "" {
			id = tarnishedid.New()
			tarnishedid.Inject(c, id)
		}
		c.Locals(constant.ContextKeyUserID, id)
		return c.Next()
	}
}

// UserID is the id stored by RequireUser or AssignUser.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(constant.ContextKeyUserID).(string)
	return id
}

// AdminKey guards the admin API. With no key configured every admin route
// answers 404.
func AdminKey(conf *appconfig.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if conf.AdminKey == "" {
			return pgerr.ErrNotFound
		}
		if subtle.ConstantTimeCompare([]byte(c.Get(constant.AdminKeyHeader)), []byte(conf.AdminKey)) != 1 {
			return pgerr.ErrUnauthorized.Msg("invalid admin key")
		}
		return c.Next()
	}
}
