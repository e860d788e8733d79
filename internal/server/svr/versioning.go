package svr

import (
	"github.com/gofiber/fiber/v2"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/pkg/middlewares"
)

// API serves the public routes.
type API struct {
	fiber.Router
}

// Admin serves the routes guarded by the admin key.
type Admin struct {
	fiber.Router
}

// Meta serves health and build information.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*API, *Admin, *Meta) {
	api := app.Group("/api")
	admin := app.Group("/api/_/admin", middlewares.AdminKey(conf))
	meta := app.Group("/api/_")

	return &API{Router: api}, &Admin{Router: admin}, &Meta{Router: meta}
}
