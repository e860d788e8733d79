package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldenlens.dev/backend/internal/app/appconfig"
	"eldenlens.dev/backend/internal/constant"
	"eldenlens.dev/backend/internal/pkg/pgerr"
)

func errorStatus(ctx *fiber.Ctx, err error) error {
	if e, ok := pgerr.From(err); ok {
		return ctx.SendStatus(e.StatusCode)
	}
	return fiber.DefaultErrorHandler(ctx, err)
}

func echoUser(c *fiber.Ctx) error {
	return c.SendString(UserID(c))
}

func TestRequireUser(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/", RequireUser(), echoUser)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Tarnished abc123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(constant.TarnishedIDSetHeader))
}

func TestAssignUser(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
	app.Get("/", AssignUser(), echoUser)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(constant.TarnishedIDSetHeader))

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Tarnished abc123")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(constant.TarnishedIDSetHeader), "existing ids are kept")
}

func TestAdminKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{name: "no key configured", key: "", header: "anything", want: fiber.StatusNotFound},
		{name: "missing header", key: "s3cret", header: "", want: fiber.StatusUnauthorized},
		{name: "wrong key", key: "s3cret", header: "s3cre", want: fiber.StatusUnauthorized},
		{name: "right key", key: "s3cret", header: "s3cret", want: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{AdminKey: tt.key}}
			app := fiber.New(fiber.Config{ErrorHandler: errorStatus})
			app.Get("/", AdminKey(conf), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constant.AdminKeyHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
