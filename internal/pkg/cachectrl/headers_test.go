package cachectrl

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/in", func(c *fiber.Ctx) error {
		OptInCustom(c, 2*time.Minute)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/out", func(c *fiber.Ctx) error {
		OptOut(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/in", nil))
	require.NoError(t, err)
	assert.Equal(t, "public, max-age=120", resp.Header.Get(fiber.HeaderCacheControl))
	_, err = time.Parse(time.RFC1123, resp.Header.Get(fiber.HeaderExpires))
	assert.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/out", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "no-store")
	assert.Equal(t, "0", resp.Header.Get(fiber.HeaderExpires))
}
