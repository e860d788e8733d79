package tarnishedid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eldenlens.dev/backend/internal/constant"
)

func extract(t *testing.T, req *http.Request) string {
	t.Helper()
	var got string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = Extract(c)
		return nil
	})
	_, err := app.Test(req)
	require.NoError(t, err)
	return got
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name          string
		authorization string
		cookie        string
		want          string
	}{
		{"Header", "Tarnished abc", "", "abc"},
		{"RealmIsCaseInsensitive", "tarnished  abc ", "", "abc"},
		{"OtherRealm", "Bearer abc", "", ""},
		{"EmptyID", "Tarnished", "", ""},
		{"Cookie", "", "c1", "c1"},
		{"HeaderWinsOverCookie", "Tarnished abc", "c1", "abc"},
		{"Nothing", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tc.authorization != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.authorization)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: constant.TarnishedIDCookieKey, Value: tc.cookie})
			}
			assert.Equal(t, tc.want, extract(t, req))
		})
	}
}

func TestInject(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		Inject(c, "c9v1")
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "c9v1", resp.Header.Get(constant.TarnishedIDSetHeader))
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), constant.TarnishedIDCookieKey+"=c9v1")
}

func TestNewIsUnique(t *testing.T) {
	assert.NotEqual(t, New(), New())
}
