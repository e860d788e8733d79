// Package tarnishedid reads and assigns the opaque user id that scopes
// player progress and fight sessions.
package tarnishedid

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"

	"eldenlens.dev/backend/internal/constant"
)

// Extract returns the user id of the request. The `Authorization: Tarnished <id>`
// header wins over the cookie. It returns "" when neither carries one.
func Extract(ctx *fiber.Ctx) string {
	authorization := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
	if realm, id, ok := strings.Cut(authorization, " "); ok && strings.EqualFold(realm, constant.TarnishedIDAuthorizationRealm) {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}

	id, err := url.QueryUnescape(ctx.Cookies(constant.TarnishedIDCookieKey))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(id)
}

func New() string {
	return xid.New().String()
}

// Inject hands id to the client both as a cookie and as a response header.
func Inject(ctx *fiber.Ctx, id string) {
	id = url.QueryEscape(id)

	ctx.Cookie(&fiber.Cookie{
		Name:     constant.TarnishedIDCookieKey,
		Value:    id,
		MaxAge:   constant.TarnishedIDAuthMaxCookieAgeSec,
		Path:     "/",
		Expires:  time.Now().Add(time.Second * constant.TarnishedIDAuthMaxCookieAgeSec),
		Domain:   "." + ctx.Get("Host", constant.SiteDefaultHost),
		SameSite: "None",
		Secure:   true,
	})

	ctx.Set(constant.TarnishedIDSetHeader, id)
}
