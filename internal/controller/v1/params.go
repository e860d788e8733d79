package v1

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eldenlens.dev/backend/internal/pkg/pgerr"
)

// param returns the unescaped, trimmed route parameter key. Boss names such
// as "Margit, the Fell Omen" arrive percent-encoded.
func param(ctx *fiber.Ctx, key string) (string, error) {
	raw := ctx.Params(key)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", pgerr.ErrInvalidReq.Msg("invalid %s: %s", key, err)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", pgerr.ErrInvalidReq.Msg("missing %s", key)
	}
	return v, nil
}
