package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ReferenceMaxAge is how long clients may reuse reference data responses.
const ReferenceMaxAge = time.Hour

func OptIn(ctx *fiber.Ctx) {
	OptInCustom(ctx, ReferenceMaxAge)
}

func OptInCustom(ctx *fiber.Ctx, maxAge time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, time.Now().Add(maxAge).UTC().Format(time.RFC1123))
}

// OptOut marks per-user responses so that no shared cache keeps them.
func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "private, no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
