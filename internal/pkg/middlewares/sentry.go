package middlewares

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"eldenlens.dev/backend/internal/constant"
	"eldenlens.dev/backend/internal/pkg/tarnishedid"
)

func EnrichSentry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(constant.SlimHeaderKey) != "" {
			return c.Next()
		}

		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
			if u := tarnishedid.Extract(c); u != "" {
				hub.Scope().SetUser(sentry.User{ID: u})
			}
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		rootSpan := sentry.StartSpan(c.UserContext(), "http.server", sentry.ContinueFromRequest(&r), sentry.TransactionName(c.Method()+" "+c.Path()))
		defer rootSpan.Finish()
		c.SetUserContext(rootSpan.Context())

		return c.Next()
	}
}
