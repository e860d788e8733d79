package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"eldenlens.dev/backend/internal/model/types"
	"eldenlens.dev/backend/internal/pkg/middlewares"
	"eldenlens.dev/backend/internal/server/svr"
	"eldenlens.dev/backend/internal/service"
	"eldenlens.dev/backend/internal/util/rekuest"
)

type Fight struct {
	fx.In

	FightService    *service.Fight
	ProgressService *service.Progress
}

func RegisterFight(v1 *svr.API, c Fight) {
	fight := v1.Group("/bossfight", middlewares.RequireUser(), noStore)
	fight.Post("/start", c.StartSession)
	fight.Post("/attempt", c.RecordAttempt)
	fight.Post("/:sessionId/end", c.EndSession)
	fight.Get("/session/:sessionId/attempts", c.GetSessionAttempts)
	fight.Get("/history/:progressId/:bossId", c.GetHistory)
	fight.Get("/player/:progressId/sessions", c.GetSessions)
}

func (c *Fight) StartSession(ctx *fiber.Ctx) error {
	var request types.StartFightRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.GetOwnedProgress(ctx.UserContext(), middlewares.UserID(ctx), request.ProgressID)
	if err != nil {
		return err
	}

	session, err := c.FightService.StartSession(ctx.UserContext(), p, &request)
	if err != nil {
		return err
	}

	return ctx.JSON(session)
}

func (c *Fight) RecordAttempt(ctx *fiber.Ctx) error {
	var request types.RecordAttemptRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	p, err := c.ProgressService.GetOwnedProgress(ctx.UserContext(), middlewares.UserID(ctx), request.ProgressID)
	if err != nil {
		return err
	}

	attempt, err := c.FightService.RecordAttempt(ctx.UserContext(), p, &request)
	if err != nil {
		return err
	}

	return ctx.JSON(attempt)
}

func (c *Fight) EndSession(ctx *fiber.Ctx) error {
	sessionID, err := param(ctx, "sessionId")
	if err != nil {
		return err
	}

	session, err := c.FightService.GetOwnedSession(ctx.UserContext(), middlewares.UserID(ctx), sessionID)
	if err != nil {
		return err
	}

	ended, err := c.FightService.EndSession(ctx.UserContext(), session)
	if err != nil {
		return err
	}

	return ctx.JSON(ended)
}

func (c *Fight) GetSessionAttempts(ctx *fiber.Ctx) error {
	sessionID, err := param(ctx, "sessionId")
	if err != nil {
		return err
	}

	if _, err := c.FightService.GetOwnedSession(ctx.UserContext(), middlewares.UserID(ctx), sessionID); err != nil {
		return err
	}

	attempts, err := c.FightService.GetAttemptsBySession(ctx.UserContext(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(attempts)
}

func (c *Fight) GetHistory(ctx *fiber.Ctx) error {
	progressID, err := param(ctx, "progressId")
	if err != nil {
		return err
	}
	bossID, err := param(ctx, "bossId")
	if err != nil {
		return err
	}

	if _, err := c.ProgressService.GetOwnedProgress(ctx.UserContext(), middlewares.UserID(ctx), progressID); err != nil {
		return err
	}

	history, err := c.FightService.GetHistory(ctx.UserContext(), progressID, bossID)
	if err != nil {
		return err
	}

	return ctx.JSON(history)
}

func (c *Fight) GetSessions(ctx *fiber.Ctx) error {
	progressID, err := param(ctx, "progressId")
	if err != nil {
		return err
	}

	if _, err := c.ProgressService.GetOwnedProgress(ctx.UserContext(), middlewares.UserID(ctx), progressID); err != nil {
		return err
	}

	sessions, err := c.FightService.GetSessionsByProgress(ctx.UserContext(), progressID)
	if err != nil {
		return err
	}

	return ctx.JSON(sessions)
}
