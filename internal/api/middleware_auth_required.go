package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	isAPI := strings.HasPrefix(c.Path(), "/api/")

	session, err := handler.authenticateRequest(c)
	if err != nil {
		handler.logger.Error("resolve session", "path", c.Path(), "error", err)
		if isAPI {
			return apiError(c, fiber.StatusInternalServerError, messageSessionCheckFail)
		}
		return c.Status(fiber.StatusInternalServerError).SendString(messageSessionCheckFail)
	}

	if !session.Authenticated() {
		if isAPI {
			return apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	c.Locals(contextSessionKey, session)
	return c.Next()
}
