package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/services"
)

// authenticateRequest resolves the auth cookie into a session and re-issues
// the cookie once the token is past half of its lifetime.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (services.Session, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	session, err := handler.authService.CurrentSession(c.UserContext(), rawToken)
	if err != nil {
		return services.AnonymousSession(), err
	}

	if handler.authService.NeedsRefresh(session) {
		token, expiresAt, err := handler.authService.RefreshSession(c.UserContext(), session)
		if err != nil {
			handler.logger.Warn("refresh session token", "user_id", session.UserID(), "error", err)
		} else {
			handler.writeAuthCookie(c, token, expiresAt)
		}
	}
	return session, nil
}

// OptionalSession attaches the visitor's session without ever rejecting the
// request. A failing user store degrades to anonymous.
func (handler *Handler) OptionalSession(c *fiber.Ctx) error {
	session, err := handler.authenticateRequest(c)
	if err != nil {
		handler.logger.Error("resolve session", "path", c.Path(), "error", err)
	}
	c.Locals(contextSessionKey, session)
	return c.Next()
}
