package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/services"
)

const (
	authCookieName    = "skinsight_auth"
	contextSessionKey = "current_session"
)

// currentSession returns the session resolved by the auth middleware, or an
// anonymous one when none ran.
func currentSession(c *fiber.Ctx) services.Session {
	session, ok := c.Locals(contextSessionKey).(services.Session)
	if !ok {
		return services.AnonymousSession()
	}
	return session
}

// statelessPostPaths answer from the request body alone and only touch stored
// data when a session cookie is present.
var statelessPostPaths = map[string]struct{}{
	"/api/analyze-skin":    {},
	"/api/recommendations": {},
	"/partials/analysis":   {},
}

// CSRFExempt reports whether a request may skip CSRF verification: a POST to
// a stateless endpoint that carries no session cookie. Requests with a
// session cookie are always verified.
func CSRFExempt(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodPost || c.Cookies(authCookieName) != "" {
		return false
	}
	_, ok := statelessPostPaths[c.Path()]
	return ok
}
