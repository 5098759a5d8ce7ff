package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/metrics"
	"github.com/terraincognita07/skinsight/internal/services"
)

func (handler *Handler) parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return credentialsInput{}, &services.ValidationError{Message: messageInvalidBody}
	}
	if err := handler.validate.Struct(input); err != nil {
		return credentialsInput{}, &services.ValidationError{Field: "email", Message: "A valid email and password are required"}
	}
	return input, nil
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input, err := handler.parseCredentials(c)
	if err != nil {
		metrics.AuthAttempt("sign_up", "invalid")
		return handler.respondServiceError(c, err, "Unable to create account")
	}

	identity, err := handler.authService.SignUp(c.UserContext(), input.Email, input.Password)
	if err != nil {
		metrics.AuthAttempt("sign_up", authOutcome(err))
		return handler.respondServiceError(c, err, "Unable to create account")
	}

	if err := handler.setAuthCookie(c, identity); err != nil {
		handler.logger.Error("issue session token", "user_id", identity.ID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to start session")
	}
	metrics.AuthAttempt("sign_up", "ok")
	handler.logger.Info("account created", "user_id", identity.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": identity})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := signInClientKey(c)
	now := time.Now()
	if handler.signInLimiter.blocked(limiterKey, now) {
		metrics.AuthAttempt("sign_in", "rate_limited")
		return handler.respondServiceError(c, &services.AuthError{
			Kind:    services.AuthErrorRateLimited,
			Message: messageTooManyAttempts,
		}, "")
	}

	input, err := handler.parseCredentials(c)
	if err != nil {
		metrics.AuthAttempt("sign_in", "invalid")
		return handler.respondServiceError(c, err, "Unable to sign in")
	}

	identity, err := handler.authService.SignIn(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if services.IsAuthErrorKind(err, services.AuthErrorInvalidCredentials) {
			handler.signInLimiter.recordFailure(limiterKey, now)
		}
		metrics.AuthAttempt("sign_in", authOutcome(err))
		return handler.respondServiceError(c, err, "Unable to sign in")
	}

	if err := handler.setAuthCookie(c, identity); err != nil {
		handler.logger.Error("issue session token", "user_id", identity.ID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "Unable to start session")
	}
	handler.signInLimiter.clear(limiterKey)
	metrics.AuthAttempt("sign_in", "ok")
	return c.JSON(fiber.Map{"user": identity})
}

// Logout always clears the cookie. A failed sign-out broadcast is logged
// and does not keep the visitor signed in.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	session := currentSession(c)
	handler.clearAuthCookie(c)

	if session.Authenticated() {
		if err := handler.authService.SignOut(c.UserContext(), *session.User); err != nil {
			handler.logger.Warn("broadcast sign-out", "user_id", session.UserID(), "error", err)
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SessionStatus(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(currentSession(c))
}

func authOutcome(err error) string {
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		return string(authErr.Kind)
	}
	return "error"
}
