package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

var errEmptyBody = errors.New("empty request body")

// decodeJSONBody reads a JSON body regardless of the declared content type.
func decodeJSONBody(c *fiber.Ctx, target any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, target)
}

// respondServiceError maps the service error taxonomy onto HTTP responses.
// Store failures and unknown errors surface only fallback; the cause is logged.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError
	var authErr *services.AuthError

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		return apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	case errors.As(err, &validationErr):
		return apiError(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.As(err, &authErr):
		status := authErrorStatus(authErr.Kind)
		if status >= fiber.StatusInternalServerError {
			handler.logger.Error("auth operation failed", "path", c.Path(), "error", err)
		}
		return apiError(c, status, authErr.Message)
	default:
		handler.logger.Error("request failed", "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func authErrorStatus(kind services.AuthErrorKind) int {
	switch kind {
	case services.AuthErrorInvalidInput:
		return fiber.StatusBadRequest
	case services.AuthErrorInvalidCredentials:
		return fiber.StatusUnauthorized
	case services.AuthErrorDuplicateAccount:
		return fiber.StatusConflict
	case services.AuthErrorRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}
