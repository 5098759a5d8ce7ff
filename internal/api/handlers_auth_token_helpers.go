package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/services"
)

func (handler *Handler) setAuthCookie(c *fiber.Ctx, identity services.Identity) error {
	token, expiresAt, err := handler.authService.IssueSessionToken(identity)
	if err != nil {
		return err
	}
	handler.writeAuthCookie(c, token, expiresAt)
	return nil
}

func (handler *Handler) writeAuthCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
