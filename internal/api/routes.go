package api

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/terraincognita07/skinsight/web"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.Static),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	app.Get("/", handler.OptionalSession, handler.ShowHome)
	app.Get("/history", handler.AuthRequired, handler.ShowHistory)
	app.Post("/partials/analysis", handler.AnalysisPartial)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Post("/analyze-skin", handler.OptionalSession, handler.AnalyzeSkin)
	api.Post("/recommendations", handler.Recommendations)

	analyses := api.Group("/analyses", handler.AuthRequired)
	analyses.Get("", handler.ListAnalyses)
	analyses.Delete("/:id", handler.DeleteAnalysis)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.OptionalSession, handler.Logout)
	auth.Get("/session", handler.OptionalSession, handler.SessionStatus)
	auth.Get("/events", handler.AuthRequired, handler.SessionEvents)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
