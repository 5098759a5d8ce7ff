package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/models"
	"github.com/terraincognita07/skinsight/internal/services"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	return handler.render(c, "home", fiber.Map{
		"Title": "Skinsight | Analyze",
		"Page":  "home",
	})
}

func (handler *Handler) ShowHistory(c *fiber.Ctx) error {
	records, err := handler.analysisService.List(c.UserContext(), currentSession(c).UserID())
	if err != nil {
		handler.logger.Error("load history page", "user_id", currentSession(c).UserID(), "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString(messageFetchFailed)
	}

	return handler.render(c, "history", fiber.Map{
		"Title": "Skinsight | History",
		"Page":  "history",
		"Cards": buildHistoryCards(records),
	})
}

// AnalysisPartial renders the results and recommendations panels for a result
// the browser received from the analyze endpoint.
func (handler *Handler) AnalysisPartial(c *fiber.Ctx) error {
	result := models.AnalysisResult{}
	if err := decodeJSONBody(c, &result); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(messageInvalidBody)
	}

	return handler.renderPartial(c, "analysis_partial", fiber.Map{
		"Result":   result,
		"Rows":     conditionRows(result.Conditions),
		"Products": services.RecommendProducts(result.Conditions),
	})
}
