package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/metrics"
	"github.com/terraincognita07/skinsight/internal/models"
	"github.com/terraincognita07/skinsight/internal/services"
)

func (handler *Handler) AnalyzeSkin(c *fiber.Ctx) error {
	request := analyzeRequest{}
	if err := decodeJSONBody(c, &request); err != nil {
		if errors.Is(err, errEmptyBody) {
			return apiError(c, fiber.StatusBadRequest, messageNoImage)
		}
		return apiError(c, fiber.StatusBadRequest, messageInvalidBody)
	}
	request.Image = strings.TrimSpace(request.Image)
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, messageNoImage)
	}

	result, err := handler.analyzer.Analyze(c.UserContext(), request.Image)
	if err != nil {
		handler.logger.Error("analyze image", "error", err)
		return apiError(c, fiber.StatusInternalServerError, messageAnalyzeFailed)
	}
	metrics.AnalysisGenerated()

	if request.SaveToHistory {
		handler.saveAnalysis(c, &result)
	}
	return c.JSON(result)
}

// saveAnalysis persists result for a signed-in visitor. Anonymous visitors
// and store failures leave the result without an analysis id.
func (handler *Handler) saveAnalysis(c *fiber.Ctx, result *models.AnalysisResult) {
	session := currentSession(c)
	if !session.Authenticated() {
		return
	}

	record, err := handler.analysisService.Create(c.UserContext(), session.UserID(), *result)
	if err != nil {
		metrics.AnalysisSaved(false)
		handler.logger.Error("save analysis", "user_id", session.UserID(), "error", err)
		return
	}
	metrics.AnalysisSaved(true)
	result.AnalysisID = record.ID
}

func (handler *Handler) ListAnalyses(c *fiber.Ctx) error {
	records, err := handler.analysisService.List(c.UserContext(), currentSession(c).UserID())
	if err != nil {
		return handler.respondServiceError(c, err, messageFetchFailed)
	}
	return c.JSON(records)
}

func (handler *Handler) DeleteAnalysis(c *fiber.Ctx) error {
	session := currentSession(c)
	if err := handler.analysisService.Delete(c.UserContext(), session.UserID(), c.Params("id")); err != nil {
		return handler.respondServiceError(c, err, messageDeleteFailed)
	}
	metrics.AnalysisDeleted()
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) Recommendations(c *fiber.Ctx) error {
	request := recommendationsRequest{}
	if err := decodeJSONBody(c, &request); err != nil {
		return apiError(c, fiber.StatusBadRequest, messageInvalidBody)
	}
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Conditions are required")
	}
	return c.JSON(services.RecommendProducts(*request.Conditions))
}
