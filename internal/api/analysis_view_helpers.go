package api

import (
	"github.com/terraincognita07/skinsight/internal/models"
)

func conditionLabel(condition models.Condition) string {
	switch condition {
	case models.ConditionPimples:
		return "Pimples"
	case models.ConditionAcne:
		return "Acne"
	case models.ConditionScars:
		return "Scars"
	case models.ConditionDarkCircles:
		return "Dark Circles"
	default:
		return string(condition)
	}
}

func conditionRows(conditions models.Conditions) []conditionRow {
	order := models.ConditionOrder()
	rows := make([]conditionRow, 0, len(order))
	for _, condition := range order {
		finding, _ := conditions.Finding(condition)
		rows = append(rows, conditionRow{
			Condition: condition,
			Label:     conditionLabel(condition),
			Finding:   finding,
		})
	}
	return rows
}

func buildHistoryCards(records []models.SkinAnalysis) []historyCard {
	cards := make([]historyCard, 0, len(records))
	for _, record := range records {
		result := record.Result()
		cards = append(cards, historyCard{
			ID:            record.ID,
			CreatedAt:     record.CreatedAt,
			OverallHealth: result.OverallHealth,
			Rows:          conditionRows(result.Conditions),
		})
	}
	return cards
}
