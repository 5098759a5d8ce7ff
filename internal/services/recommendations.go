package services

import "github.com/terraincognita07/skinsight/internal/models"

const maxRecommendedProducts = 4

// RecommendProducts maps detected conditions to catalog products in the fixed
// condition order, capped at four. When nothing is detected the first
// cleanser and the first moisturizer are suggested.
func RecommendProducts(conditions models.Conditions) []models.Product {
	products := make([]models.Product, 0, maxRecommendedProducts)
	for _, condition := range models.ConditionOrder() {
		if !conditions.Detected(condition) {
			continue
		}
		products = append(products, CatalogProducts(condition)...)
	}

	if len(products) == 0 {
		return []models.Product{
			productCatalog[models.ConditionPimples][0],
			productCatalog[models.ConditionAcne][0],
		}
	}
	if len(products) > maxRecommendedProducts {
		products = products[:maxRecommendedProducts]
	}
	return products
}
