package services

import "github.com/terraincognita07/skinsight/internal/models"

var productCatalog = map[models.Condition][2]models.Product{
	models.ConditionPimples: {
		{
			ID:          "p1",
			Name:        "Salicylic Acid Cleanser",
			Category:    "Cleanser",
			Price:       "$12.99",
			Rating:      4.5,
			Description: "Gentle exfoliating cleanser for pimple-prone skin",
			Image:       "/salicylic-acid-cleanser.jpg",
		},
		{
			ID:          "p2",
			Name:        "Spot Treatment Serum",
			Category:    "Treatment",
			Price:       "$18.99",
			Rating:      4.7,
			Description: "Fast-acting spot treatment with benzoyl peroxide",
			Image:       "/spot-treatment-serum.jpg",
		},
	},
	models.ConditionAcne: {
		{
			ID:          "a1",
			Name:        "Acne Control Moisturizer",
			Category:    "Moisturizer",
			Price:       "$22.99",
			Rating:      4.6,
			Description: "Oil-free moisturizer for acne-prone skin",
			Image:       "/acne-control-moisturizer.jpg",
		},
		{
			ID:          "a2",
			Name:        "Niacinamide Serum",
			Category:    "Serum",
			Price:       "$24.99",
			Rating:      4.8,
			Description: "Reduces sebum production and pore size",
			Image:       "/niacinamide-serum.jpg",
		},
	},
	models.ConditionScars: {
		{
			ID:          "s1",
			Name:        "Scar Fading Cream",
			Category:    "Treatment",
			Price:       "$28.99",
			Rating:      4.4,
			Description: "Helps reduce appearance of acne scars",
			Image:       "/scar-fading-cream.jpg",
		},
		{
			ID:          "s2",
			Name:        "Vitamin C Brightening Serum",
			Category:    "Serum",
			Price:       "$32.99",
			Rating:      4.7,
			Description: "Brightens skin and promotes collagen production",
			Image:       "/vitamin-c-serum.png",
		},
	},
	models.ConditionDarkCircles: {
		{
			ID:          "d1",
			Name:        "Eye Cream with Caffeine",
			Category:    "Eye Care",
			Price:       "$19.99",
			Rating:      4.5,
			Description: "Reduces puffiness and dark circles",
			Image:       "/eye-cream-caffeine.jpg",
		},
		{
			ID:          "d2",
			Name:        "Retinol Eye Serum",
			Category:    "Serum",
			Price:       "$26.99",
			Rating:      4.6,
			Description: "Strengthens delicate eye area skin",
			Image:       "/retinol-eye-serum.jpg",
		},
	},
}

// CatalogProducts returns a copy of the products stocked for condition.
func CatalogProducts(condition models.Condition) []models.Product {
	entries, ok := productCatalog[condition]
	if !ok {
		return []models.Product{}
	}
	return append([]models.Product(nil), entries[:]...)
}
