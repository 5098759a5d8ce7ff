package db

import (
	"context"

	"github.com/terraincognita07/skinsight/internal/models"
	"gorm.io/gorm"
)

type AnalysisRepository struct {
	database *gorm.DB
}

func NewAnalysisRepository(database *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{database: database}
}

func (repo *AnalysisRepository) Create(ctx context.Context, record *models.SkinAnalysis) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

// ListByUser returns the user's records newest first. Ties on created_at are
// broken by id so the order is stable across calls.
func (repo *AnalysisRepository) ListByUser(ctx context.Context, userID string) ([]models.SkinAnalysis, error) {
	records := make([]models.SkinAnalysis, 0)
	err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	return records, err
}

// DeleteOwned removes the record only when it belongs to userID. Missing or
// foreign ids delete nothing and are not an error.
func (repo *AnalysisRepository) DeleteOwned(ctx context.Context, userID string, recordID string) error {
	return repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", recordID, userID).
		Delete(&models.SkinAnalysis{}).Error
}
