package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/skinsight/internal/models"
	"gorm.io/datatypes"
)

type AnalysisRepository interface {
	Create(ctx context.Context, record *models.SkinAnalysis) error
	ListByUser(ctx context.Context, userID string) ([]models.SkinAnalysis, error)
	DeleteOwned(ctx context.Context, userID string, recordID string) error
}

type AnalysisService struct {
	analyses AnalysisRepository
}

func NewAnalysisService(analyses AnalysisRepository) *AnalysisService {
	return &AnalysisService{analyses: analyses}
}

// Create stores result for userID. The stored document never carries an
// analysis id; callers copy record.ID onto the response themselves.
func (service *AnalysisService) Create(ctx context.Context, userID string, result models.AnalysisResult) (models.SkinAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.SkinAnalysis{}, ErrAuthRequired
	}

	result.AnalysisID = ""
	record := models.SkinAnalysis{
		UserID:       userID,
		AnalysisData: datatypes.NewJSONType(result),
	}
	if err := service.analyses.Create(ctx, &record); err != nil {
		return models.SkinAnalysis{}, &StoreError{Op: "create analysis", Err: err}
	}
	return record, nil
}

func (service *AnalysisService) List(ctx context.Context, userID string) ([]models.SkinAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAuthRequired
	}

	records, err := service.analyses.ListByUser(ctx, userID)
	if err != nil {
		return nil, &StoreError{Op: "list analyses", Err: err}
	}
	if records == nil {
		records = []models.SkinAnalysis{}
	}
	return records, nil
}

func (service *AnalysisService) Delete(ctx context.Context, userID string, recordID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrAuthRequired
	}

	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil
	}
	if err := service.analyses.DeleteOwned(ctx, userID, recordID); err != nil {
		return &StoreError{Op: "delete analysis", Err: err}
	}
	return nil
}
