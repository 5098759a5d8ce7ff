package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SkinAnalysis struct {
	ID           string                             `gorm:"primaryKey;type:text" json:"id"`
	UserID       string                             `gorm:"not null;index" json:"user_id"`
	AnalysisData datatypes.JSONType[AnalysisResult] `gorm:"column:analysis_data;not null" json:"analysis_data"`
	CreatedAt    time.Time                          `gorm:"not null" json:"created_at"`
}

func (SkinAnalysis) TableName() string {
	return "skin_analyses"
}

func (analysis *SkinAnalysis) BeforeCreate(*gorm.DB) error {
	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	return nil
}

func (analysis SkinAnalysis) Result() AnalysisResult {
	return analysis.AnalysisData.Data()
}
