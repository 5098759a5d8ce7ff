package api

import (
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/skinsight/internal/db"
	"github.com/terraincognita07/skinsight/internal/events"
	"github.com/terraincognita07/skinsight/internal/models"
	"github.com/terraincognita07/skinsight/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	secretKey       []byte
	cookieSecure    bool
	logger          *slog.Logger
	validate        *validator.Validate
	templates       map[string]*template.Template
	partials        map[string]*template.Template
	signInLimiter   *attemptLimiter
	repositories    *db.Repositories
	authService     *services.AuthService
	analysisService *services.AnalysisService
	analyzer        services.SkinAnalyzer
	broker          events.Broker
	healthCheck     func(ctx context.Context) error
}

// Config carries the collaborators the handler cannot build on its own.
// Analyzer, Broker and Logger default to the mock analyzer, an in-process
// broker and slog.Default.
type Config struct {
	Database     *gorm.DB
	SecretKey    string
	CookieSecure bool
	Analyzer     services.SkinAnalyzer
	Broker       events.Broker
	Logger       *slog.Logger
}

type credentialsInput struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=254"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

type analyzeRequest struct {
	Image         string `json:"image" validate:"required"`
	SaveToHistory bool   `json:"saveToHistory"`
}

type recommendationsRequest struct {
	Conditions *models.Conditions `json:"conditions" validate:"required"`
}

type conditionRow struct {
	Condition models.Condition
	Label     string
	Finding   models.ConditionFinding
}

type historyCard struct {
	ID            string
	CreatedAt     time.Time
	OverallHealth models.OverallHealth
	Rows          []conditionRow
}

const (
	signInAttemptLimit  = 8
	signInAttemptWindow = 15 * time.Minute
)

const (
	messageUnauthorized     = "Unauthorized"
	messageNoImage          = "No image provided"
	messageAnalyzeFailed    = "Failed to analyze image. Please try again."
	messageFetchFailed      = "Failed to fetch analyses"
	messageDeleteFailed     = "Failed to delete analysis"
	messageInvalidBody      = "Invalid request body"
	messageTooManyAttempts  = "Too many sign-in attempts. Please try again later."
	messageSessionCheckFail = "Failed to verify session"
)
