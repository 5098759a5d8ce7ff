package api

import (
	"context"

	"github.com/terraincognita07/skinsight/internal/db"
	"github.com/terraincognita07/skinsight/internal/events"
	"github.com/terraincognita07/skinsight/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, analyzer services.SkinAnalyzer, broker events.Broker) *Handler {
	if analyzer == nil {
		analyzer = services.NewMockAnalyzer()
	}
	if broker == nil {
		broker = events.NewMemoryBroker()
	}

	handler.repositories = db.NewRepositories(database)
	handler.analyzer = analyzer
	handler.broker = broker
	handler.authService = services.NewAuthService(handler.repositories.Users, broker, handler.secretKey)
	handler.analysisService = services.NewAnalysisService(handler.repositories.Analyses)
	handler.healthCheck = func(ctx context.Context) error {
		if err := db.Ping(ctx, database); err != nil {
			return err
		}
		return broker.Ping(ctx)
	}
	return handler
}
