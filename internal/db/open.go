package db

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/skinsight/internal/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	Path   string
	DSN    string
	Logger *slog.Logger
}

func DefaultSQLitePath() string {
	return filepath.Join("data", "skinsight.db")
}

// Open connects to the configured store and brings its schema up to date.
func Open(config Config) (*gorm.DB, error) {
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}

	switch strings.ToLower(strings.TrimSpace(config.Driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(config.Path)
		if path == "" {
			path = DefaultSQLitePath()
		}
		return openSQLite(path, log)
	case DriverPostgres:
		return openPostgres(config.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", config.Driver)
	}
}

// Ping reports whether the underlying connection pool can reach the store.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func gormConfig(log *slog.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			logger.StdLogger(log, slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
				Colorful:                  false,
			},
		),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
