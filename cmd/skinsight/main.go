package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/skinsight/internal/api"
	"github.com/terraincognita07/skinsight/internal/cli"
	"github.com/terraincognita07/skinsight/internal/db"
	"github.com/terraincognita07/skinsight/internal/events"
	"github.com/terraincognita07/skinsight/internal/logger"
	"github.com/terraincognita07/skinsight/internal/metrics"
	"github.com/terraincognita07/skinsight/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	log := logger.New(logger.Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	dbConfig := db.Config{
		Driver: getEnv("DB_DRIVER", db.DriverSQLite),
		Path:   getEnv("DB_PATH", db.DefaultSQLitePath()),
		DSN:    os.Getenv("DATABASE_URL"),
		Logger: log,
	}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], dbConfig); err != nil {
			log.Error("command failed", "command", os.Args[1], "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(log, dbConfig); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func runCommand(args []string, dbConfig db.Config) error {
	switch args[0] {
	case "reset-password":
		if len(args) < 2 {
			return errors.New("usage: skinsight reset-password <email>")
		}
		database, err := db.Open(dbConfig)
		if err != nil {
			return fmt.Errorf("database init failed: %w", err)
		}
		return cli.RunResetPasswordCommand(context.Background(), db.NewUserRepository(database), args[1], os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func run(log *slog.Logger, dbConfig db.Config) error {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	port, err := resolvePort()
	if err != nil {
		return err
	}
	bodyLimit, err := resolveBodyLimit()
	if err != nil {
		return err
	}
	cookieSecure := parseBoolEnv("COOKIE_SECURE")

	database, err := db.Open(dbConfig)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	broker, err := newBroker(log)
	if err != nil {
		return err
	}

	analyzer := services.NewMockAnalyzer(
		services.WithConsistentSeverity(parseBoolEnv("ANALYZER_CONSISTENT_SEVERITY")),
	)

	handler, err := api.NewHandler(api.Config{
		Database:     database,
		SecretKey:    secretKey,
		CookieSecure: cookieSecure,
		Analyzer:     analyzer,
		Broker:       broker,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Skinsight",
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(metrics.Middleware())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	app.Get("/metrics", metrics.Handler())
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		// Closing the broker ends open session streams so shutdown does not wait on them.
		if err := broker.Close(); err != nil {
			log.Warn("close session broker", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("skinsight listening", "addr", "http://0.0.0.0:"+port, "db_driver", dbConfig.Driver)
	return app.Listen(":" + port)
}

func newBroker(log *slog.Logger) (events.Broker, error) {
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		return events.NewMemoryBroker(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	broker, err := events.NewRedisBroker(ctx, redisURL, log)
	if err != nil {
		return nil, fmt.Errorf("session broker init failed: %w", err)
	}
	return broker, nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "skinsight_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next:           api.CSRFExempt,
	}
}
