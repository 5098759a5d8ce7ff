package db

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/skinsight/internal/logger"
	"github.com/terraincognita07/skinsight/internal/models"
)

func TestGormConfigTranslatesErrors(t *testing.T) {
	t.Parallel()

	config := gormConfig(logger.New(logger.Config{Output: &bytes.Buffer{}}))
	if !config.TranslateError {
		t.Fatal("expected driver errors to be translated into gorm errors")
	}
}

func TestFailedWriteLogOmitsBoundValues(t *testing.T) {
	var output bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "text", Output: &output})

	database, err := openSQLite(filepath.Join(t.TempDir(), "skinsight-log.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repo := NewUserRepository(database)
	ctx := context.Background()
	const email = "private-person@example.com"
	const passwordHash = "secret-password-hash"

	first := models.User{Email: email, PasswordHash: passwordHash}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("create first user: %v", err)
	}
	duplicate := models.User{Email: email, PasswordHash: passwordHash}
	if err := repo.Create(ctx, &duplicate); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}

	logged := output.String()
	if !strings.Contains(logged, "INSERT INTO") {
		t.Fatalf("expected failed insert to be logged, got %q", logged)
	}
	if strings.Contains(logged, email) || strings.Contains(logged, passwordHash) {
		t.Fatalf("expected log without bound values, got %q", logged)
	}
}
