package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/skinsight/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestAnalysisRepositoryListsNewestFirstPerUser(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "skinsight-analyses.db"))
	repo := NewAnalysisRepository(database)
	ctx := context.Background()

	owner := createRepositoryTestUser(t, database, "owner@example.com")
	other := createRepositoryTestUser(t, database, "other@example.com")

	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	older := createRepositoryTestAnalysis(t, repo, owner.ID, base, models.OverallHealthFair)
	newer := createRepositoryTestAnalysis(t, repo, owner.ID, base.Add(time.Hour), models.OverallHealthGood)
	createRepositoryTestAnalysis(t, repo, other.ID, base.Add(2*time.Hour), models.OverallHealthExcellent)

	records, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 owner records, got %d", len(records))
	}
	if records[0].ID != newer.ID || records[1].ID != older.ID {
		t.Fatalf("expected newest first, got ids %q then %q", records[0].ID, records[1].ID)
	}
	if records[0].Result().OverallHealth != models.OverallHealthGood {
		t.Fatalf("expected analysis_data to round-trip, got %q", records[0].Result().OverallHealth)
	}
	for _, record := range records {
		if record.UserID != owner.ID {
			t.Fatalf("expected only owner records, got user_id %q", record.UserID)
		}
	}
}

func TestAnalysisRepositoryListReturnsEmptySliceForNewUser(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "skinsight-empty.db"))
	repo := NewAnalysisRepository(database)
	user := createRepositoryTestUser(t, database, "empty@example.com")

	records, err := repo.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", records)
	}
}

func TestAnalysisRepositoryDeleteOwnedIgnoresForeignRecords(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "skinsight-delete.db"))
	repo := NewAnalysisRepository(database)
	ctx := context.Background()

	owner := createRepositoryTestUser(t, database, "owner@example.com")
	intruder := createRepositoryTestUser(t, database, "intruder@example.com")
	record := createRepositoryTestAnalysis(t, repo, owner.ID, time.Now().UTC(), models.OverallHealthGood)

	if err := repo.DeleteOwned(ctx, intruder.ID, record.ID); err != nil {
		t.Fatalf("foreign delete should be a no-op, got error: %v", err)
	}
	records, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected owner record to survive foreign delete, got %d records", len(records))
	}

	if err := repo.DeleteOwned(ctx, owner.ID, "missing-id"); err != nil {
		t.Fatalf("missing id delete should be a no-op, got error: %v", err)
	}

	if err := repo.DeleteOwned(ctx, owner.ID, record.ID); err != nil {
		t.Fatalf("delete own record: %v", err)
	}
	records, err = repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list analyses after delete: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected owner record to be deleted, got %d records", len(records))
	}
}

func createRepositoryTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := NewUserRepository(database).Create(context.Background(), &user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createRepositoryTestAnalysis(t *testing.T, repo *AnalysisRepository, userID string, createdAt time.Time, health models.OverallHealth) models.SkinAnalysis {
	t.Helper()

	record := models.SkinAnalysis{
		UserID: userID,
		AnalysisData: datatypes.NewJSONType(models.AnalysisResult{
			OverallHealth:   health,
			Recommendations: []string{"Get 7-9 hours of quality sleep each night"},
		}),
		CreatedAt: createdAt,
	}
	if err := repo.Create(context.Background(), &record); err != nil {
		t.Fatalf("create analysis: %v", err)
	}
	return record
}
