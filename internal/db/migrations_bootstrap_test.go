package db

import (
	"path/filepath"
	"reflect"
	"testing"

	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "skinsight-clean.db"))

	assertTableColumns(t, database, "users", "id", "email", "password_hash", "created_at")
	assertTableColumns(t, database, "skin_analyses", "id", "user_id", "analysis_data", "created_at")
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "skinsight-idempotent.db")

	first := openSQLiteForMigrationBootstrapTest(t, databasePath)
	firstSQLDB, err := first.DB()
	if err != nil {
		t.Fatalf("open first sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	second := openSQLiteForMigrationBootstrapTest(t, databasePath)
	assertAllEmbeddedMigrationsApplied(t, second)
}

func TestApplyEmbeddedMigrationsRecordsEachVersionOnce(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "skinsight-rerun.db"))

	if err := applyEmbeddedMigrations(database); err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}

	var recorded int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&recorded).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	migrations, err := loadEmbeddedMigrations(DriverSQLite)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	if recorded != int64(len(migrations)) {
		t.Fatalf("expected %d recorded migrations, got %d", len(migrations), recorded)
	}
}

func TestSplitSQLStatementsDropsBlankParts(t *testing.T) {
	t.Parallel()

	got := splitSQLStatements("CREATE TABLE a (id TEXT);\n\n ;CREATE TABLE b (id TEXT);  ")
	want := []string{"CREATE TABLE a (id TEXT)", "CREATE TABLE b (id TEXT)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSQLStatements() = %#v, want %#v", got, want)
	}
}

func TestLoadEmbeddedMigrationsHasMatchingDialects(t *testing.T) {
	t.Parallel()

	sqliteMigrations, err := loadEmbeddedMigrations(DriverSQLite)
	if err != nil {
		t.Fatalf("load sqlite migrations: %v", err)
	}
	postgresMigrations, err := loadEmbeddedMigrations(DriverPostgres)
	if err != nil {
		t.Fatalf("load postgres migrations: %v", err)
	}

	if len(sqliteMigrations) == 0 {
		t.Fatal("expected at least one sqlite migration")
	}
	if len(sqliteMigrations) != len(postgresMigrations) {
		t.Fatalf("expected dialects to carry the same migrations, sqlite=%d postgres=%d", len(sqliteMigrations), len(postgresMigrations))
	}
	for index := range sqliteMigrations {
		if sqliteMigrations[index].Version != postgresMigrations[index].Version {
			t.Fatalf("migration %d version mismatch: sqlite=%s postgres=%s", index, sqliteMigrations[index].Version, postgresMigrations[index].Version)
		}
	}
}

func openSQLiteForMigrationBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
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

	return database
}

func assertTableColumns(t *testing.T, database *gorm.DB, tableName string, columns ...string) {
	t.Helper()

	migrator := database.Migrator()
	if !migrator.HasTable(tableName) {
		t.Fatalf("expected table %s to exist", tableName)
	}
	for _, column := range columns {
		if !migrator.HasColumn(tableName, column) {
			t.Fatalf("expected column %s.%s to exist", tableName, column)
		}
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := loadEmbeddedMigrations(DriverSQLite)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	expectedVersions := make([]string, 0, len(migrations))
	for _, migration := range migrations {
		expectedVersions = append(expectedVersions, migration.Version)
	}

	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version ASC`).Scan(&rows).Error; err != nil {
		t.Fatalf("load applied migration versions: %v", err)
	}
	actualVersions := make([]string, 0, len(rows))
	for _, row := range rows {
		actualVersions = append(actualVersions, row.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}
