package shared

import (
	"database/sql"
	"testing"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return count == 1
}

func TestNewDatabase(t *testing.T) {
	db := setupDB(t)
	if err := db.Ping(); err != nil {
		t.Errorf("expected live connection, got %v", err)
	}

	ConfigureDatabase(db, 4, 2)
	if got := db.Stats().MaxOpenConnections; got != 4 {
		t.Errorf("expected 4 max open connections, got %d", got)
	}
}

func TestRunMigrations(t *testing.T) {
	db := setupDB(t)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for _, table := range []string{"schema_migrations", "analyses", "quiz_results", "quiz_results_sequence"} {
		if !tableExists(t, db, table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	t.Run("is idempotent", func(t *testing.T) {
		if err := RunMigrations(db); err != nil {
			t.Errorf("expected rerun to succeed, got %v", err)
		}
	})
}

func TestRollbackMigration(t *testing.T) {
	t.Run("rolls back the latest migration", func(t *testing.T) {
		db := setupDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}
		if tableExists(t, db, "analyses") {
			t.Error("expected analyses table to be dropped")
		}
	})

	t.Run("errors with nothing applied", func(t *testing.T) {
		db := setupDB(t)
		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error with no migrations to roll back")
		}
	})
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}

	if len(migrations) == 0 {
		t.Fatal("expected at least one migration")
	}
	for i, m := range migrations {
		if m.Up == "" || m.Down == "" {
			t.Errorf("migration %d missing up or down SQL", m.Version)
		}
		if i > 0 && migrations[i-1].Version >= m.Version {
			t.Error("expected migrations sorted by version")
		}
	}
}
