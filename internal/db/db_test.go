package db_test

import (
	"testing"

	"github.com/cytoscape/cyweb/internal/testutil"
)

func TestMigratedSchema(t *testing.T) {
	// Setup test database with migrations already applied
	database := testutil.SetupTestDB(t)

	// Verify foreign keys are enabled
	var foreignKeysEnabled int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeysEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys status: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Errorf("Foreign keys should be enabled, got: %d", foreignKeysEnabled)
	}

	// The category rows are seeded by the initial migration.
	var categoryCount int
	if err := database.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoryCount); err != nil {
		t.Fatalf("Failed to count categories: %v", err)
	}
	if categoryCount != 5 {
		t.Errorf("Expected 5 seeded categories, got %d", categoryCount)
	}
}

func TestDuplicateVersionConstraint(t *testing.T) {
	database := testutil.SetupTestDB(t)

	_, err := database.Exec("INSERT INTO plugins (name, description, category_id) VALUES ('P', 'd', 1)")
	if err != nil {
		t.Fatalf("Failed to insert plugin: %v", err)
	}
	if _, err := database.Exec("INSERT INTO plugin_versions (plugin_id, version) VALUES (1, '1.0')"); err != nil {
		t.Fatalf("Failed to insert version: %v", err)
	}

	// The UNIQUE (plugin_id, version) pair must reject a second identical row.
	if _, err := database.Exec("INSERT INTO plugin_versions (plugin_id, version) VALUES (1, '1.0')"); err == nil {
		t.Error("Expected a UNIQUE constraint violation for a duplicate version")
	}

	// The same version string under another plugin is allowed.
	_, err = database.Exec("INSERT INTO plugins (name, description, category_id) VALUES ('Q', 'd', 1)")
	if err != nil {
		t.Fatalf("Failed to insert second plugin: %v", err)
	}
	if _, err := database.Exec("INSERT INTO plugin_versions (plugin_id, version) VALUES (2, '1.0')"); err != nil {
		t.Errorf("Same version under another plugin should insert cleanly: %v", err)
	}
}

func TestCascadeDeletes(t *testing.T) {
	database := testutil.SetupTestDB(t)

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := database.Exec(query, args...); err != nil {
			t.Fatalf("Exec failed (%s): %v", query, err)
		}
	}

	mustExec("INSERT INTO plugins (name, description, category_id) VALUES ('P', 'd', 1)")
	mustExec("INSERT INTO plugin_versions (plugin_id, version) VALUES (1, '1.0')")
	mustExec("INSERT INTO authors (name) VALUES ('Alice')")
	mustExec("INSERT INTO plugin_authors (version_id, author_id, authorship_seq) VALUES (1, 1, 0)")

	mustExec("DELETE FROM plugins WHERE id = 1")

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM plugin_versions").Scan(&count); err != nil {
		t.Fatalf("Failed to count versions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected versions to cascade on plugin delete, got %d rows", count)
	}
	if err := database.QueryRow("SELECT COUNT(*) FROM plugin_authors").Scan(&count); err != nil {
		t.Fatalf("Failed to count authorship rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected authorship rows to cascade on plugin delete, got %d rows", count)
	}
}
