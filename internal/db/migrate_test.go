package db_test

import (
	"context"
	"testing"

	dbfs "github.com/garnizeh/leaddesk/db"
	"github.com/garnizeh/leaddesk/internal/db"
)

func setupDB(t *testing.T) *db.DB {
	t.Helper()

	d, err := db.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestMigrate_CreatesTables(t *testing.T) {
	ctx := context.Background()
	d := setupDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, table := range []string{"leads", "users", "schema_migrations"} {
		var name string
		row := d.QueryRow(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := row.Scan(&name); err != nil {
			t.Errorf("table %q missing after migrate: %v", table, err)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := setupDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var applied int
	row := d.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations")
	if err := row.Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("no migrations recorded")
	}
}

func TestStatusConstraint(t *testing.T) {
	ctx := context.Background()
	d := setupDB(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	_, err := d.Exec(ctx, `INSERT INTO leads (id, first_name, last_name, email, country, linkedin_url, visa_categories, status)
		VALUES ('x', 'A', 'B', 'a@b.c', 'US', 'https://l', '["O-1"]', 'ARCHIVED')`)
	if err == nil {
		t.Fatal("expected CHECK constraint violation for unknown status")
	}
}
