package migrations

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/db"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(ctx, db.Options{Driver: config.DriverSQLite, DSN: "file:migrations?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	m := NewMigrator(d, zerolog.Nop())
	for i := 0; i < 2; i++ {
		if err := m.Migrate(ctx); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	versions, err := m.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("applied versions: %v", err)
	}
	if len(versions) != 1 || versions[0] != "0001" {
		t.Fatalf("applied versions = %v, want [0001]", versions)
	}

	for _, table := range []string{"programs", "students"} {
		var n int
		err := d.GetContext(ctx, &n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err != nil {
			t.Fatalf("lookup %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("table %s missing", table)
		}
	}
}

func TestMigrate_StudentsReferencePrograms(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(ctx, db.Options{Driver: config.DriverSQLite, DSN: "file:migrationsfk?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := NewMigrator(d, zerolog.Nop()).Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_, err = d.ExecContext(ctx, `INSERT INTO students (id, name, email, average, program_id) VALUES (1, 'a', 'a@x', 1, 999)`)
	if err == nil {
		t.Fatalf("expected foreign key violation for unknown program")
	}
}
