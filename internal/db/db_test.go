package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/yigit/studentrecords/internal/config"
)

func openMemory(t *testing.T, name string) *sqlx.DB {
	t.Helper()
	d, err := Open(context.Background(), Options{
		Driver: config.DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestSqliteDSN(t *testing.T) {
	cases := map[string]string{
		"students.db":              "students.db?_foreign_keys=on",
		"file:x?mode=memory":       "file:x?mode=memory&_foreign_keys=on",
		"file:x?_foreign_keys=off": "file:x?_foreign_keys=off",
		"students.db?_fk=1":        "students.db?_fk=1",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	d := openMemory(t, "dbfk")
	var on int
	if err := d.Get(&on, `PRAGMA foreign_keys`); err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if on != 1 {
		t.Fatalf("foreign_keys = %d, want 1", on)
	}
	if got := d.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("max open connections = %d, want 1", got)
	}
}

func TestStatementBuilder_PlaceholderFollowsDriver(t *testing.T) {
	d := openMemory(t, "dbsb")
	query, _, err := StatementBuilder(d).Select("id").From("t").Where("id = ?", 1).ToSql()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if query != "SELECT id FROM t WHERE id = ?" {
		t.Fatalf("unexpected query %q", query)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	d := openMemory(t, "dbtx")
	ctx := context.Background()
	if _, err := d.ExecContext(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := WithTransaction(ctx, d, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO t (id) VALUES (1)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var n int
	if err := d.GetContext(ctx, &n, `SELECT COUNT(*) FROM t`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows after rollback = %d, want 0", n)
	}
}
