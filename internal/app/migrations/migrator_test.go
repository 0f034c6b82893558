package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeExecer struct {
	sql  string
	args []any
	err  error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.CommandTag{}, f.err
}

func TestRecordMigrationUsesGivenExecutor(t *testing.T) {
	fake := &fakeExecer{}
	m := NewMigrator(nil)

	if err := m.recordMigration(context.Background(), fake, "001"); err != nil {
		t.Fatalf("recordMigration returned error: %v", err)
	}
	if !strings.Contains(fake.sql, "INSERT INTO schema_migrations") {
		t.Errorf("unexpected statement %q", fake.sql)
	}
	if len(fake.args) != 2 || fake.args[0] != "001" {
		t.Errorf("unexpected arguments %v", fake.args)
	}
}

func TestRecordMigrationWrapsError(t *testing.T) {
	fake := &fakeExecer{err: errors.New("connection closed")}
	m := NewMigrator(nil)

	err := m.recordMigration(context.Background(), fake, "001")
	if err == nil || !strings.Contains(err.Error(), "failed to record migration") {
		t.Errorf("unexpected error %v", err)
	}
}
