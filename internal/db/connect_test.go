package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestOpenSQLiteBootstrapsSchema(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:db-%s?mode=memory&cache=shared", t.Name())
	dbh, err := Open(ctx, DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })

	// every table is present and writable
	if _, err := dbh.ExecContext(ctx,
		`INSERT INTO exam_results (nick, total_points, max_points, percentage, passed, timestamp, exam_type)
		 VALUES ('anna', 1, 2, 50.0, 0, '2024-01-01T00:00:00Z', 'ortografia')`); err != nil {
		t.Errorf("exam_results: %v", err)
	}
	if _, err := dbh.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, name) VALUES ('u', 'h', 'user', 'U')`); err != nil {
		t.Errorf("users: %v", err)
	}
	if _, err := dbh.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ('ResultCreated', '1', '{}', 0)`); err != nil {
		t.Errorf("event_log: %v", err)
	}

	// opening the same database again must not fail on existing tables
	again, err := Open(ctx, DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Driver("oracle"), ""); err == nil {
		t.Error("unknown driver accepted")
	}
}

// OFFSET is a reserved word in Postgres; the event_log primary key must stay
// quoted or schema bootstrap fails under the pgx driver.
func TestPostgresSchemaQuotesReservedColumn(t *testing.T) {
	if !strings.Contains(schemaPostgres, `"offset" BIGSERIAL PRIMARY KEY`) {
		t.Error("event_log offset column is not quoted in the postgres schema")
	}
}
