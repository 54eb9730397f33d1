package testutil

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
)

func TestStubDBStoresAndQueriesRows(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	if err := conn.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	insert := "INSERT INTO rate_sets(name,payload) VALUES($1,$2) ON CONFLICT(name) DO UPDATE SET payload=EXCLUDED.payload"
	for _, payload := range []string{"[]", "[1]"} {
		if _, err := conn.ExecContext(ctx, insert, []driver.NamedValue{{Value: "fuel"}, {Value: payload}}); err != nil {
			t.Fatalf("ExecContext insert: %v", err)
		}
	}
	if rows := conn.Tables["rate_sets"]; len(rows) != 1 || rows[0]["payload"] != "[1]" {
		t.Fatalf("upsert must replace the row, got %v", rows)
	}

	rows, err := conn.QueryContext(ctx, "SELECT name, payload FROM rate_sets", nil)
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	dest := make([]driver.Value, 2)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if dest[0] != "fuel" || dest[1] != "[1]" {
		t.Fatalf("unexpected row values: %v", dest)
	}
	if err := rows.Next(dest); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}

	res, err := conn.ExecContext(ctx, "DELETE FROM rate_sets WHERE name = $1", []driver.NamedValue{{Value: "fuel"}})
	if err != nil {
		t.Fatalf("ExecContext delete: %v", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("expected one deleted row, got %d", n)
	}
	res, _ = conn.ExecContext(ctx, "DELETE FROM rate_sets WHERE name = $1", []driver.NamedValue{{Value: "fuel"}})
	if n, _ := res.RowsAffected(); n != 0 {
		t.Fatalf("expected no deleted rows, got %d", n)
	}
}

func TestStubDBFailureSwitches(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.FailPing = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}
	conn.FailTables = map[string]bool{"rate_sets": true}
	if _, err := conn.QueryContext(ctx, "SELECT name FROM rate_sets", nil); err == nil {
		t.Fatalf("expected query failure")
	}
	if _, err := conn.ExecContext(ctx, "INSERT INTO rate_sets(name) VALUES($1)", []driver.NamedValue{{Value: "x"}}); err == nil {
		t.Fatalf("expected insert failure")
	}
	conn.FailBegin = true
	if _, err := conn.BeginTx(ctx, driver.TxOptions{}); err == nil {
		t.Fatalf("expected begin failure")
	}
	if _, err := conn.QueryContext(ctx, "UPDATE rate_sets SET x=1", nil); err == nil {
		t.Fatalf("expected parse failure for non-select")
	}
}
