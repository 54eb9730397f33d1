// Package postgres persists rate set documents to Postgres through the pgx
// database/sql driver. Reads are served from a memory store hydrated on open.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/rs/zerolog/log"

	"reactcore/internal/infra/persistence/memory"
	"reactcore/pkg/rateset"
)

var _ rateset.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	// DefaultDSN is used when no DSN is configured.
	DefaultDSN = "postgres://localhost/reactcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists rate sets to Postgres while serving reads from memory.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using dsn (DefaultDSN when empty),
// ensures the rate_sets table exists and hydrates the memory view.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	snapshot, err := loadSnapshot(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	mem := memory.NewStore()
	mem.ImportState(snapshot)
	log.Debug().Str("driver", "postgres").Int("count", len(snapshot)).Msg("rate sets loaded")
	return &Store{Store: mem, db: db}, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS rate_sets (
		name TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		count INTEGER NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create rate_sets table: %w", err)
	}
	return nil
}

func loadSnapshot(ctx context.Context, db *sql.DB) (memory.Snapshot, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, payload, count, updated_at FROM rate_sets`)
	if err != nil {
		return nil, fmt.Errorf("select rate_sets: %w", err)
	}
	defer func() { _ = rows.Close() }()
	snapshot := memory.Snapshot{}
	for rows.Next() {
		var (
			doc     rateset.Document
			payload []byte
			stamp   time.Time
		)
		if err := rows.Scan(&doc.Name, &payload, &doc.Count, &stamp); err != nil {
			return nil, fmt.Errorf("scan rate_sets: %w", err)
		}
		doc.Payload = payload
		doc.UpdatedAt = stamp.UTC()
		snapshot[doc.Name] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rate_sets: %w", err)
	}
	return snapshot, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Put upserts the document row and then updates the in-memory view.
func (s *Store) Put(ctx context.Context, doc rateset.Document) error {
	prepared, err := s.Prepare(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rate_sets(name,payload,count,updated_at) VALUES($1,$2,$3,$4) ON CONFLICT(name) DO UPDATE SET payload=EXCLUDED.payload, count=EXCLUDED.count, updated_at=EXCLUDED.updated_at`,
			prepared.Name, string(prepared.Payload), prepared.Count, prepared.UpdatedAt.UTC())
		if err != nil {
			return fmt.Errorf("upsert %s: %w", prepared.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.Store.Put(ctx, prepared)
}

// Delete removes the document row and the in-memory entry.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM rate_sets WHERE name = $1`, name)
		if err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, err
	}
	removed, err := s.Store.Delete(ctx, name)
	return removed || affected > 0, err
}

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
