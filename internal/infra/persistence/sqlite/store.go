// Package sqlite persists rate set documents to a single SQLite table using the
// pure Go modernc driver. Documents are served from a hydrated memory store and
// every mutation is written through inside a transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"reactcore/internal/infra/persistence/memory"
	"reactcore/pkg/rateset"
)

var _ rateset.Store = (*Store)(nil)

// DefaultPath is used when no database path is configured.
const DefaultPath = "reactcore.db"

// Store persists rate sets to SQLite while serving reads from memory.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the SQLite database at path and loads
// any stored rate sets.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS rate_sets (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		count INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create rate_sets table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db, path: path}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT name, payload, count, updated_at FROM rate_sets`)
	if err != nil {
		return fmt.Errorf("select rate_sets: %w", err)
	}
	defer func() { _ = rows.Close() }()
	snapshot := memory.Snapshot{}
	for rows.Next() {
		var (
			doc     rateset.Document
			payload []byte
			stamp   string
		)
		if err := rows.Scan(&doc.Name, &payload, &doc.Count, &stamp); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		doc.Payload = payload
		if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return fmt.Errorf("decode updated_at for %s: %w", doc.Name, err)
		}
		snapshot[doc.Name] = doc
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rate_sets: %w", err)
	}
	s.ImportState(snapshot)
	log.Debug().Str("driver", "sqlite").Str("path", s.path).Int("count", len(snapshot)).Msg("rate sets loaded")
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
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
			`INSERT INTO rate_sets(name,payload,count,updated_at) VALUES(?,?,?,?) ON CONFLICT(name) DO UPDATE SET payload=excluded.payload, count=excluded.count, updated_at=excluded.updated_at`,
			prepared.Name, []byte(prepared.Payload), prepared.Count, prepared.UpdatedAt.UTC().Format(time.RFC3339Nano))
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
		res, err := tx.ExecContext(ctx, `DELETE FROM rate_sets WHERE name = ?`, name)
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

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
