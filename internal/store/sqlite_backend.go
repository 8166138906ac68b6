package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"calendar-cli/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps the blob in a key/value table of a local SQLite file.
//
// If the table holds no blob yet and LegacyJSONPath points at an existing JSON
// blob, that blob is imported once and served from SQLite afterwards.
type SQLiteBackend struct {
	Path           string
	LegacyJSONPath string
}

func (b SQLiteBackend) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(b.Path) == "" {
		return nil, errors.New("sqlite backend: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", b.Path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation in another terminal share the file.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateKV(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateKV(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (b SQLiteBackend) ReadBlob(ctx context.Context) ([]byte, error) {
	db, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, StorageKey).Scan(&v)
	if err == nil {
		return []byte(v), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// One-time import of a JSON blob written by the file backend.
	if strings.TrimSpace(b.LegacyJSONPath) != "" {
		legacy, rerr := os.ReadFile(b.LegacyJSONPath)
		if rerr == nil && len(legacy) > 0 {
			if err := writeKV(ctx, db, StorageKey, legacy); err != nil {
				return nil, fmt.Errorf("import %s: %w", b.LegacyJSONPath, err)
			}
			log.Info("imported JSON event blob into sqlite", "from", b.LegacyJSONPath, "to", b.Path)
			return legacy, nil
		}
	}
	return nil, fmt.Errorf("sqlite backend: no %s blob: %w", StorageKey, os.ErrNotExist)
}

func (b SQLiteBackend) WriteBlob(ctx context.Context, data []byte) error {
	db, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return writeKV(ctx, db, StorageKey, data)
}

func writeKV(ctx context.Context, db *sql.DB, k string, v []byte) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		k, string(v), time.Now().UTC().UnixMilli())
	return err
}
