package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tsawler/wordrefs/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	position   INTEGER PRIMARY KEY,
	word       TEXT NOT NULL,
	lemma      TEXT NOT NULL,
	dictionary TEXT NOT NULL,
	comments   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS records_word ON records(word);
CREATE TABLE IF NOT EXISTS dictionaries (
	code TEXT PRIMARY KEY
);
`

// OpenSQLite opens (creating if needed) the database at path and applies
// the records schema. Parent directories are created.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	for _, p := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 10000"} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: exec schema: %w", err)
	}
	return db, nil
}

// ReplaceRecords replaces the contents of both tables in one transaction.
// Record positions are 0-based in slice order.
func ReplaceRecords(ctx context.Context, db *sql.DB, records []model.Record, dictionaries []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM records", "DELETE FROM dictionaries"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: %s: %w", stmt, err)
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO records (position, word, lemma, dictionary, comments) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer ins.Close()
	for i, r := range records {
		if _, err := ins.ExecContext(ctx, i, r.Word, r.Lemma, r.Dictionary, r.Comments); err != nil {
			return fmt.Errorf("sqlite: insert record %d: %w", i, err)
		}
	}

	for _, d := range dictionaries {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO dictionaries (code) VALUES (?)`, d); err != nil {
			return fmt.Errorf("sqlite: insert dictionary %q: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// WriteSQLite opens the database at path and replaces its records and
// dictionaries.
func WriteSQLite(ctx context.Context, path string, records []model.Record, dictionaries []string) error {
	db, err := OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return ReplaceRecords(ctx, db, records, dictionaries)
}
