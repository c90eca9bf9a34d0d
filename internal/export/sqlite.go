package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/apidoc/internal/extract"
)

const createRecordsTable = `
CREATE TABLE api_records (
    id            TEXT PRIMARY KEY,
    ordinal       INTEGER NOT NULL,
    repo          TEXT NOT NULL,
    file          TEXT NOT NULL,
    line          INTEGER NOT NULL,
    method        TEXT NOT NULL,
    path          TEXT NOT NULL,
    documentation TEXT NOT NULL,
    notes         TEXT NOT NULL,
    extracted_at  TEXT NOT NULL
)`

const createRecordsIndex = `CREATE INDEX idx_api_records_file ON api_records(repo, file)`

// SQLiteWriter stores records in the api_records table.
type SQLiteWriter struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteWriter creates a writer on an open database.
func NewSQLiteWriter(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{db: db, now: time.Now}
}

// Replace drops and recreates api_records and inserts all records in a single
// transaction. Stored values have the CSV quote doubling removed.
func (w *SQLiteWriter) Replace(ctx context.Context, records []*extract.Record) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, ddl := range []string{"DROP TABLE IF EXISTS api_records", createRecordsTable, createRecordsIndex} {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create api_records table: %w", err)
		}
	}

	// Build the statement once with squirrel, then reuse it for every row
	sqlStr, _, err := sq.Insert("api_records").
		Columns("id", "ordinal", "repo", "file", "line", "method", "path", "documentation", "notes", "extracted_at").
		Values("", 0, "", "", 0, "", "", "", "", "").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	extractedAt := w.now().UTC().Format(time.RFC3339)
	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(),
			i,
			r.Repo,
			r.File,
			r.Line,
			extract.Unescape(r.Method()),
			extract.Unescape(r.FullPath()),
			extract.Unescape(r.Documentation()),
			extract.Unescape(r.Notes()),
			extractedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", r.File, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// WriteSQLite opens (or creates) the database at dbPath and replaces its
// api_records table with records.
func WriteSQLite(ctx context.Context, dbPath string, records []*extract.Record) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	return NewSQLiteWriter(db).Replace(ctx, records)
}
