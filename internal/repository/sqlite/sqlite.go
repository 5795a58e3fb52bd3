// Package sqlite reads and writes the normalized accident database
// produced by cmd/import.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/routesafe/backend/internal/domain"
)

// Schema creates the tables the importer fills and the server reads.
const Schema = `
CREATE TABLE IF NOT EXISTS accidents (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL,
	crash_date   TEXT NOT NULL DEFAULT '',
	crash_time   TEXT NOT NULL DEFAULT '',
	injured      INTEGER NOT NULL DEFAULT 0,
	killed       INTEGER NOT NULL DEFAULT 0,
	factor       TEXT NOT NULL DEFAULT '',
	street       TEXT NOT NULL DEFAULT '',
	cross_street TEXT NOT NULL DEFAULT '',
	borough      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS import_runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	imported_at TEXT NOT NULL,
	rows_read   INTEGER NOT NULL,
	rows_kept   INTEGER NOT NULL
);
`

// Open opens (creating if needed) the accident database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	return db, nil
}

// Init applies the schema.
func Init(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}
	return nil
}

// InsertRecords bulk-inserts records inside one transaction.
func InsertRecords(ctx context.Context, db *sql.DB, records []domain.AccidentRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accidents (
			latitude, longitude, crash_date, crash_time,
			injured, killed, factor, street, cross_street, borough
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.Latitude, rec.Longitude, rec.Date, rec.Time,
			rec.Injured, rec.Killed, rec.Factor, rec.Street, rec.CrossStreet, rec.Borough,
		)
		if err != nil {
			return fmt.Errorf("sqlite: failed to insert record: %w", err)
		}
	}

	return tx.Commit()
}

// RecordImportRun logs one importer execution.
func RecordImportRun(ctx context.Context, db *sql.DB, id, source, importedAt string, rowsRead, rowsKept int) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO import_runs (id, source, imported_at, rows_read, rows_kept)
		VALUES (?, ?, ?, ?, ?)
	`, id, source, importedAt, rowsRead, rowsKept)
	if err != nil {
		return fmt.Errorf("sqlite: failed to record import run: %w", err)
	}
	return nil
}

// Source implements domain.RecordSource over the accident database.
type Source struct {
	path string
}

// NewSource creates a SQLite-backed record source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads every accident row from the database.
func (s *Source) Load(ctx context.Context) ([]domain.AccidentRecord, domain.LoadReport, error) {
	report := domain.LoadReport{Source: s.path}

	db, err := Open(s.path)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT latitude, longitude, crash_date, crash_time,
			   injured, killed, factor, street, cross_street, borough
		FROM accidents
	`)
	if err != nil {
		return nil, report, fmt.Errorf("sqlite: %w: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var records []domain.AccidentRecord
	for rows.Next() {
		report.RowsRead++

		var rec domain.AccidentRecord
		err := rows.Scan(
			&rec.Latitude, &rec.Longitude, &rec.Date, &rec.Time,
			&rec.Injured, &rec.Killed,
			&rec.Factor, &rec.Street, &rec.CrossStreet, &rec.Borough,
		)
		if err != nil {
			report.DroppedNoCoords++
			continue
		}

		rec.Severity = domain.ComputeSeverity(rec.Injured, rec.Killed)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, report, fmt.Errorf("sqlite: failed to read accident rows: %w", err)
	}

	report.RowsKept = len(records)
	return records, report, nil
}
