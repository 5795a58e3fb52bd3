package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routesafe/backend/internal/domain"
)

// Source implements domain.RecordSource over a PostgreSQL table
// populated by the importer.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource creates a new PostgreSQL record source.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// Load reads every accident row. Rows with NULL coordinates are excluded
// in SQL, so the report only accounts for rows dropped on scan.
func (s *Source) Load(ctx context.Context) ([]domain.AccidentRecord, domain.LoadReport, error) {
	report := domain.LoadReport{Source: "postgres"}

	query := `
		SELECT latitude, longitude,
			   COALESCE(crash_date, ''), COALESCE(crash_time, ''),
			   COALESCE(injured, 0), COALESCE(killed, 0),
			   COALESCE(factor, ''), COALESCE(street, ''),
			   COALESCE(cross_street, ''), COALESCE(borough, '')
		FROM accidents
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, report, fmt.Errorf("postgres: %w: %v", domain.ErrSourceUnavailable, err)
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
		return nil, report, fmt.Errorf("postgres: failed to read accident rows: %w", err)
	}

	report.RowsKept = len(records)
	return records, report, nil
}

// Health checks database connectivity.
func (s *Source) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
