// Package file loads the accident dataset from a delimited text export
// (comma-separated .csv or the tab-separated .txt the city publishes).
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/routesafe/backend/internal/domain"
)

// Dataset column headers. Missing columns are tolerated; their fields
// stay zero-valued.
const (
	colLatitude    = "LATITUDE"
	colLongitude   = "LONGITUDE"
	colDate        = "CRASH DATE"
	colTime        = "CRASH TIME"
	colInjured     = "NUMBER OF PERSONS INJURED"
	colKilled      = "NUMBER OF PERSONS KILLED"
	colFactor      = "CONTRIBUTING FACTOR VEHICLE 1"
	colStreet      = "ON STREET NAME"
	colCrossStreet = "CROSS STREET NAME"
	colBorough     = "BOROUGH"
)

// Source reads accident records from a single file on disk.
type Source struct {
	path string
}

// NewSource creates a file-backed record source.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load parses the whole file. Rows without parsable coordinates are
// dropped and counted; unparsable injury/fatality counts default to zero
// and are counted as defaulted. One bad row never aborts the load.
func (s *Source) Load(ctx context.Context) ([]domain.AccidentRecord, domain.LoadReport, error) {
	report := domain.LoadReport{Source: s.path}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, report, fmt.Errorf("file: %w: %v", domain.ErrSourceUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(s.path), ".txt") {
		reader.Comma = '\t'
	}
	// City exports carry ragged rows; keep reading past them.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, report, fmt.Errorf("file: %w: reading header: %v", domain.ErrSourceUnavailable, err)
	}
	idx := makeIndex(header)

	var records []domain.AccidentRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.RowsRead++
			report.DroppedNoCoords++
			continue
		}
		report.RowsRead++

		lat, latOK := parseFloat(field(row, idx, colLatitude))
		lng, lngOK := parseFloat(field(row, idx, colLongitude))
		if !latOK || !lngOK {
			report.DroppedNoCoords++
			continue
		}

		injured, ok := parseCount(field(row, idx, colInjured))
		if !ok {
			report.DefaultedCounts++
		}
		killed, ok := parseCount(field(row, idx, colKilled))
		if !ok {
			report.DefaultedCounts++
		}

		records = append(records, domain.AccidentRecord{
			Latitude:    lat,
			Longitude:   lng,
			Date:        field(row, idx, colDate),
			Time:        field(row, idx, colTime),
			Injured:     injured,
			Killed:      killed,
			Severity:    domain.ComputeSeverity(injured, killed),
			Factor:      field(row, idx, colFactor),
			Street:      field(row, idx, colStreet),
			CrossStreet: field(row, idx, colCrossStreet),
			Borough:     field(row, idx, colBorough),
		})
	}

	report.RowsKept = len(records)
	return records, report, nil
}

// makeIndex maps header names to column positions.
func makeIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return idx
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat rejects empty, non-numeric and NaN values.
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != f {
		return 0, false
	}
	return f, true
}

// parseCount reads a non-negative integer, defaulting to zero. The city
// data sometimes carries counts as "2.0".
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != f || f < 0 {
		return 0, false
	}
	return int(f), true
}
