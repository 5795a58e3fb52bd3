package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/routesafe/backend/internal/domain"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeFixture(t, "accidents.csv",
		"CRASH DATE,CRASH TIME,BOROUGH,LATITUDE,LONGITUDE,NUMBER OF PERSONS INJURED,NUMBER OF PERSONS KILLED,CONTRIBUTING FACTOR VEHICLE 1,ON STREET NAME,CROSS STREET NAME\n"+
			"06/02/2025,8:15,BROOKLYN,40.70,-74.00,2,1,Unsafe Speed,ATLANTIC AVE,BEDFORD AVE\n"+
			"06/03/2025,9:00,QUEENS,,-73.80,1,0,Glare,MAIN ST,\n"+ // missing latitude
			"06/04/2025,10:30,BRONX,40.85,-73.88,junk,0,Following Too Closely,GRAND CONCOURSE,\n")

	records, report, err := NewSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(records))
	}
	if report.RowsRead != 3 || report.RowsKept != 2 || report.DroppedNoCoords != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.DefaultedCounts != 1 {
		t.Errorf("defaulted counts = %d, want 1 for the junk injured field", report.DefaultedCounts)
	}

	first := records[0]
	if first.Latitude != 40.70 || first.Longitude != -74.00 {
		t.Errorf("coordinates = (%v, %v)", first.Latitude, first.Longitude)
	}
	if first.Injured != 2 || first.Killed != 1 {
		t.Errorf("casualties = %d/%d, want 2/1", first.Injured, first.Killed)
	}
	if first.Severity != 7 {
		t.Errorf("severity = %v, want 2 + 5*1 = 7", first.Severity)
	}
	if first.Borough != "BROOKLYN" || first.Street != "ATLANTIC AVE" || first.CrossStreet != "BEDFORD AVE" {
		t.Errorf("unexpected text fields: %+v", first)
	}

	// Unparsable injured count defaults to zero, row survives
	if records[1].Injured != 0 || records[1].Severity != 0 {
		t.Errorf("bad count row = %+v, want zero injured and severity", records[1])
	}
}

func TestLoad_TabSeparatedTxt(t *testing.T) {
	path := writeFixture(t, "accidentdata.txt",
		"CRASH DATE\tCRASH TIME\tLATITUDE\tLONGITUDE\tNUMBER OF PERSONS INJURED\tNUMBER OF PERSONS KILLED\tBOROUGH\n"+
			"06/02/2025\t8:15\t40.70\t-74.00\t0\t0\tMANHATTAN\n")

	records, _, err := NewSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
	if records[0].Borough != "MANHATTAN" {
		t.Errorf("borough = %q", records[0].Borough)
	}
}

func TestLoad_MissingColumnsTolerated(t *testing.T) {
	// Only coordinates present: every other field stays zero-valued
	path := writeFixture(t, "partial.csv",
		"LATITUDE,LONGITUDE\n40.70,-74.00\n")

	records, report, err := NewSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Borough != "" || rec.Factor != "" || rec.Date != "" {
		t.Errorf("missing columns should stay empty: %+v", rec)
	}
	if rec.Severity != 0 {
		t.Errorf("severity = %v, want 0", rec.Severity)
	}
	// Absent count columns are counted as defaulted
	if report.DefaultedCounts != 2 {
		t.Errorf("defaulted counts = %d, want 2", report.DefaultedCounts)
	}
}

func TestLoad_NaNCoordinatesDropped(t *testing.T) {
	path := writeFixture(t, "nan.csv",
		"LATITUDE,LONGITUDE\nNaN,-74.00\n40.70,-74.00\n")

	records, report, err := NewSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, want 1", len(records))
	}
	if report.DroppedNoCoords != 1 {
		t.Errorf("dropped = %d, want 1", report.DroppedNoCoords)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := NewSource(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("got %v, want ErrSourceUnavailable", err)
	}
}
