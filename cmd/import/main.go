// Command import converts a raw accident export (.csv or tab-separated
// .txt) into the normalized SQLite database the server reads.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/routesafe/backend/internal/repository/file"
	"github.com/routesafe/backend/internal/repository/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	input := flag.String("in", "accidentdata.csv", "path to the raw accident export")
	output := flag.String("out", "accidents.db", "path to the SQLite database to write")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Reading %s...", *input)
	records, report, err := file.NewSource(*input).Load(ctx)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Read %d rows: kept %d, dropped %d without coordinates, defaulted %d counts",
		report.RowsRead, report.RowsKept, report.DroppedNoCoords, report.DefaultedCounts)

	db, err := sqlite.Open(*output)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	defer db.Close()

	if err := sqlite.Init(ctx, db); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	if err := sqlite.InsertRecords(ctx, db, records); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	runID := uuid.NewString()
	importedAt := time.Now().UTC().Format(time.RFC3339)
	if err := sqlite.RecordImportRun(ctx, db, runID, *input, importedAt, report.RowsRead, report.RowsKept); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import %s complete: %d records written to %s", runID, len(records), *output)
}
