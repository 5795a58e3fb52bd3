package domain

import "context"

// LoadReport aggregates what happened at the load boundary: how many raw
// rows were seen, how many survived validation, and why the rest were
// dropped. Per-row problems never abort a load.
type LoadReport struct {
	Source          string `json:"source"`
	RowsRead        int    `json:"rows_read"`
	RowsKept        int    `json:"rows_kept"`
	DroppedNoCoords int    `json:"dropped_no_coords"`
	DefaultedCounts int    `json:"defaulted_counts"`
}

// RecordSource loads the accident dataset exactly once at startup.
// This follows the Dependency Inversion Principle - domain defines the interface
type RecordSource interface {
	// Load reads every usable record. Implementations skip malformed rows
	// and account for them in the report rather than failing the batch.
	Load(ctx context.Context) ([]AccidentRecord, LoadReport, error)
}
