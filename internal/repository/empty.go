// Package repository holds the fallback record source. Concrete sources
// live in the file, sqlite and postgres subpackages.
package repository

import (
	"context"

	"github.com/routesafe/backend/internal/domain"
)

// Empty is the source of last resort: a well-formed, zero-record dataset
// used when every configured source fails, so downstream code never sees
// a missing collection and the process always starts.
type Empty struct{}

// NewEmpty creates the fallback source.
func NewEmpty() *Empty {
	return &Empty{}
}

// Load returns no records and an empty report.
func (e *Empty) Load(ctx context.Context) ([]domain.AccidentRecord, domain.LoadReport, error) {
	return nil, domain.LoadReport{Source: "empty"}, nil
}
