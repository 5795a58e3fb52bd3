package service

import (
	"github.com/routesafe/backend/internal/domain"
)

// RecordSource is re-exported from domain for convenience
type RecordSource = domain.RecordSource
