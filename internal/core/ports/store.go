package ports

import "go.trai.ch/faststring/internal/core/domain"

// ResultStore defines the interface for persisting benchmark measurements.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Load returns the measurements saved at path keyed by scenario name.
	// A missing file yields an empty map.
	Load(path string) (map[string]domain.Measurement, error)

	// Save merges ms into the measurements saved at path.
	Save(path string, ms []domain.Measurement) error
}
