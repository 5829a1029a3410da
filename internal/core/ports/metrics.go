package ports

import "go.trai.ch/faststring/internal/core/domain"

// Metrics exports benchmark results and buffer counters.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// Observe records one measurement.
	Observe(m domain.Measurement)
	// Snapshot gathers every exported value.
	Snapshot() ([]domain.Sample, error)
}
