// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/faststring/internal/adapters/config"
	_ "go.trai.ch/faststring/internal/adapters/logger"
	_ "go.trai.ch/faststring/internal/adapters/metrics"
	_ "go.trai.ch/faststring/internal/adapters/store"
	_ "go.trai.ch/faststring/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/faststring/internal/app"
	_ "go.trai.ch/faststring/internal/engine/bench"
	_ "go.trai.ch/faststring/internal/engine/check"
)
