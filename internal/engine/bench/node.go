package bench

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/faststring/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/faststring/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/faststring/internal/core/ports"
)

// NodeID is the unique identifier for the benchmark runner Graft node.
const NodeID graft.ID = "engine.bench"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(telemetry, log), nil
		},
	})
}
