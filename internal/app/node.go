package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/faststring/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/faststring/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/faststring/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/faststring/internal/adapters/store"              //nolint:depguard // Wired in app layer
	"go.trai.ch/faststring/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/faststring/internal/engine/bench"
	"go.trai.ch/faststring/internal/engine/check"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs beyond the App itself.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			bench.NodeID,
			check.NodeID,
			store.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*bench.Runner](ctx)
	if err != nil {
		return nil, err
	}

	checker, err := graft.Dep[*check.Checker](ctx)
	if err != nil {
		return nil, err
	}

	results, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, checker, results, registry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
