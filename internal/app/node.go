package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/export"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/importer"           //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/checker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			importer.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			checker.NodeID,
			report.NodeID,
			export.NodeID,
			watcher.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

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
	imp, err := graft.Dep[ports.GraphImporter](ctx)
	if err != nil {
		return nil, err
	}
	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.GraphStore](ctx)
	if err != nil {
		return nil, err
	}
	chk, err := graft.Dep[*checker.Checker](ctx)
	if err != nil {
		return nil, err
	}
	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	exporter, err := graft.Dep[ports.GraphExporter](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
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

	return New(loader, imp, fingerprinter, store, chk, reporter, exporter, w, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
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
	return &Components{App: a, Logger: log, Telemetry: telemetry}, nil
}
