package checker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the checker Graft node.
const NodeID graft.ID = "engine.checker"

func init() {
	graft.Register(graft.Node[*Checker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (*Checker, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(telemetry), nil
		},
	})
}
