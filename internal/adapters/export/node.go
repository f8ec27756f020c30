package export

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the graph exporter Graft node.
const NodeID graft.ID = "adapter.exporter"

func init() {
	graft.Register(graft.Node[ports.GraphExporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphExporter, error) {
			return New(), nil
		},
	})
}
