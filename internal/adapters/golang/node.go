package golang

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the Go importer Graft node.
const NodeID graft.ID = "adapter.importer.golang"

func init() {
	graft.Register(graft.Node[*Importer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Importer, error) {
			return NewImporter(), nil
		},
	})
}
