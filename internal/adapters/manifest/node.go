package manifest

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the manifest importer Graft node.
const NodeID graft.ID = "adapter.importer.manifest"

func init() {
	graft.Register(graft.Node[*Importer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Importer, error) {
			return NewImporter(), nil
		},
	})
}
