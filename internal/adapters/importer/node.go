package importer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/golang"
	"go.trai.ch/strata/internal/adapters/jvm"
	"go.trai.ch/strata/internal/adapters/manifest"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the importer dispatcher Graft node.
const NodeID graft.ID = "adapter.importer"

func init() {
	graft.Register(graft.Node[ports.GraphImporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{golang.NodeID, jvm.NodeID, manifest.NodeID},
		Run: func(ctx context.Context) (ports.GraphImporter, error) {
			goImporter, err := graft.Dep[*golang.Importer](ctx)
			if err != nil {
				return nil, err
			}
			jvmImporter, err := graft.Dep[*jvm.Importer](ctx)
			if err != nil {
				return nil, err
			}
			manifestImporter, err := graft.Dep[*manifest.Importer](ctx)
			if err != nil {
				return nil, err
			}
			return NewDispatcher(map[domain.SourceKind]ports.GraphImporter{
				domain.SourceGo:       goImporter,
				domain.SourceJVM:      jvmImporter,
				domain.SourceManifest: manifestImporter,
			}), nil
		},
	})
}
