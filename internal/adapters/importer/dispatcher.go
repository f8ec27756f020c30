// Package importer selects the graph importer for a source kind.
package importer

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphImporter = (*Dispatcher)(nil)

// Dispatcher routes an import to the importer registered for the source kind.
type Dispatcher struct {
	importers map[domain.SourceKind]ports.GraphImporter
}

// NewDispatcher creates a Dispatcher over the given importers.
func NewDispatcher(importers map[domain.SourceKind]ports.GraphImporter) *Dispatcher {
	return &Dispatcher{importers: importers}
}

// Import delegates to the importer for src.Kind.
func (d *Dispatcher) Import(ctx context.Context, src domain.Source) (*domain.Graph, error) {
	imp, ok := d.importers[src.Kind]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownSourceKind, "no importer for source kind"), "kind", string(src.Kind))
	}
	return imp.Import(ctx, src)
}
