package manifest

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphImporter = (*Importer)(nil)

// Importer loads a graph from a manifest document.
type Importer struct{}

// NewImporter creates a manifest Importer.
func NewImporter() *Importer {
	return &Importer{}
}

// Import reads src.File.
func (i *Importer) Import(_ context.Context, src domain.Source) (*domain.Graph, error) {
	data, err := os.ReadFile(src.File) //nolint:gosec // Path comes from the rule file
	if err != nil {
		return nil, importError(err, "failed to read graph document", src.File)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, importError(err, "failed to parse graph document", src.File)
	}

	g, err := doc.Graph()
	if err != nil {
		return nil, importError(err, "graph document is inconsistent", src.File)
	}
	return g, nil
}

func importError(err error, msg, path string) error {
	return errors.Join(domain.ErrImportFailed, zerr.With(zerr.Wrap(err, msg), "path", path))
}
