package ports

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
)

// GraphImporter turns an artifact set into a dependency graph.
//
//go:generate mockgen -source=importer.go -destination=mocks/mock_importer.go -package=mocks
type GraphImporter interface {
	// Import reads the artifacts described by src. Failures match domain.ErrImportFailed.
	Import(ctx context.Context, src domain.Source) (*domain.Graph, error)
}

// Fingerprinter computes a stable key for the artifacts behind a source.
type Fingerprinter interface {
	// Fingerprint hashes the source options and the content of every relevant file.
	Fingerprint(src domain.Source) (string, error)
}
