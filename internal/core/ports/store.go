package ports

import "go.trai.ch/strata/internal/core/domain"

// GraphStore caches imported graphs by fingerprint.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GraphStore interface {
	// Get returns the graph stored under key in dir, or nil, nil if there is none.
	Get(dir, key string) (*domain.Graph, error)

	// Put stores the graph under key in dir.
	Put(dir, key string, graph *domain.Graph) error
}
