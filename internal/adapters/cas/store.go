// Package cas stores imported graphs keyed by the fingerprint of their artifacts.
package cas

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/adapters/manifest"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphStore = (*Store)(nil)

// Store implements ports.GraphStore with one JSON document per fingerprint.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the graph cached under key, or nil, nil on a miss.
func (s *Store) Get(dir, key string) (*domain.Graph, error) {
	filename := s.filename(dir, key)
	data, err := os.ReadFile(filename) //nolint:gosec // Path is built from the cache dir and a hex fingerprint
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	doc, err := manifest.Decode(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}
	g, err := doc.Graph()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}
	return g, nil
}

// Put writes the graph under key, replacing any previous entry.
func (s *Store) Put(dir, key string, graph *domain.Graph) error {
	var buf bytes.Buffer
	if err := manifest.EncodeJSON(&buf, manifest.FromGraph(graph)); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	filename := s.filename(dir, key)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", tmp)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	return nil
}

func (s *Store) filename(dir, key string) string {
	return filepath.Join(dir, key+".json")
}
