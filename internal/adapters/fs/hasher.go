package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher fingerprints an artifact set with xxhash.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the xxhash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the walked artifact tree
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return d.Sum64(), nil
}

// Fingerprint hashes the source options and every artifact file, path and content.
// File paths are hashed relative to the source root so that moved checkouts share cache entries.
func (h *Hasher) Fingerprint(src domain.Source) (string, error) {
	d := xxhash.New()
	h.hashSource(src, d)

	files, err := h.artifactFiles(src)
	if err != nil {
		return "", errors.Join(domain.ErrFingerprintFailed, err)
	}
	for _, path := range files {
		if err := h.hashFile(src.Root, path, d); err != nil {
			return "", zerr.Wrap(err, domain.ErrFingerprintFailed.Error())
		}
	}

	return fmt.Sprintf("%016x", d.Sum64()), nil
}

func (h *Hasher) hashSource(src domain.Source, d *xxhash.Digest) {
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}

	write(string(src.Kind))
	write(string(src.Granularity))
	write(strconv.FormatBool(src.IncludeTests))

	packages := slices.Clone(src.Packages)
	slices.Sort(packages)
	for _, p := range packages {
		write(p)
	}
	_, _ = d.Write([]byte{0})
}

func (h *Hasher) artifactFiles(src domain.Source) ([]string, error) {
	if src.Kind == domain.SourceManifest {
		return []string{src.File}, nil
	}
	var files []string
	for path, err := range h.walker.WalkExtensions(src.Root, src.Kind.Extensions(), nil) {
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (h *Hasher) hashFile(root, path string, w io.Writer) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	_, _ = w.Write([]byte(filepath.ToSlash(rel)))
	_, _ = w.Write([]byte{0})

	sum, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
