// Package fs walks artifact trees and fingerprints them.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// skippedDirs are never descended into.
var skippedDirs = []string{".git", ".jj", ".strata", "node_modules"}

// Walker yields the files below a root directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root in lexical order. Paths include root.
// Entries whose base name matches one of the ignores globs are skipped, directories with their contents.
// A missing root or an unreadable directory ends the walk with a final non-nil error.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if w.ignored(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, "failed to walk directory"), "root", root))
		}
	}
}

// WalkExtensions yields the files below root whose extension is one of exts.
func (w *Walker) WalkExtensions(root string, exts []string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for path, err := range w.WalkFiles(root, ignores) {
			if err == nil && !slices.Contains(exts, filepath.Ext(path)) {
				continue
			}
			if !yield(path, err) {
				return
			}
		}
	}
}

func (w *Walker) ignored(d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && slices.Contains(skippedDirs, name) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
